// Package config 从配置文件和环境变量加载 QQ 小程序配置。
package config

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/ShinyNito/FunkQQ/miniprogram"
)

// EnvPrefix 环境变量前缀，如 FUNKQQ_MINIPROGRAM_QQ_APPID
const EnvPrefix = "FUNKQQ"

const (
	keyAppID     = "miniprogram.qq.appid"
	keyAppSecret = "miniprogram.qq.appsecret"
	keyBaseURL   = "miniprogram.qq.base_url"
	keyTimeout   = "miniprogram.qq.timeout"
)

// Config 配置项
type Config struct {
	AppID     string
	AppSecret string
	// BaseURL 为空时使用 https://api.q.qq.com
	BaseURL string
	// Timeout 为 0 时不设置 HTTP 超时
	Timeout time.Duration
}

// Load 加载配置。path 为空时只读取环境变量；
// 文件类型通过扩展名（.yaml/.yml/.json/.toml）推断。
// 环境变量优先于文件。
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, key := range []string{keyAppID, keyAppSecret, keyBaseURL, keyTimeout} {
		if err := v.BindEnv(key); err != nil {
			return nil, errors.Wrapf(err, "bind env %s", key)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		switch ext := filepath.Ext(path); ext {
		case ".yaml", ".yml":
			v.SetConfigType("yaml")
		case ".json":
			v.SetConfigType("json")
		case ".toml":
			v.SetConfigType("toml")
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}

	return &Config{
		AppID:     strings.TrimSpace(v.GetString(keyAppID)),
		AppSecret: strings.TrimSpace(v.GetString(keyAppSecret)),
		BaseURL:   strings.TrimSpace(v.GetString(keyBaseURL)),
		Timeout:   v.GetDuration(keyTimeout),
	}, nil
}

// MiniProgram 转换为 miniprogram.Config。不校验 appid/appsecret，
// 缺失时由接口调用返回参数错误。
func (c *Config) MiniProgram() miniprogram.Config {
	cfg := miniprogram.Config{
		AppID:     c.AppID,
		AppSecret: c.AppSecret,
		BaseURL:   c.BaseURL,
	}
	if c.Timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	return cfg
}
