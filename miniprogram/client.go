package miniprogram

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ShinyNito/FunkQQ/core"
)

// Config QQ 小程序配置
type Config struct {
	// AppID 小程序 AppID，调用时校验，构造时不校验
	AppID string
	// AppSecret 小程序 AppSecret，调用时校验，构造时不校验
	AppSecret string
	// BaseURL 接口地址（可选，默认 https://api.q.qq.com）
	BaseURL string
	// HTTPClient 自定义 HTTP 客户端（可选）。SDK 不设置超时，需要时在此配置
	HTTPClient *http.Client
	// Logger 日志记录器（可选，默认使用 slog.Default()）
	Logger *slog.Logger
	// Cipher 用户数据加解密实现（可选，默认 XXTEA）
	Cipher CipherCodec
}

// Client QQ 小程序服务端接口客户端。
//
// Client 没有内部同步：并发调用 SetAccessToken 会产生数据竞争，
// 需要并发更新 token 时由调用方加锁，或为每个 token 创建独立的 Client。
type Client struct {
	cfg       Config
	apiClient *core.Client
	token     *sessionToken
}

// sessionToken 调用方通过 SetAccessToken 提供的 access_token
type sessionToken struct {
	value string
}

func (t *sessionToken) GetToken(ctx context.Context) (string, error) {
	return core.StaticToken(t.value).GetToken(ctx)
}

// New 创建客户端。仅在 BaseURL 无法解析时返回错误
func New(cfg Config) (*Client, error) {
	cfg = normalizeConfig(cfg)

	token := &sessionToken{}
	apiClient, err := core.NewClient(core.ClientConfig{
		BaseURL:       cfg.BaseURL,
		HTTPClient:    cfg.HTTPClient,
		TokenProvider: token,
		Logger:        cfg.Logger,
	})
	if err != nil {
		return nil, err
	}

	return &Client{cfg: cfg, apiClient: apiClient, token: token}, nil
}

func (c *Client) Config() Config {
	return c.cfg
}

// SetAccessToken 设置后续接口使用的 access_token，不做校验
func (c *Client) SetAccessToken(token string) {
	c.token.value = token
}

// AccessToken 返回当前设置的 access_token
func (c *Client) AccessToken() string {
	return c.token.value
}

func normalizeConfig(cfg Config) Config {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Cipher == nil {
		cfg.Cipher = XXTEACodec{}
	}
	return cfg
}

var _ core.AccessTokenProvider = (*sessionToken)(nil)
