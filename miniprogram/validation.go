package miniprogram

import (
	"strings"

	"github.com/ShinyNito/FunkQQ/core"
)

// validateCredentials 每次调用前校验 appid/appsecret
func (c *Client) validateCredentials() error {
	if strings.TrimSpace(c.cfg.AppID) == "" {
		return core.NewInvalidParamsError("appid is required")
	}
	if strings.TrimSpace(c.cfg.AppSecret) == "" {
		return core.NewInvalidParamsError("appsecret is required")
	}
	return nil
}

func requireParam(name, value string) error {
	if value == "" {
		return core.NewInvalidParamsError(name + " is required")
	}
	return nil
}

// requireParams 按顺序校验，返回第一个缺失参数的错误
func requireParams(pairs ...[2]string) error {
	for _, p := range pairs {
		if err := requireParam(p[0], p[1]); err != nil {
			return err
		}
	}
	return nil
}
