package miniprogram

import (
	"context"

	"github.com/ShinyNito/FunkQQ/core"
)

const (
	// Code2SessionPath code2session 接口地址
	Code2SessionPath = "/sns/jscode2session"
)

// Code2SessionResponse code2session 响应结果
type Code2SessionResponse struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
	// OpenID 用户唯一标识
	OpenID string `json:"openid"`
	// SessionKey 会话密钥
	SessionKey string `json:"session_key"`
	// UnionID 用户在开放平台的唯一标识符，绑定开放平台帐号后返回
	UnionID string `json:"unionid,omitempty"`
}

// Code2Session 通过登录凭证 code 获取 session_key 和 openid
// 接口文档: https://q.qq.com/wiki/develop/miniprogram/server/open_port/port_login.html#code2session
//
// 参数:
//   - ctx: 上下文
//   - code: qq.login 获取的 code
//
// 返回:
//   - *Code2SessionResponse: 响应结果，errcode 不视为错误
//   - error: 可能的错误
//
// 错误:
//   - ErrCodeInvalidParams: code 为空，或 appid/appsecret 为空
//   - ErrCodeServiceUnavailable: 网络失败或非 2xx 响应
//
// 示例:
//
//	resp, err := client.Code2Session(ctx, code)
//	if err != nil {
//	    return err
//	}
//	if resp.ErrCode != 0 {
//	    return fmt.Errorf("code2session: %d %s", resp.ErrCode, resp.ErrMsg)
//	}
//	fmt.Println("OpenID:", resp.OpenID)
func (c *Client) Code2Session(ctx context.Context, code string) (*Code2SessionResponse, error) {
	if err := requireParam("code", code); err != nil {
		return nil, err
	}
	if err := c.validateCredentials(); err != nil {
		return nil, err
	}

	params := map[string]string{
		"appid":      c.cfg.AppID,
		"secret":     c.cfg.AppSecret,
		"js_code":    code,
		"grant_type": "authorization_code",
	}

	resp, err := core.NewTypedRequest[Code2SessionResponse](c.apiClient).
		Path(Code2SessionPath).
		QueryMap(params).
		WithoutToken().
		Get(ctx)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
