package miniprogram

import (
	"context"

	"github.com/samber/lo"

	"github.com/ShinyNito/FunkQQ/core"
	"github.com/ShinyNito/FunkQQ/core/utils"
)

const (
	// GetUserEncryptKeyPath 获取用户 encryptKey
	GetUserEncryptKeyPath = "/api/trpc/userEncryptionSvr/GetUserEncryptKey"
)

// KeyInfo 用户加密密钥
type KeyInfo struct {
	// EncryptKey 加密密钥
	EncryptKey string `json:"encrypt_key"`
	// Version 密钥版本
	Version int `json:"version"`
	// ExpireIn 剩余有效时间，单位秒，<= 0 表示已失效
	ExpireIn int `json:"expire_in"`
}

// UserEncryptKeyResponse GetUserEncryptKey 响应
type UserEncryptKeyResponse struct {
	ErrCode     int       `json:"errcode"`
	ErrMsg      string    `json:"errmsg"`
	KeyInfoList []KeyInfo `json:"key_info_list"`

	hasErrCode bool
}

// UnmarshalJSON 额外记录响应中是否带有 errcode 字段
func (r *UserEncryptKeyResponse) UnmarshalJSON(data []byte) error {
	type plain UserEncryptKeyResponse
	if err := core.Unmarshal(data, (*plain)(r)); err != nil {
		return err
	}

	var presence struct {
		ErrCode *int `json:"errcode"`
	}
	if err := core.Unmarshal(data, &presence); err != nil {
		return err
	}
	r.hasErrCode = presence.ErrCode != nil
	return nil
}

// apiError errcode 缺失（或为 null）时返回通用错误，不为 0 时返回 APIError
func (r *UserEncryptKeyResponse) apiError() error {
	if !r.hasErrCode {
		return core.NewError("errcode missing from response")
	}
	if r.ErrCode != core.ErrCodeSuccess {
		return core.NewAPIError(r.ErrCode, r.ErrMsg)
	}
	return nil
}

// GetUserEncryptKey 获取用户最近的 encryptKey 列表
//
// 需要先调用 SetAccessToken。签名 sig = hex(HMAC-SHA256("{}", sessionKey))，
// 请求体为空。
//
// 错误:
//   - ErrCodeInvalidParams: openID/sessionKey 为空，appid/appsecret 为空，或未设置 access_token
//   - ErrCodeServiceUnavailable: 网络失败或非 2xx 响应
func (c *Client) GetUserEncryptKey(ctx context.Context, openID, sessionKey string) (*UserEncryptKeyResponse, error) {
	if err := requireParams([2]string{"openid", openID}, [2]string{"session_key", sessionKey}); err != nil {
		return nil, err
	}
	if err := c.validateCredentials(); err != nil {
		return nil, err
	}

	resp, err := core.NewTypedRequest[UserEncryptKeyResponse](c.apiClient).
		Path(GetUserEncryptKeyPath).
		QueryMap(map[string]string{
			"appid":   c.cfg.AppID,
			"openid":  openID,
			"openkey": sessionKey,
			"sig":     utils.UserEncryptKeySignature(sessionKey),
		}).
		Post(ctx)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// selectEncryptKey 按列表顺序返回第一个版本匹配且未过期的密钥，
// 后续同版本条目不参与选择
func selectEncryptKey(keys []KeyInfo, version int) (KeyInfo, bool) {
	return lo.Find(keys, func(k KeyInfo) bool {
		return k.Version == version && k.ExpireIn > 0
	})
}
