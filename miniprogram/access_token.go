package miniprogram

import (
	"context"
	"log/slog"

	"github.com/ShinyNito/FunkQQ/core"
)

const (
	// GetTokenPath 获取接口调用凭据
	GetTokenPath = "/api/getToken"
	// AccessTokenCacheKeyPrefix TokenManager 缓存 key 前缀
	AccessTokenCacheKeyPrefix = "qq:miniprogram:access_token:"
)

// AccessTokenResponse getToken 响应
type AccessTokenResponse struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
	// AccessToken 接口调用凭据
	AccessToken string `json:"access_token"`
	// ExpiresIn 凭据有效时间，单位秒
	ExpiresIn int `json:"expires_in"`
}

// GetAccessToken 获取接口调用凭据。每次调用都会请求远端，不做缓存
// 接口文档: https://q.qq.com/wiki/develop/miniprogram/server/open_port/port_use.html#getaccesstoken
//
// 返回的 errcode 不视为错误，由调用方判断。
// 拿到的 token 需通过 SetAccessToken 设置后才能调用需要凭据的接口。
//
// 错误:
//   - ErrCodeInvalidParams: appid 或 appsecret 为空
//   - ErrCodeServiceUnavailable: 网络失败或非 2xx 响应
func (c *Client) GetAccessToken(ctx context.Context) (*AccessTokenResponse, error) {
	if err := c.validateCredentials(); err != nil {
		return nil, err
	}

	resp, err := core.NewTypedRequest[AccessTokenResponse](c.apiClient).
		Path(GetTokenPath).
		Query("grant_type", "client_credential").
		Query("appid", c.cfg.AppID).
		Query("secret", c.cfg.AppSecret).
		WithoutToken().
		Get(ctx)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// TokenFetcher 将 GetAccessToken 适配为 core.TokenFetcher，供调用方配合
// core.TokenManager 缓存 access_token。errcode != 0 时返回通用错误。
//
// 示例:
//
//	manager, _ := core.NewTokenManager(core.TokenManagerConfig{
//	    Cache:    core.NewMemoryCache(),
//	    CacheKey: miniprogram.AccessTokenCacheKeyPrefix + appID,
//	    Fetcher:  client.TokenFetcher(),
//	})
//	token, err := manager.GetToken(ctx)
//	if err != nil {
//	    return err
//	}
//	client.SetAccessToken(token)
func (c *Client) TokenFetcher() core.TokenFetcher {
	return func(ctx context.Context) (core.TokenFetchResult, error) {
		resp, err := c.GetAccessToken(ctx)
		if err != nil {
			return core.TokenFetchResult{}, err
		}
		if resp.ErrCode != core.ErrCodeSuccess {
			c.cfg.Logger.ErrorContext(ctx, "get access token failed",
				slog.String("appid", c.cfg.AppID),
				slog.Int("errcode", resp.ErrCode),
				slog.String("errmsg", resp.ErrMsg),
			)
			return core.TokenFetchResult{}, core.WrapError(core.ErrCodeError, "get access token failed",
				core.NewAPIError(resp.ErrCode, resp.ErrMsg))
		}
		return core.TokenFetchResult{Token: resp.AccessToken, ExpiresIn: resp.ExpiresIn}, nil
	}
}
