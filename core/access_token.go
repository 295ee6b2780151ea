package core

import (
	"context"
)

// AccessTokenProvider 为需要 access_token 的请求提供调用凭据
type AccessTokenProvider interface {
	// GetToken 获取 access_token
	//
	// 参数:
	//   - ctx: 上下文
	//
	// 返回:
	//   - string: 追加到查询参数中的 access_token
	//   - error: 可能的错误
	//
	// 错误:
	//   - 未设置调用凭据（应返回 ErrCodeInvalidParams）
	//   - 获取 token 失败
	GetToken(ctx context.Context) (string, error)
}

// StaticToken 固定的 access_token，空值视为未设置
type StaticToken string

// GetToken 实现 AccessTokenProvider
func (t StaticToken) GetToken(context.Context) (string, error) {
	if t == "" {
		return "", NewInvalidParamsError("access token not set")
	}
	return string(t), nil
}

var _ AccessTokenProvider = StaticToken("")
