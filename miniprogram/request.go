package miniprogram

import "github.com/ShinyNito/FunkQQ/core"

type TypedRequest[T any] = core.TypedRequest[T]

// Request 调用 SDK 尚未封装的接口，默认携带 SetAccessToken 设置的 access_token
func Request[T any](c *Client) *TypedRequest[T] {
	return core.NewTypedRequest[T](c.apiClient)
}
