package core

import (
	"context"
)

// TypedRequest 在 RequestBuilder 之上把响应解码为 T。
// 非 2xx 返回 ServiceUnavailable；errcode/errCode 原样留在 T 中，由调用方判断。
type TypedRequest[T any] struct {
	*RequestBuilder
}

func NewTypedRequest[T any](client *Client) *TypedRequest[T] {
	return &TypedRequest[T]{RequestBuilder: newRequestBuilder(client)}
}

func (r *TypedRequest[T]) Path(path string) *TypedRequest[T] {
	r.RequestBuilder.Path(path)
	return r
}

func (r *TypedRequest[T]) Query(key, value string) *TypedRequest[T] {
	r.RequestBuilder.Query(key, value)
	return r
}

func (r *TypedRequest[T]) QueryMap(query map[string]string) *TypedRequest[T] {
	r.RequestBuilder.QueryMap(query)
	return r
}

func (r *TypedRequest[T]) Body(body any) *TypedRequest[T] {
	r.RequestBuilder.Body(body)
	return r
}

func (r *TypedRequest[T]) WithoutToken() *TypedRequest[T] {
	r.RequestBuilder.WithoutToken()
	return r
}

func (r *TypedRequest[T]) Get(ctx context.Context) (T, error) {
	return decodeSent[T](r.RequestBuilder.Get(ctx))
}

func (r *TypedRequest[T]) Post(ctx context.Context) (T, error) {
	return decodeSent[T](r.RequestBuilder.Post(ctx))
}

func decodeSent[T any](resp *Response, err error) (T, error) {
	if err != nil {
		var zero T
		return zero, err
	}
	return DecodeResponse[T](resp.StatusCode, resp.Body)
}
