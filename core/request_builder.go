package core

import (
	"context"
	"net/http"

	"github.com/samber/lo"
)

// Response 原始 HTTP 响应，尚未按状态码分类
type Response struct {
	StatusCode int
	Body       []byte
}

// RequestBuilder 描述一次 QQ 开放接口调用。
//
// QQ 接口的参数都在查询串中（appid、openid、openkey、sig 等），
// access_token 也以查询参数传递；请求体只有 JSON 一种，
// GetUserEncryptKey 这类接口则发送空请求体。
type RequestBuilder struct {
	client    *Client
	path      string
	query     map[string]string
	body      any
	withToken bool
}

func newRequestBuilder(client *Client) *RequestBuilder {
	return &RequestBuilder{
		client:    client,
		query:     make(map[string]string),
		withToken: true,
	}
}

// Path 接口路径，如 /api/getToken
func (b *RequestBuilder) Path(path string) *RequestBuilder {
	b.path = path
	return b
}

// Query 设置查询参数，同名参数后写覆盖先写
func (b *RequestBuilder) Query(key, value string) *RequestBuilder {
	b.query[key] = value
	return b
}

func (b *RequestBuilder) QueryMap(query map[string]string) *RequestBuilder {
	b.query = lo.Assign(b.query, query)
	return b
}

// Body 设置 JSON 请求体，nil 表示空请求体
func (b *RequestBuilder) Body(body any) *RequestBuilder {
	b.body = body
	return b
}

// WithoutToken 不追加 access_token。
// getToken 与 jscode2session 用 appid/secret 鉴权，其余接口默认需要 token。
func (b *RequestBuilder) WithoutToken() *RequestBuilder {
	b.withToken = false
	return b
}

func (b *RequestBuilder) Get(ctx context.Context) (*Response, error) {
	return b.send(ctx, http.MethodGet)
}

func (b *RequestBuilder) Post(ctx context.Context) (*Response, error) {
	return b.send(ctx, http.MethodPost)
}

// send 先取 token 再发请求，token 缺失时不会产生网络调用
func (b *RequestBuilder) send(ctx context.Context, method string) (*Response, error) {
	params, err := b.client.buildParams(ctx, b.query, b.withToken)
	if err != nil {
		return nil, err
	}
	return b.client.doRequest(ctx, method, b.path, params, b.body)
}
