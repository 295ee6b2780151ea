package core

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

const (
	DefaultBaseURL = "https://api.q.qq.com"
)

type ClientConfig struct {
	BaseURL       string
	HTTPClient    *http.Client
	TokenProvider AccessTokenProvider
	Logger        *slog.Logger
}

// Client 发送 HTTP 请求并按状态码分类响应。
// 不设置超时，不重试，超时由传入的 http.Client 决定。
type Client struct {
	httpClient    *http.Client
	baseURL       *url.URL
	tokenProvider AccessTokenProvider
	logger        *slog.Logger
}

func NewClient(cfg ClientConfig) (*Client, error) {
	baseURL := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsedBaseURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse base url")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		httpClient:    httpClient,
		baseURL:       parsedBaseURL,
		tokenProvider: cfg.TokenProvider,
		logger:        logger,
	}, nil
}

func (c *Client) Logger() *slog.Logger {
	return c.logger
}

func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) Request() *RequestBuilder {
	return newRequestBuilder(c)
}

// buildParams 合并查询参数，需要时追加 access_token。
// 获取 token 的错误原样返回，不做包装。
func (c *Client) buildParams(ctx context.Context, query map[string]string, withToken bool) (map[string]string, error) {
	params := lo.Assign(query)
	if !withToken {
		return params, nil
	}
	if c.tokenProvider == nil {
		return nil, NewInvalidParamsError("access token provider not configured")
	}
	token, err := c.tokenProvider.GetToken(ctx)
	if err != nil {
		return nil, err
	}
	params["access_token"] = token
	return params, nil
}

func (c *Client) buildURL(path string, query map[string]string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", errors.Wrap(err, "parse path")
	}

	u := c.baseURL.ResolveReference(ref)
	if len(query) > 0 {
		values := u.Query()
		for key, value := range query {
			values.Set(key, value)
		}
		u.RawQuery = values.Encode()
	}

	return u.String(), nil
}

// doRequest 执行请求。传输层失败统一返回 ServiceUnavailable。
func (c *Client) doRequest(ctx context.Context, method, path string, query map[string]string, body any) (*Response, error) {
	reqURL, err := c.buildURL(path, query)
	if err != nil {
		return nil, NewInvalidParamsError(err.Error())
	}

	var payload []byte
	if body != nil {
		payload, err = Marshal(body)
		if err != nil {
			return nil, WrapError(ErrCodeInvalidParams, "marshal request body", err)
		}
	}

	var reader io.Reader
	if len(payload) > 0 {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, NewServiceUnavailableError(errors.Wrap(err, "create request"))
	}
	if len(payload) > 0 {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	c.logRequest(ctx, method, path, query, payload)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error 会带上完整 URL，其中包含 secret/openkey 等敏感参数
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = RedactURLQuery(urlErr.URL)
		}
		return nil, NewServiceUnavailableError(errors.Wrap(err, "do request"))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewServiceUnavailableError(errors.Wrap(err, "read response"))
	}

	c.logResponse(ctx, resp.StatusCode, respBody)

	return &Response{StatusCode: resp.StatusCode, Body: respBody}, nil
}

func (c *Client) logRequest(ctx context.Context, method, path string, query map[string]string, body []byte) {
	if !c.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}

	attrs := []slog.Attr{
		slog.String("method", method),
		slog.String("path", path),
		slog.Any("query", RedactQueryMap(query)),
	}
	if len(body) > 0 {
		attrs = append(attrs, slog.String("body", string(body)))
	}
	c.logger.LogAttrs(ctx, slog.LevelDebug, "http request", attrs...)
}

func (c *Client) logResponse(ctx context.Context, statusCode int, body []byte) {
	if !c.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}

	attrs := []slog.Attr{slog.Int("status", statusCode)}
	if len(body) > 0 {
		attrs = append(attrs, slog.String("body", truncateBody(body, 1024)))
	}
	c.logger.LogAttrs(ctx, slog.LevelDebug, "http response", attrs...)
}
