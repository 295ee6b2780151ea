package miniprogram

import (
	"context"
	"unicode/utf8"

	"github.com/ShinyNito/FunkQQ/core"
)

const (
	// MsgSecCheckPath 文本内容安全识别
	MsgSecCheckPath = "/api/json/security/MsgSecCheck"
	// MsgSecCheckMaxContentLength 文本字数上限
	MsgSecCheckMaxContentLength = 2500
)

type msgSecCheckRequest struct {
	AppID   string `json:"appid"`
	Content string `json:"content"`
}

// MsgSecCheckResponse 文本内容安全识别结果
type MsgSecCheckResponse struct {
	// ErrCode 0 内容正常；87014 内容含有违法违规内容
	ErrCode int `json:"errCode"`
	// ErrMsg ok 内容正常；risky 内容含有违法违规内容
	ErrMsg string `json:"errMsg"`
}

// IsRisky 内容是否含有违法违规内容
func (r *MsgSecCheckResponse) IsRisky() bool {
	return r.ErrCode == core.ErrCodeRiskyContent
}

// MsgSecCheck 检查一段文本是否含有违法违规内容
// 接口文档: https://q.qq.com/wiki/develop/miniprogram/server/open_port/port_safe.html#security-msgseccheck
//
// 需要先调用 SetAccessToken。命中违规内容（87014）作为结果返回，不视为错误。
//
// 参数:
//   - ctx: 上下文
//   - content: 需检测的 UTF-8 文本，上限 2500 字
//
// 错误:
//   - ErrCodeInvalidParams: content 为空或超长，appid/appsecret 为空，或未设置 access_token
//   - ErrCodeServiceUnavailable: 网络失败或非 2xx 响应
func (c *Client) MsgSecCheck(ctx context.Context, content string) (*MsgSecCheckResponse, error) {
	if err := requireParam("content", content); err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(content) > MsgSecCheckMaxContentLength {
		return nil, core.NewInvalidParamsError("content exceeds 2500 characters")
	}
	if err := c.validateCredentials(); err != nil {
		return nil, err
	}

	resp, err := core.NewTypedRequest[MsgSecCheckResponse](c.apiClient).
		Path(MsgSecCheckPath).
		Body(msgSecCheckRequest{AppID: c.cfg.AppID, Content: content}).
		Post(ctx)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
