package core

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// 错误码定义
const (
	ErrCodeError              = -10000 // 通用错误（业务失败、本地校验失败）
	ErrCodeInvalidParams      = -10001 // 参数缺失或未设置调用凭据
	ErrCodeServiceUnavailable = -10002 // 网络失败或非 2xx 响应
)

// Error SDK 错误，携带错误码和错误信息
type Error struct {
	Code int
	Msg  string

	cause error
}

// Error 实现 error 接口
func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("qq miniprogram error: [%d]", e.Code)
	}
	return fmt.Sprintf("qq miniprogram error: [%d] %s", e.Code, e.Msg)
}

// Unwrap 支持 errors.Is/As
func (e *Error) Unwrap() error {
	return e.cause
}

// Is 按错误码匹配，使 errors.Is(err, ErrInvalidParams) 之类的判断成立
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// 用于 errors.Is 判断的哨兵错误，只比较错误码
var (
	ErrGeneric            = &Error{Code: ErrCodeError}
	ErrInvalidParams      = &Error{Code: ErrCodeInvalidParams}
	ErrServiceUnavailable = &Error{Code: ErrCodeServiceUnavailable}
)

// NewError 创建通用错误
func NewError(msg string) *Error {
	return &Error{Code: ErrCodeError, Msg: msg}
}

// NewInvalidParamsError 创建参数错误
func NewInvalidParamsError(msg string) *Error {
	return &Error{Code: ErrCodeInvalidParams, Msg: msg}
}

// NewServiceUnavailableError 创建服务不可用错误，消息取自底层错误
func NewServiceUnavailableError(cause error) *Error {
	return &Error{Code: ErrCodeServiceUnavailable, Msg: cause.Error(), cause: cause}
}

// WrapError 用指定错误码包装底层错误
func WrapError(code int, msg string, cause error) *Error {
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return &Error{Code: code, Msg: msg, cause: cause}
}

// Code 返回错误对应的错误码，nil 返回 0，非 SDK 错误返回 ErrCodeError
func Code(err error) int {
	if err == nil {
		return 0
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeError
}

// APIError QQ 开放接口返回的业务错误（errcode != 0）
type APIError struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

// Error 实现 error 接口
func (e *APIError) Error() string {
	return fmt.Sprintf("qq api error: [%d] %s", e.ErrCode, e.ErrMsg)
}

// NewAPIError 创建业务错误
func NewAPIError(code int, msg string) *APIError {
	return &APIError{
		ErrCode: code,
		ErrMsg:  msg,
	}
}

// 常见业务错误码
const (
	ErrCodeSuccess      = 0
	ErrCodeBusy         = -1    // 系统繁忙
	ErrCodeInvalidToken = 40001 // access_token 无效
	ErrCodeInvalidCode  = 40029 // 无效的 code
	ErrCodeRiskyContent = 87014 // 内容含有违法违规内容
)

// ResponseParseError 响应解析错误
// 当 2xx 响应体不是有效的 JSON 时返回此错误
type ResponseParseError struct {
	Body []byte // 原始响应体
	Err  error  // 底层解析错误
}

// Error 实现 error 接口
func (e *ResponseParseError) Error() string {
	return fmt.Sprintf("failed to parse response: %v", e.Err)
}

// Unwrap 支持 errors.Is/As
func (e *ResponseParseError) Unwrap() error {
	return e.Err
}

// NewResponseParseError 创建响应解析错误
func NewResponseParseError(body []byte, err error) *ResponseParseError {
	return &ResponseParseError{
		Body: body,
		Err:  err,
	}
}
