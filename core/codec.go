package core

import (
	"bytes"
	stdjson "encoding/json"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
)

// json 不转义 HTML 字符，map 按 key 排序输出，保证签名与加密输入稳定
var json = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// jsonNumber 与 json 相同，但数字解码为 json.Number，避免大整数经 float64 丢失精度
var jsonNumber = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// Marshal JSON 编码
func Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal JSON 解码
func Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// UnmarshalValue 解码任意 JSON 值。对象为 map[string]any，
// 整数为 int64，超出 int64 范围的整数和小数为 float64。
func UnmarshalValue(data []byte) (any, error) {
	var v any
	if err := jsonNumber.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return normalizeNumbers(v), nil
}

func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case stdjson.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		f, _ := t.Float64()
		return f
	case map[string]any:
		for k, e := range t {
			t[k] = normalizeNumbers(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = normalizeNumbers(e)
		}
		return t
	}
	return v
}

// DecodeResponse 按 HTTP 状态码分类响应
//   - 非 2xx：ServiceUnavailable
//   - 2xx 空响应体：返回零值
//   - 2xx 非 JSON：通用错误，底层为 ResponseParseError
//
// 不检查 errcode，由调用方决定如何处理业务错误。
func DecodeResponse[T any](statusCode int, body []byte) (T, error) {
	var zero T

	if statusCode < 200 || statusCode >= 300 {
		return zero, NewServiceUnavailableError(errors.Newf("http status %d: %s", statusCode, truncateBody(body, 256)))
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return zero, nil
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return zero, WrapError(ErrCodeError, "decode response", NewResponseParseError(body, err))
	}
	return out, nil
}

func truncateBody(body []byte, max int) string {
	if len(body) <= max {
		return string(body)
	}
	return string(body[:max]) + "..."
}
