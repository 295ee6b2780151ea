package core

import (
	"net/url"
	"strings"
)

const redactedValue = "***"

// secretQueryKeys 日志中整体替换为 *** 的查询参数。
// openkey 即用户 session_key，sig 由 session_key 派生。
var secretQueryKeys = map[string]struct{}{
	"access_token": {},
	"appsecret":    {},
	"encrypt_key":  {},
	"js_code":      {},
	"openkey":      {},
	"secret":       {},
	"session_key":  {},
	"sig":          {},
}

// identifierQueryKeys 用户标识，日志中只保留前缀便于排查
var identifierQueryKeys = map[string]struct{}{
	"openid":  {},
	"unionid": {},
}

// MaskIdentifier 保留 openid/unionid 的前 4 个字符，其余替换为 ***
func MaskIdentifier(id string) string {
	runes := []rune(id)
	if len(runes) <= 4 {
		return redactedValue
	}
	return string(runes[:4]) + redactedValue
}

// RedactQueryMap 脱敏查询参数，返回拷贝，原 map 不会被修改。
func RedactQueryMap(query map[string]string) map[string]string {
	if query == nil {
		return nil
	}

	out := make(map[string]string, len(query))
	for key, value := range query {
		out[key] = redactQueryValue(key, value)
	}
	return out
}

// RedactURLQuery 脱敏 URL 查询参数，用于 url.Error 等携带完整 URL 的场景。
func RedactURLQuery(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.RawQuery == "" {
		return rawURL
	}

	query := parsed.Query()
	for key, values := range query {
		for i := range values {
			values[i] = redactQueryValue(key, values[i])
		}
	}

	parsed.RawQuery = query.Encode()
	return parsed.String()
}

func redactQueryValue(key, value string) string {
	key = strings.ToLower(key)
	if _, ok := secretQueryKeys[key]; ok {
		return redactedValue
	}
	if _, ok := identifierQueryKeys[key]; ok {
		return MaskIdentifier(value)
	}
	return value
}
