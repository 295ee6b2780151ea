package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// emptyJSONObject GetUserEncryptKey 签名的固定消息体
const emptyJSONObject = "{}"

// HMACSHA256 使用 HMAC-SHA256 计算签名，输出小写十六进制
func HMACSHA256(data, key string) string {
	h := hmac.New(sha256.New, []byte(key))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

// UserEncryptKeySignature 计算获取用户 encryptKey 所需的 sig 参数
// 算法固定为 hex(HMAC-SHA256("{}", session_key))
func UserEncryptKeySignature(sessionKey string) string {
	return HMACSHA256(emptyJSONObject, sessionKey)
}
