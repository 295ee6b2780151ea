package utils

import (
	"encoding/base64"

	"github.com/cockroachdb/errors"
	"github.com/xxtea/xxtea-go/xxtea"
)

var (
	// ErrEmptyKey 密钥为空
	ErrEmptyKey = errors.New("empty encrypt key")
	// ErrXXTEADecrypt 密文无效或密钥不匹配
	ErrXXTEADecrypt = errors.New("xxtea decrypt failed")
)

// XXTEAEncrypt XXTEA 加密，与 PHP xxtea_encrypt 输出一致（密文末尾携带长度）
func XXTEAEncrypt(plaintext, key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	if len(plaintext) == 0 {
		return []byte{}, nil
	}
	return xxtea.Encrypt(plaintext, key), nil
}

// XXTEADecrypt XXTEA 解密，与 PHP xxtea_decrypt 对应
func XXTEADecrypt(ciphertext, key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	if len(ciphertext) == 0 {
		return []byte{}, nil
	}
	plaintext := xxtea.Decrypt(ciphertext, key)
	if plaintext == nil {
		return nil, ErrXXTEADecrypt
	}
	return plaintext, nil
}

// Base64Encode 标准 Base64 编码
func Base64Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// Base64Decode 标准 Base64 解码
func Base64Decode(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(err, "decode base64")
	}
	return data, nil
}
