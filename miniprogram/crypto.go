package miniprogram

import (
	"context"
	"log/slog"

	"github.com/ShinyNito/FunkQQ/core"
	"github.com/ShinyNito/FunkQQ/core/utils"
)

// CipherCodec 用户数据对称加解密
type CipherCodec interface {
	Encrypt(plaintext, key []byte) ([]byte, error)
	Decrypt(ciphertext, key []byte) ([]byte, error)
}

// XXTEACodec 默认实现，与 QQ 侧 xxtea_encrypt/xxtea_decrypt 兼容
type XXTEACodec struct{}

func (XXTEACodec) Encrypt(plaintext, key []byte) ([]byte, error) {
	return utils.XXTEAEncrypt(plaintext, key)
}

func (XXTEACodec) Decrypt(ciphertext, key []byte) ([]byte, error) {
	return utils.XXTEADecrypt(ciphertext, key)
}

var _ CipherCodec = XXTEACodec{}

// EncryptedPayload EncryptData 的结果，DecryptData 的输入
type EncryptedPayload struct {
	// Version 使用的密钥版本
	Version int `json:"version"`
	// EncryptStr Base64 编码的密文
	EncryptStr string `json:"encrypt_str"`
}

// EncryptData 使用用户最新的 encryptKey 加密数据
//
// data 先编码为 JSON（不转义 HTML 与 Unicode），再用密钥列表中的第一个密钥加密，
// 结果 Base64 编码。
//
// 错误:
//   - GetUserEncryptKey 的错误原样返回
//   - ErrCodeError: errcode 缺失或不为 0，密钥列表为空，或加密失败
func (c *Client) EncryptData(ctx context.Context, openID, sessionKey string, data any) (*EncryptedPayload, error) {
	keys, err := c.userEncryptKeys(ctx, openID, sessionKey)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, core.NewError("user encrypt key list is empty")
	}
	key := keys[0]

	plaintext, err := core.Marshal(data)
	if err != nil {
		return nil, core.WrapError(core.ErrCodeInvalidParams, "marshal data", err)
	}

	ciphertext, err := c.cfg.Cipher.Encrypt(plaintext, []byte(key.EncryptKey))
	if err != nil {
		return nil, core.WrapError(core.ErrCodeError, "encrypt data", err)
	}

	return &EncryptedPayload{
		Version:    key.Version,
		EncryptStr: utils.Base64Encode(ciphertext),
	}, nil
}

// DecryptData 解密 EncryptData 生成的密文，返回 JSON 解码后的值
// （对象为 map[string]any，整数为 int64，小数为 float64）
//
// 密钥按列表顺序选择第一个 version 相同且 expire_in > 0 的条目。
//
// 错误:
//   - ErrCodeInvalidParams: encryptStr 为空或不是合法 Base64
//   - GetUserEncryptKey 的错误原样返回
//   - ErrCodeError: errcode 缺失或不为 0，没有匹配的有效密钥，解密失败或明文不是 JSON
func (c *Client) DecryptData(ctx context.Context, openID, sessionKey string, version int, encryptStr string) (any, error) {
	plaintext, err := c.decrypt(ctx, openID, sessionKey, version, encryptStr)
	if err != nil {
		return nil, err
	}

	v, err := core.UnmarshalValue(plaintext)
	if err != nil {
		return nil, core.WrapError(core.ErrCodeError, "decode decrypted data", err)
	}
	return v, nil
}

// DecryptDataInto 与 DecryptData 相同，但将明文解码为 T
func DecryptDataInto[T any](ctx context.Context, c *Client, openID, sessionKey string, version int, encryptStr string) (T, error) {
	var zero T

	plaintext, err := c.decrypt(ctx, openID, sessionKey, version, encryptStr)
	if err != nil {
		return zero, err
	}

	var out T
	if err := core.Unmarshal(plaintext, &out); err != nil {
		return zero, core.WrapError(core.ErrCodeError, "decode decrypted data", err)
	}
	return out, nil
}

func (c *Client) decrypt(ctx context.Context, openID, sessionKey string, version int, encryptStr string) ([]byte, error) {
	if err := requireParam("encrypt_str", encryptStr); err != nil {
		return nil, err
	}
	ciphertext, err := utils.Base64Decode(encryptStr)
	if err != nil {
		return nil, core.WrapError(core.ErrCodeInvalidParams, "invalid encrypt_str", err)
	}

	keys, err := c.userEncryptKeys(ctx, openID, sessionKey)
	if err != nil {
		return nil, err
	}

	key, ok := selectEncryptKey(keys, version)
	if !ok {
		c.cfg.Logger.WarnContext(ctx, "user encrypt key expired or not found",
			slog.String("openid", core.MaskIdentifier(openID)),
			slog.Int("version", version),
		)
		return nil, core.NewError("user encrypt key expired or not found")
	}

	plaintext, err := c.cfg.Cipher.Decrypt(ciphertext, []byte(key.EncryptKey))
	if err != nil {
		return nil, core.WrapError(core.ErrCodeError, "decrypt data", err)
	}
	return plaintext, nil
}

// userEncryptKeys 获取密钥列表，errcode 缺失或不为 0 时返回通用错误
func (c *Client) userEncryptKeys(ctx context.Context, openID, sessionKey string) ([]KeyInfo, error) {
	resp, err := c.GetUserEncryptKey(ctx, openID, sessionKey)
	if err != nil {
		return nil, err
	}
	if err := resp.apiError(); err != nil {
		c.cfg.Logger.ErrorContext(ctx, "get user encrypt key failed",
			slog.String("openid", core.MaskIdentifier(openID)),
			slog.Int("errcode", resp.ErrCode),
			slog.String("errmsg", resp.ErrMsg),
		)
		return nil, core.WrapError(core.ErrCodeError, "get user encrypt key failed", err)
	}
	return resp.KeyInfoList, nil
}
