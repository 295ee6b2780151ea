package core

import (
	"context"
	"time"
)

// Cache 调用方缓存 access_token 等短期凭据的存储接口。
// SDK 客户端本身不缓存任何凭据，Cache 只被 TokenManager 使用。
type Cache interface {
	// Get 读取缓存值，不存在或已过期时返回 false
	Get(ctx context.Context, key string) (string, bool)

	// Set 写入缓存值，ttl <= 0 表示永不过期
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Delete 删除缓存值，key 不存在时静默成功
	Delete(ctx context.Context, key string) error
}
