package core

import (
	"context"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/singleflight"
)

const defaultExpireBufferSeconds = 300

// TokenFetchResult 一次 access_token 获取的结果
type TokenFetchResult struct {
	Token     string
	ExpiresIn int
}

// TokenFetcher 从远端获取 access_token
type TokenFetcher func(ctx context.Context) (TokenFetchResult, error)

type TokenManagerConfig struct {
	Cache               Cache
	CacheKey            string
	Fetcher             TokenFetcher
	Logger              *slog.Logger
	ExpireBufferSeconds int
}

// TokenManager 供调用方编排使用的 access_token 缓存。
// 缓存未命中时通过 Fetcher 获取，并发获取合并为一次远端调用。
// 拿到的 token 需由调用方通过 SetAccessToken 交给客户端。
type TokenManager struct {
	cache               Cache
	cacheKey            string
	fetcher             TokenFetcher
	logger              *slog.Logger
	expireBufferSeconds int

	group singleflight.Group
}

func NewTokenManager(cfg TokenManagerConfig) (*TokenManager, error) {
	if cfg.Cache == nil {
		return nil, errors.New("cache is required")
	}
	if cfg.CacheKey == "" {
		return nil, errors.New("cache key is required")
	}
	if cfg.Fetcher == nil {
		return nil, errors.New("fetcher is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	expireBufferSeconds := cfg.ExpireBufferSeconds
	if expireBufferSeconds <= 0 {
		expireBufferSeconds = defaultExpireBufferSeconds
	}

	return &TokenManager{
		cache:               cfg.Cache,
		cacheKey:            cfg.CacheKey,
		fetcher:             cfg.Fetcher,
		logger:              logger,
		expireBufferSeconds: expireBufferSeconds,
	}, nil
}

// GetToken 优先读缓存，未命中时获取并写入缓存
func (m *TokenManager) GetToken(ctx context.Context) (string, error) {
	if token, ok := m.cache.Get(ctx, m.cacheKey); ok {
		return token, nil
	}
	return m.fetch(ctx, false)
}

// RefreshToken 跳过缓存强制获取
func (m *TokenManager) RefreshToken(ctx context.Context) (string, error) {
	return m.fetch(ctx, true)
}

// Invalidate 删除缓存中的 token，下次 GetToken 会重新获取
func (m *TokenManager) Invalidate(ctx context.Context) error {
	return m.cache.Delete(ctx, m.cacheKey)
}

func (m *TokenManager) fetch(ctx context.Context, force bool) (string, error) {
	key := "get"
	if force {
		key = "refresh"
	}

	ch := m.group.DoChan(key, func() (any, error) {
		return m.fetchAndStore(context.WithoutCancel(ctx), force)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (m *TokenManager) fetchAndStore(ctx context.Context, force bool) (string, error) {
	if !force {
		if token, ok := m.cache.Get(ctx, m.cacheKey); ok {
			return token, nil
		}
	}

	result, err := m.fetcher(ctx)
	if err != nil {
		return "", err
	}
	if result.Token == "" {
		return "", NewError("empty access token from fetcher")
	}

	ttlSeconds := max(result.ExpiresIn-m.expireBufferSeconds, 1)
	ttl := time.Duration(ttlSeconds) * time.Second
	if err := m.cache.Set(ctx, m.cacheKey, result.Token, ttl); err != nil {
		m.logger.WarnContext(ctx, "cache access token failed", slog.String("key", m.cacheKey), slog.Any("error", err))
	}

	m.logger.DebugContext(ctx, "access token fetched",
		slog.String("key", m.cacheKey),
		slog.Int("expires_in", result.ExpiresIn),
	)
	return result.Token, nil
}

var _ AccessTokenProvider = (*TokenManager)(nil)
