package miniprogram

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShinyNito/FunkQQ/core"
)

func TestGetAccessToken(t *testing.T) {
	tests := []struct {
		name           string
		serverResponse map[string]any
		wantToken      string
		wantErrCode    int
	}{
		{
			name:           "success",
			serverResponse: map[string]any{"errcode": 0, "errmsg": "", "access_token": "token-1", "expires_in": 7200},
			wantToken:      "token-1",
		},
		{
			name:           "errcode is returned as data",
			serverResponse: map[string]any{"errcode": 40013, "errmsg": "invalid appid"},
			wantErrCode:    40013,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, GetTokenPath, r.URL.Path)
				query := r.URL.Query()
				assert.Equal(t, "client_credential", query.Get("grant_type"))
				assert.Equal(t, testAppID, query.Get("appid"))
				assert.Equal(t, testAppSecret, query.Get("secret"))
				assert.Empty(t, query.Get("access_token"))
				writeJSON(w, tt.serverResponse)
			})

			resp, err := client.GetAccessToken(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, resp.AccessToken)
			assert.Equal(t, tt.wantErrCode, resp.ErrCode)
		})
	}
}

func TestGetAccessTokenDoesNotCache(t *testing.T) {
	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"errcode": 0, "access_token": "token-1", "expires_in": 7200})
	})

	for range 3 {
		_, err := client.GetAccessToken(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(hits))
	assert.Empty(t, client.AccessToken(), "GetAccessToken must not store the token")
}

func TestTokenFetcherWithTokenManager(t *testing.T) {
	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case GetTokenPath:
			writeJSON(w, map[string]any{"errcode": 0, "access_token": "token-1", "expires_in": 7200})
		case MsgSecCheckPath:
			assert.Equal(t, "token-1", r.URL.Query().Get("access_token"))
			writeJSON(w, map[string]any{"errCode": 0, "errMsg": "ok"})
		default:
			http.NotFound(w, r)
		}
	})

	manager, err := core.NewTokenManager(core.TokenManagerConfig{
		Cache:    core.NewMemoryCache(),
		CacheKey: AccessTokenCacheKeyPrefix + testAppID,
		Fetcher:  client.TokenFetcher(),
	})
	require.NoError(t, err)

	for range 2 {
		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		client.SetAccessToken(token)

		resp, err := client.MsgSecCheck(context.Background(), "hello")
		require.NoError(t, err)
		assert.False(t, resp.IsRisky())
	}

	// 一次获取 token，两次内容检查
	assert.Equal(t, int32(3), atomic.LoadInt32(hits))
}

func TestTokenFetcherErrCode(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"errcode": 40013, "errmsg": "invalid appid"})
	})

	_, err := client.TokenFetcher()(context.Background())
	require.Error(t, err)
	assert.Equal(t, core.ErrCodeError, core.Code(err))
	assert.Contains(t, err.Error(), "invalid appid")
}
