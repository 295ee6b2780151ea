package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShinyNito/FunkQQ/core"
)

func setupServer(t *testing.T) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/getToken":
			_ = json.NewEncoder(w).Encode(map[string]any{"errcode": 0, "access_token": "token-1", "expires_in": 7200})
		case "/api/json/security/MsgSecCheck":
			_ = json.NewEncoder(w).Encode(map[string]any{"errCode": 87014, "errMsg": "risky"})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	t.Setenv("FUNKQQ_MINIPROGRAM_QQ_APPID", "1110")
	t.Setenv("FUNKQQ_MINIPROGRAM_QQ_APPSECRET", "secret")
	t.Setenv("FUNKQQ_MINIPROGRAM_QQ_BASE_URL", server.URL)
}

func TestRunToken(t *testing.T) {
	setupServer(t)

	var out bytes.Buffer
	err := run(context.Background(), zerolog.Nop(), &out, "", "", false, []string{"token"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"access_token":"token-1"`)
}

func TestRunCheck(t *testing.T) {
	setupServer(t)

	var out bytes.Buffer
	err := run(context.Background(), zerolog.Nop(), &out, "", "token-1", true, []string{"check", "hello"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"errCode":87014`)
}

func TestRunCheckWithoutToken(t *testing.T) {
	setupServer(t)

	err := run(context.Background(), zerolog.Nop(), &bytes.Buffer{}, "", "", false, []string{"check", "hello"})
	assert.Equal(t, core.ErrCodeInvalidParams, core.Code(err))
}

func TestRunUsage(t *testing.T) {
	setupServer(t)

	for _, args := range [][]string{nil, {"unknown"}, {"session"}, {"decrypt", "o", "k", "1"}} {
		err := run(context.Background(), zerolog.Nop(), &bytes.Buffer{}, "", "", false, args)
		assert.True(t, errors.Is(err, errUsage), "args %v", args)
	}
}

func TestRunDecryptBadVersion(t *testing.T) {
	setupServer(t)

	err := run(context.Background(), zerolog.Nop(), &bytes.Buffer{}, "", "t", false,
		[]string{"decrypt", "o", "k", "v1", "AAAA"})
	assert.Equal(t, core.ErrCodeInvalidParams, core.Code(err))
}
