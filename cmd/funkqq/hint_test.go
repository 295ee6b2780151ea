package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShinyNito/FunkQQ/core"
	"github.com/ShinyNito/FunkQQ/miniprogram"
)

func TestErrCodeHint(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{code: core.ErrCodeBusy, want: "retry later"},
		{code: core.ErrCodeInvalidToken, want: "funkqq token"},
		{code: core.ErrCodeInvalidCode, want: "qq.login"},
		{code: core.ErrCodeRiskyContent, want: "risky"},
	}
	for _, tt := range tests {
		assert.Contains(t, errCodeHint(tt.code), tt.want, "code %d", tt.code)
	}
	assert.Empty(t, errCodeHint(12345))
}

func TestResultErrCode(t *testing.T) {
	code, msg := resultErrCode(&miniprogram.Code2SessionResponse{ErrCode: core.ErrCodeInvalidCode, ErrMsg: "invalid code"})
	assert.Equal(t, core.ErrCodeInvalidCode, code)
	assert.Equal(t, "invalid code", msg)

	code, _ = resultErrCode(&miniprogram.MsgSecCheckResponse{ErrCode: core.ErrCodeRiskyContent})
	assert.Equal(t, core.ErrCodeRiskyContent, code)

	code, _ = resultErrCode(&miniprogram.EncryptedPayload{Version: 1})
	assert.Equal(t, core.ErrCodeSuccess, code)
}

func TestRunWarnsOnInvalidToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errCode":40001,"errMsg":"invalid credential"}`))
	}))
	t.Cleanup(server.Close)
	t.Setenv("FUNKQQ_MINIPROGRAM_QQ_APPID", "1110")
	t.Setenv("FUNKQQ_MINIPROGRAM_QQ_APPSECRET", "secret")
	t.Setenv("FUNKQQ_MINIPROGRAM_QQ_BASE_URL", server.URL)

	var logs, out bytes.Buffer
	log := zerolog.New(&logs)
	err := run(context.Background(), log, &out, "", "stale-token", false, []string{"check", "hello"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"errCode":40001`)
	assert.Contains(t, logs.String(), `"errcode":40001`)
	assert.Contains(t, logs.String(), "funkqq token")
}
