package miniprogram

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShinyNito/FunkQQ/core"
)

func TestMsgSecCheck(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		errCode   int
		errMsg    string
		wantRisky bool
	}{
		{name: "内容正常", content: "hello", errCode: 0, errMsg: "ok"},
		{name: "内容违规", content: "risky text", errCode: 87014, errMsg: "risky", wantRisky: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, MsgSecCheckPath, r.URL.Path)
				assert.Equal(t, "token-1", r.URL.Query().Get("access_token"))

				body, _ := io.ReadAll(r.Body)
				assert.JSONEq(t, `{"appid":"`+testAppID+`","content":"`+tt.content+`"}`, string(body))

				writeJSON(w, map[string]any{"errCode": tt.errCode, "errMsg": tt.errMsg})
			})
			client.SetAccessToken("token-1")

			resp, err := client.MsgSecCheck(context.Background(), tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.errCode, resp.ErrCode)
			assert.Equal(t, tt.errMsg, resp.ErrMsg)
			assert.Equal(t, tt.wantRisky, resp.IsRisky())
		})
	}
}

func TestMsgSecCheckContentLength(t *testing.T) {
	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"errCode": 0, "errMsg": "ok"})
	})
	client.SetAccessToken("token-1")

	// 上限按字数计算
	_, err := client.MsgSecCheck(context.Background(), strings.Repeat("字", MsgSecCheckMaxContentLength))
	require.NoError(t, err)

	_, err = client.MsgSecCheck(context.Background(), strings.Repeat("a", MsgSecCheckMaxContentLength+1))
	assert.Equal(t, core.ErrCodeInvalidParams, core.Code(err))

	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}
