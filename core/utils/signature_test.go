package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHMACSHA256(t *testing.T) {
	got := HMACSHA256("hello", "key")
	assert.Equal(t, "9307b3b915efb5171ff14d8cb55fbcc798c6c0ef1456d66ded1a6aa723a58b7b", got)
}

func TestUserEncryptKeySignature(t *testing.T) {
	tests := []struct {
		sessionKey string
		want       string
	}{
		{
			sessionKey: "abc",
			want:       "19092633e5aa9a849dfcc9d2df4e76db2df1fcba7f38915f2c7833bd8a510f2f",
		},
		{
			sessionKey: "test_session_key",
			want:       "9c2c4ce9c36c91d254286b4797a3971a68b7789035c5913e93d40d7a8d81c588",
		},
	}

	for _, tt := range tests {
		t.Run(tt.sessionKey, func(t *testing.T) {
			assert.Equal(t, tt.want, UserEncryptKeySignature(tt.sessionKey))
		})
	}
}
