package main

import (
	"github.com/rs/zerolog"

	"github.com/ShinyNito/FunkQQ/core"
	"github.com/ShinyNito/FunkQQ/miniprogram"
)

// errCodeHint 常见业务错误码的处理建议
func errCodeHint(code int) string {
	switch code {
	case core.ErrCodeBusy:
		return "system busy, retry later"
	case core.ErrCodeInvalidToken:
		return "access_token invalid or expired, fetch a new one with `funkqq token`"
	case core.ErrCodeInvalidCode:
		return "login code invalid or already used, call qq.login again"
	case core.ErrCodeRiskyContent:
		return "content contains risky text"
	default:
		return ""
	}
}

// resultErrCode 取出接口结果中的 errcode，结果不带 errcode 时返回 0
func resultErrCode(result any) (int, string) {
	switch r := result.(type) {
	case *miniprogram.AccessTokenResponse:
		return r.ErrCode, r.ErrMsg
	case *miniprogram.Code2SessionResponse:
		return r.ErrCode, r.ErrMsg
	case *miniprogram.UserEncryptKeyResponse:
		return r.ErrCode, r.ErrMsg
	case *miniprogram.MsgSecCheckResponse:
		return r.ErrCode, r.ErrMsg
	default:
		return core.ErrCodeSuccess, ""
	}
}

func warnErrCode(log zerolog.Logger, code int, msg string) {
	event := log.Warn().Int("errcode", code).Str("errmsg", msg)
	if hint := errCodeHint(code); hint != "" {
		event = event.Str("hint", hint)
	}
	event.Msg("api returned errcode")
}
