// Command funkqq 从命令行调用 QQ 小程序服务端接口，便于联调与排查。
//
// 用法:
//
//	funkqq [-config miniprogram.yaml] [-token ACCESS_TOKEN] [-v] <command> [args...]
//
// 命令:
//
//	token                                         获取 access_token
//	session <code>                                code2session
//	encrypt-key <openid> <session_key>            获取用户 encryptKey
//	encrypt <openid> <session_key> <json>         加密数据
//	decrypt <openid> <session_key> <version> <s>  解密数据
//	check <content>                               文本内容安全识别
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	"github.com/ShinyNito/FunkQQ/config"
	"github.com/ShinyNito/FunkQQ/core"
	"github.com/ShinyNito/FunkQQ/miniprogram"
)

var errUsage = errors.New("usage")

func main() {
	configPath := flag.String("config", "", "Path to config file (yaml/json/toml); empty reads FUNKQQ_* env only")
	token := flag.String("token", os.Getenv("FUNKQQ_ACCESS_TOKEN"), "access_token for commands that need one")
	verbose := flag.Bool("v", false, "Enable debug logging, including redacted HTTP traffic")
	flag.Parse()

	log := newLogger(os.Stderr, *verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, log, os.Stdout, *configPath, *token, *verbose, flag.Args())
	if errors.Is(err, errUsage) {
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Error().Int("code", core.Code(err)).Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, log zerolog.Logger, out io.Writer, configPath, token string, verbose bool, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	mpCfg := cfg.MiniProgram()
	mpCfg.Logger = sdkLogger(log, verbose)

	client, err := miniprogram.New(mpCfg)
	if err != nil {
		return err
	}
	client.SetAccessToken(token)

	log.Debug().Str("command", args[0]).Str("appid", cfg.AppID).Msg("running")

	result, err := dispatch(ctx, client, args[0], args[1:])
	if err != nil {
		var apiErr *core.APIError
		if errors.As(err, &apiErr) {
			warnErrCode(log, apiErr.ErrCode, apiErr.ErrMsg)
		}
		return err
	}
	if code, msg := resultErrCode(result); code != core.ErrCodeSuccess {
		warnErrCode(log, code, msg)
	}

	data, err := core.Marshal(result)
	if err != nil {
		return errors.Wrap(err, "encode result")
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func dispatch(ctx context.Context, client *miniprogram.Client, command string, args []string) (any, error) {
	switch command {
	case "token":
		return client.GetAccessToken(ctx)
	case "session":
		if len(args) != 1 {
			return nil, errUsage
		}
		return client.Code2Session(ctx, args[0])
	case "encrypt-key":
		if len(args) != 2 {
			return nil, errUsage
		}
		return client.GetUserEncryptKey(ctx, args[0], args[1])
	case "encrypt":
		if len(args) != 3 {
			return nil, errUsage
		}
		data, err := core.UnmarshalValue([]byte(args[2]))
		if err != nil {
			return nil, core.WrapError(core.ErrCodeInvalidParams, "parse data", err)
		}
		return client.EncryptData(ctx, args[0], args[1], data)
	case "decrypt":
		if len(args) != 4 {
			return nil, errUsage
		}
		version, err := strconv.Atoi(args[2])
		if err != nil {
			return nil, core.WrapError(core.ErrCodeInvalidParams, "parse version", err)
		}
		return client.DecryptData(ctx, args[0], args[1], version, args[3])
	case "check":
		if len(args) != 1 {
			return nil, errUsage
		}
		return client.MsgSecCheck(ctx, args[0])
	default:
		return nil, errUsage
	}
}
