package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// newLogger 根据 ENV 选择输出格式：开发环境为彩色控制台，其余为 JSON
func newLogger(out io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	env := os.Getenv("ENV")
	if env == "" || env == "dev" || env == "development" {
		output := zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "2006-01-02 15:04:05",
			FormatLevel: func(i interface{}) string {
				if s, ok := i.(string); ok && len(s) >= 3 {
					return strings.ToUpper(s[:3])
				}
				return fmt.Sprintf("%v", i)
			},
		}
		return zerolog.New(output).Level(level).With().Timestamp().Logger()
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// sdkLogger SDK 使用 slog，这里将其输出转发到 zerolog
func sdkLogger(log zerolog.Logger, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	writer := log.With().Str("component", "sdk").Logger()
	return slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// zerolog 自带时间戳
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}
