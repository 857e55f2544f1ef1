package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

// 日誌輸出格式
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Options 日誌設定
type Options struct {
	Level  string // debug | info | warn | error
	Format string // json | console
	Output io.Writer
}

// New 建立 slog.Logger
//
// json：zap production core 透過 zapslog 接到 slog。
// console：ColorHandler，終端機輸出時依等級上色。
// 返回的 sync 函數在程式結束前呼叫，清空 zap 緩衝。
func New(opts Options) (*slog.Logger, func(), error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	switch opts.Format {
	case FormatConsole:
		h := NewColorHandler(opts.Output, &slog.HandlerOptions{Level: level})
		return slog.New(h), func() {}, nil
	case FormatJSON, "":
		core, err := newZapCore(opts.Output, level)
		if err != nil {
			return nil, nil, err
		}
		logg := zap.New(core)
		return slog.New(zapslog.NewHandler(logg.Core())), func() { _ = logg.Sync() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported log format %q", opts.Format)
	}
}

// ParseLevel 解析等級字串（大小寫不敏感，空字串視為 info）
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// newZapCore production encoder；Output 為 nil 時寫到 stderr
func newZapCore(out io.Writer, level slog.Level) (zapcore.Core, error) {
	if out == nil {
		logg, err := zap.NewProduction(zap.IncreaseLevel(zapLevel(level)))
		if err != nil {
			return nil, fmt.Errorf("failed to build zap logger: %w", err)
		}
		return logg.Core(), nil
	}

	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	return zapcore.NewCore(encoder, zapcore.AddSync(out), zapLevel(level)), nil
}

func zapLevel(level slog.Level) zapcore.Level {
	switch {
	case level >= slog.LevelError:
		return zapcore.ErrorLevel
	case level >= slog.LevelWarn:
		return zapcore.WarnLevel
	case level >= slog.LevelInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// Discard 丟棄所有輸出（測試用）
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
