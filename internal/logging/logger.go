package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls logger construction
type Options struct {
	Level       string
	Format      string // json or console
	File        string // rotating file pattern, e.g. logs/eva.%Y%m%d.log
	Development bool
	Reporter    Reporter
}

func levelFromString(l string) zapcore.Level {
	switch l {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New builds a *zap.Logger from options
func New(opts Options) (*zap.Logger, error) {
	lvl := levelFromString(opts.Level)

	var encoder zapcore.Encoder
	if opts.Format == "json" {
		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	} else {
		encoderCfg := zap.NewDevelopmentEncoderConfig()
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	}

	var out io.Writer = os.Stderr
	if opts.File != "" {
		rl, err := rotatelogs.New(
			opts.File,
			rotatelogs.WithMaxAge(7*24*time.Hour),
			rotatelogs.WithRotationTime(24*time.Hour),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to open rotating log file: %w", err)
		}
		out = rl
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(out), lvl)

	zopts := []zap.Option{zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)}
	if opts.Development {
		zopts = append(zopts, zap.Development())
	}
	if opts.Reporter != nil {
		zopts = append(zopts, zap.Hooks(ReportHook(opts.Reporter)))
	}

	return zap.New(core, zopts...), nil
}
