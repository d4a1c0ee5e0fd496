// Package logging builds the diagnostic logger shared by the commands.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	Level string    // debug, info, warn, error
	File  string    // optional rotating log file; empty disables it
	Err   io.Writer // console sink, os.Stderr when nil
}

// New returns a logger writing human-readable entries to the console sink
// at the configured level and, when a file is set, JSON entries at debug
// level to a rotating file.
func New(opts Options) (*zap.Logger, error) {
	lvl := zapcore.WarnLevel
	if opts.Level != "" {
		var err error
		if lvl, err = zapcore.ParseLevel(opts.Level); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
	}
	sink := opts.Err
	if sink == nil {
		sink = os.Stderr
	}

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(zapcore.AddSync(sink)), lvl),
	}

	if opts.File != "" {
		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.EncodeTime = zapcore.RFC3339TimeEncoder
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), zapcore.AddSync(rotator), zapcore.DebugLevel))
	}
	return zap.New(zapcore.NewTee(cores...)), nil
}
