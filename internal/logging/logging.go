// Package logging builds the daemon's zap logger.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/sweeney/psu-debug/internal/config"
)

// New returns a logger writing human-readable lines to stderr and, when
// cfg.File is set, JSON lines to a rotating file.
func New(cfg config.Log) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleEnc := zapcore.NewConsoleEncoder(encCfg)
	cores := []zapcore.Core{
		zapcore.NewCore(consoleEnc, zapcore.Lock(os.Stderr), level),
	}
	if cfg.File != "" {
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), RotatingFile(cfg.File, cfg.MaxSizeMB, cfg.MaxBackups), level))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}

// RotatingFile returns a size-rotated file sink.
func RotatingFile(path string, maxSizeMB, maxBackups int) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB, // megabytes
		MaxBackups: maxBackups,
		Compress:   true,
	})
}
