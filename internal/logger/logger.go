// Package logger provides the shared zap sugared logger.
package logger

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.SugaredLogger
	once   sync.Once
)

// Init builds the global logger. Later calls are no-ops.
func Init(level string, production bool) {
	once.Do(func() {
		logger = build(level, production)
	})
}

// Get returns the global logger, initialising a development logger on first use.
func Get() *zap.SugaredLogger {
	once.Do(func() {
		logger = build(os.Getenv("LOG_LEVEL"), os.Getenv("ENVIRONMENT") == "production")
	})
	return logger
}

func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}

func build(levelStr string, production bool) *zap.SugaredLogger {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = zapcore.InfoLevel
	}

	cfg := zap.NewDevelopmentConfig()
	if production {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stdout"}

	zapLogger, err := cfg.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	return zapLogger.Sugar()
}
