// Package logger printf-подобный логгер поверх zap.
// Пишет JSON в stdout и, если указан, в файл.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger обертка над zap.SugaredLogger с интерфейсом Info/Warn/Error(format, v...)
type Logger struct {
	sugar *zap.SugaredLogger
	base  *zap.Logger
}

// New создает логгер. file может быть пустым - тогда только stdout.
// level: debug, info, warn, error (по умолчанию info)
func New(file string, level string) (*Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	cfg.Sampling = nil

	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if file != "" {
		if dir := filepath.Dir(file); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("logger: create log dir: %w", err)
			}
		}
		cfg.OutputPaths = append(cfg.OutputPaths, file)
	}

	base, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("logger: build: %w", err)
	}

	return &Logger{sugar: base.Sugar(), base: base}, nil
}

// NewNop логгер, который ничего не пишет (для тестов)
func NewNop() *Logger {
	base := zap.NewNop()
	return &Logger{sugar: base.Sugar(), base: base}
}

// Zap возвращает исходный *zap.Logger для структурного логирования (middleware)
func (l *Logger) Zap() *zap.Logger {
	return l.base
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.sugar.Debugf(format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.sugar.Infof(format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.sugar.Warnf(format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.sugar.Errorf(format, v...)
}

// Fatal пишет сообщение и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.sugar.Fatalf(format, v...)
}

// Close сбрасывает буферы
func (l *Logger) Close() error {
	err := l.base.Sync()
	// Sync на stdout/stderr возвращает EINVAL на некоторых платформах
	if err != nil && strings.Contains(err.Error(), "invalid argument") {
		return nil
	}
	return err
}

func parseLevel(level string) (zapcore.Level, error) {
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return lvl, fmt.Errorf("logger: unknown level %q", level)
	}
	return lvl, nil
}
