package logger

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

var ErrUnknownLevel = errors.New("unknown log level")

// Str2ZapLevel maps a config level name onto a zap level.
func Str2ZapLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	case "dpanic":
		return zapcore.DPanicLevel, nil
	case "panic":
		return zapcore.PanicLevel, nil
	case "fatal":
		return zapcore.FatalLevel, nil
	}
	return zapcore.InfoLevel, errors.Wrap(ErrUnknownLevel, level)
}
