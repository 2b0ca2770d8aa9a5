// Package logger builds the application's slog logger on top of a zap core
// and the rotating error log that records failed HTTP requests.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

// New returns a slog logger writing to stdout.
func New(cfg Config) *slog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

func NewWithWriter(cfg Config, w io.Writer) *slog.Logger {
	core := zapcore.NewCore(newEncoder(cfg.Format), zapcore.AddSync(w), ParseLevel(cfg.Level))
	return slog.New(zapslog.NewHandler(core))
}

// ParseLevel maps a level name to a zap level. Unknown names mean info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func newEncoder(format string) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if strings.EqualFold(format, "console") {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(cfg)
	}
	return zapcore.NewJSONEncoder(cfg)
}
