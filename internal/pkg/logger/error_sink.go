package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	errorLogMaxSizeMB  = 20
	errorLogMaxAgeDays = 14
)

// ErrorSink appends one line per failed request to a size and age rotated
// file.
type ErrorSink struct {
	logger *zap.Logger
	closer func() error
}

func NewErrorSink(path string) *ErrorSink {
	rotator := &lumberjack.Logger{
		Filename: path,
		MaxSize:  errorLogMaxSizeMB,
		MaxAge:   errorLogMaxAgeDays,
		Compress: true,
	}
	sink := newErrorSink(zapcore.AddSync(rotator))
	sink.closer = rotator.Close
	return sink
}

func newErrorSink(w zapcore.WriteSyncer) *ErrorSink {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(cfg), w, zapcore.WarnLevel)
	return &ErrorSink{
		logger: zap.New(core),
		closer: func() error { return nil },
	}
}

// Record logs a 4xx as a warning and a 5xx as an error.
func (s *ErrorSink) Record(status int, message, url, method string) {
	line := fmt.Sprintf("Status: %d, Message: %s, URL: %s, Method: %s", status, message, url, method)
	if status >= 500 {
		s.logger.Error(line)
		return
	}
	s.logger.Warn(line)
}

func (s *ErrorSink) Close() error {
	_ = s.logger.Sync()
	return s.closer()
}
