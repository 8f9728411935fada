package logger

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

// Config carries the log settings so this package stays decoupled from the
// config package.
type Config struct {
	Level    string
	Encoding string
}

// New builds the process logger. Unknown levels fall back to info, unknown
// encodings to JSON.
func New(cfg Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	_ = level.Set(cfg.Level)

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeDuration = zapcore.StringDurationEncoder

	var encoder zapcore.Encoder
	if cfg.Encoding == "console" {
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(zapcore.Lock(os.Stdout)), level)
	return zap.New(core, zap.AddCaller()), nil
}

// ContextWithRequestID stores the request ID so downstream layers can tag
// their log lines with it.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, requestID)
}

// RequestIDFrom extracts a request ID previously attached by
// ContextWithRequestID.
func RequestIDFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// WithRequestID returns a child logger tagged with the context's request ID,
// or the base logger unchanged when there is none.
func WithRequestID(ctx context.Context, base *zap.Logger) *zap.Logger {
	if base == nil {
		return base
	}
	if id := RequestIDFrom(ctx); id != "" {
		return base.With(zap.String("request_id", id))
	}
	return base
}
