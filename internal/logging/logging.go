// Package logging builds the process logger and turns bus events into log lines.
package logging

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	eventbus "github.com/ephys/graphql-non-null-directive/internal/eventbus"
	events "github.com/ephys/graphql-non-null-directive/internal/events"
	reqid "github.com/ephys/graphql-non-null-directive/internal/reqid"
)

// New returns a console logger at the parsed level. An empty level means
// debug in dev mode and info otherwise. Dev mode also adds caller information.
func New(dev bool, level string) (*zap.Logger, error) {
	var (
		encoderConfig zapcore.EncoderConfig
		opts          []zap.Option
		lvl           = zapcore.InfoLevel
	)
	if dev {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		lvl = zapcore.DebugLevel
		host, _ := os.Hostname()
		opts = append(opts,
			zap.AddCaller(),
			zap.AddStacktrace(zap.ErrorLevel),
			zap.Fields(zap.String("hostname", host), zap.Int("pid", os.Getpid())))
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
	}
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		lvl = parsed
	}
	encoderConfig.ConsoleSeparator = " "
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339Nano)

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(os.Stderr),
		lvl,
	)
	return zap.New(core, opts...), nil
}

// Register subscribes log handlers to the global event bus.
func Register(logger *zap.Logger) (unregister func()) {
	unsubs := []func(){
		eventbus.Subscribe(func(ctx context.Context, e events.HTTPFinish) {
			logger.Debug("http request",
				requestID(ctx),
				zap.String("method", e.Request.Method),
				zap.String("path", e.Request.URL.Path),
				zap.Int("status", e.Status),
				zap.Duration("duration", e.Duration))
		}),
		eventbus.Subscribe(func(ctx context.Context, e events.GraphQLFinish) {
			fields := []zap.Field{
				requestID(ctx),
				zap.String("operation", e.OperationName),
				zap.String("type", e.OperationType),
				zap.Duration("duration", e.Duration),
			}
			if len(e.Errors) > 0 {
				fields = append(fields, zap.Errors("errors", e.Errors))
				logger.Warn("graphql operation failed", fields...)
				return
			}
			logger.Info("graphql operation", fields...)
		}),
		eventbus.Subscribe(func(ctx context.Context, e events.NullInputRejected) {
			logger.Info("null input rejected",
				requestID(ctx),
				zap.String("field", e.ObjectType+"."+e.Field),
				zap.String("path", e.Path))
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

func requestID(ctx context.Context) zap.Field {
	rid, ok := reqid.FromContext(ctx)
	if !ok {
		return zap.Skip()
	}
	return zap.String("request_id", rid)
}
