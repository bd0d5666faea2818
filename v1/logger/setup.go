package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerClient is a wrapper around Uber's Zap logger.
type LoggerClient struct {
	// Zap is exposed for callers that need zap-specific functionality.
	Zap *zap.Logger

	tracingEnabled bool
}

// NewLoggerClient builds a JSON zap logger writing to stderr with ISO8601
// timestamps, caller information and the pid/service initial fields.
//
// If zap cannot be built the process is terminated with log.Fatal, the same
// way a missing logger would make every other component unusable.
//
// Example:
//
//	log := logger.NewLoggerClient(logger.Config{Level: logger.Debug})
//	log.Debug("normalizer ready", nil, nil)
func NewLoggerClient(cfg Config) *LoggerClient {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderCfg.EncodeCaller = zapcore.ShortCallerEncoder
	encoderCfg.EncodeDuration = zapcore.MillisDurationEncoder

	config := zap.Config{
		Level:             zap.NewAtomicLevelAt(parseLevel(cfg.Level)),
		Development:       false,
		DisableCaller:     false,
		DisableStacktrace: false,
		Sampling:          nil,
		Encoding:          "json",
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
		InitialFields: map[string]interface{}{
			"pid":     os.Getpid(),
			"service": cfg.ServiceName,
		},
	}

	// Skip one frame so the caller of Info/Warn/... is reported, not utils.go.
	z, err := config.Build(zap.AddCaller(), zap.AddCallerSkip(1))
	if err != nil {
		log.Fatal(err)
	}

	return &LoggerClient{
		Zap:            z,
		tracingEnabled: cfg.EnableTracing,
	}
}

// NewFromZap wraps an existing zap logger, e.g. zaptest or zap.NewNop in tests.
func NewFromZap(z *zap.Logger, enableTracing bool) *LoggerClient {
	return &LoggerClient{Zap: z, tracingEnabled: enableTracing}
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case Debug:
		return zap.DebugLevel
	case Warning:
		return zap.WarnLevel
	case Error:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}
