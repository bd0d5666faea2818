// Package logger provides structured logging for the redmetrics packages and
// the services that embed them.
//
// The logger wraps Uber's zap and follows the "accept interfaces, return
// structs" pattern:
//   - Logger interface: the method set every consuming package depends on
//   - LoggerClient struct: the zap-backed implementation
//   - NewLoggerClient constructor: returns *LoggerClient
//   - FXModule: provides both *LoggerClient and Logger for dependency injection
//
// # Direct Usage (Without FX)
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:       logger.Info,
//		ServiceName: "orders-api",
//	})
//
//	log.Info("Push scheduler started", nil, map[string]interface{}{
//		"interval": "60s",
//	})
//
// # Tracing Integration
//
// With EnableTracing set, the *WithContext methods add trace_id and span_id
// fields taken from the OpenTelemetry span carried by the context.
//
// # Configuration
//
//	ZAP_LOGGER_LEVEL=debug         # debug, info, warning, error
//	LOGGER_SERVICE_NAME=orders-api # added as "service" to every entry
//	LOGGER_ENABLE_TRACING=true     # trace/span ids in *WithContext entries
//
// # Thread Safety
//
// All methods are safe for concurrent use by multiple goroutines.
package logger
