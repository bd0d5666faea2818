package logger

const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config controls the zap logger built by NewLoggerClient.
type Config struct {
	// Level is one of Debug, Info, Warning or Error.
	// Anything else falls back to Info.
	Level string `yaml:"level" envconfig:"ZAP_LOGGER_LEVEL" env:"ZAP_LOGGER_LEVEL" envDefault:"info"`

	// ServiceName is attached to every entry as the "service" field.
	ServiceName string `yaml:"service_name" envconfig:"LOGGER_SERVICE_NAME" env:"LOGGER_SERVICE_NAME"`

	// EnableTracing makes the *WithContext methods attach trace_id and
	// span_id from the active OpenTelemetry span.
	EnableTracing bool `yaml:"enable_tracing" envconfig:"LOGGER_ENABLE_TRACING" env:"LOGGER_ENABLE_TRACING"`
}
