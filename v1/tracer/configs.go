package tracer

// Config defines the tracer provider.
type Config struct {
	// ServiceName is reported as the service.name resource attribute.
	ServiceName string `yaml:"service_name" envconfig:"TRACER_SERVICE_NAME" env:"TRACER_SERVICE_NAME"`

	// AppEnv is reported as deployment.environment.
	AppEnv string `yaml:"app_env" envconfig:"APP_ENV" env:"APP_ENV"`

	// EnableExport sends spans to an OTLP/HTTP collector configured through
	// the standard OTEL_EXPORTER_OTLP_* variables.
	EnableExport bool `yaml:"enable_export" envconfig:"TRACER_ENABLE_EXPORT" env:"TRACER_ENABLE_EXPORT"`

	// SampleRatio is the fraction of root spans sampled. Child spans follow
	// their parent. 0 selects 1 (sample everything).
	SampleRatio float64 `yaml:"sample_ratio" envconfig:"TRACER_SAMPLE_RATIO" env:"TRACER_SAMPLE_RATIO"`
}
