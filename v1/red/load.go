package red

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads a YAML file over DefaultConfig and then applies
// environment variables, which win over the file.
//
//	metrics_path: /internal/metrics
//	normalize_status: true
//	masks:
//	  - pattern: '^[a-z]{2}-[A-Z]{2}$'
//	    replacement: '#locale'
//	metrics:
//	  namespace: orders
//	  label_names: [tenant]
//	pushgateway:
//	  url: http://pushgateway:9091
//	  job_name: orders-api
//	  interval: 30s
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("red: read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
	}

	return applyEnv(cfg)
}

// LoadConfigFromEnv applies environment variables over DefaultConfig.
func LoadConfigFromEnv() (Config, error) {
	return applyEnv(DefaultConfig())
}

// applyEnv overlays environment variables. Masks are file-only and kept as
// they are.
func applyEnv(cfg Config) (Config, error) {
	masks := cfg.Masks
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: environment: %v", ErrInvalidConfig, err)
	}
	cfg.Masks = masks
	return cfg.WithDefaults(), nil
}
