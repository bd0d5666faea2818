package pushgateway

import (
	"net/url"
	"time"
)

const (
	// DefaultInterval is used when neither Interval nor IntervalMillis is set.
	DefaultInterval = 60 * time.Second

	// RequestTimeout bounds a single push.
	RequestTimeout = 5 * time.Second

	// MaxSockets bounds both the connection pool and in-flight pushes.
	MaxSockets = 5

	// KeepAlive is the TCP keep-alive period and idle connection lifetime.
	KeepAlive = 10 * time.Second
)

// Config defines the push target and cadence.
type Config struct {
	// URL of the Pushgateway, e.g. "http://pushgateway:9091".
	URL string `yaml:"url" envconfig:"PUSHGATEWAY_URL" env:"PUSHGATEWAY_URL"`

	// JobName is the job label the snapshot is pushed under.
	JobName string `yaml:"job_name" envconfig:"PUSHGATEWAY_JOB_NAME" env:"PUSHGATEWAY_JOB_NAME"`

	// Username and Password enable basic auth when both are set.
	Username string `yaml:"username" envconfig:"PUSHGATEWAY_USERNAME" env:"PUSHGATEWAY_USERNAME"`
	Password string `yaml:"password" envconfig:"PUSHGATEWAY_PASSWORD" env:"PUSHGATEWAY_PASSWORD"`

	// Interval between pushes. Takes precedence over IntervalMillis.
	Interval time.Duration `yaml:"interval" envconfig:"PUSHGATEWAY_INTERVAL" env:"PUSHGATEWAY_INTERVAL"`

	// IntervalMillis is the interval in milliseconds.
	IntervalMillis int64 `yaml:"interval_ms" envconfig:"PUSHGATEWAY_INTERVAL_MS" env:"PUSHGATEWAY_INTERVAL_MS"`

	// Grouping adds grouping key labels besides job, e.g. {"instance": "batch-1"}.
	Grouping map[string]string `yaml:"grouping" envconfig:"PUSHGATEWAY_GROUPING" env:"PUSHGATEWAY_GROUPING"`
}

// Enabled reports whether URL and JobName are set and URL is a well-formed
// absolute http(s) URL.
func (c Config) Enabled() bool {
	if c.URL == "" || c.JobName == "" {
		return false
	}
	u, err := url.ParseRequestURI(c.URL)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// EffectiveInterval resolves Interval, IntervalMillis and the default.
func (c Config) EffectiveInterval() time.Duration {
	switch {
	case c.Interval > 0:
		return c.Interval
	case c.IntervalMillis > 0:
		return time.Duration(c.IntervalMillis) * time.Millisecond
	default:
		return DefaultInterval
	}
}

func (c Config) basicAuth() bool {
	return c.Username != "" && c.Password != ""
}
