package pushgateway

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"regexp"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/semaphore"
)

// Logger defines the logging methods used by the scheduler.
//
//go:generate mockgen -source=setup.go -destination=mock_logger.go -package=pushgateway
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// State is the scheduler lifecycle state.
type State int32

const (
	StateDisabled State = iota
	StateIdle
	StateScheduled
	StatePushing
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateDisabled:
		return "disabled"
	case StateIdle:
		return "idle"
	case StateScheduled:
		return "scheduled"
	case StatePushing:
		return "pushing"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Scheduler pushes a gatherer's snapshot to a Pushgateway on a fixed interval.
// It shares nothing with the request path except the gatherer.
type Scheduler struct {
	cfg      Config
	interval time.Duration
	gatherer prometheus.Gatherer
	client   *http.Client
	logger   Logger

	cbMu     sync.Mutex
	callback Callback

	state    atomic.Int32
	inflight atomic.Int32
	attempts atomic.Uint64
	slots    *semaphore.Weighted

	ctx       context.Context
	cancel    context.CancelFunc
	stopCh    chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

var groupingLabelPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// NewScheduler builds a scheduler for gatherer. It never fails: missing or
// malformed configuration yields a Disabled scheduler, and setup errors are
// logged and also leave it Disabled. The default callback logs through
// logger; replace it with WithCallback.
func NewScheduler(cfg Config, gatherer prometheus.Gatherer, logger Logger) *Scheduler {
	s := &Scheduler{
		cfg:      cfg,
		interval: cfg.EffectiveInterval(),
		gatherer: gatherer,
		logger:   logger,
		callback: DefaultCallback(logger),
		stopCh:   make(chan struct{}),
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.state.Store(int32(StateDisabled))

	if !cfg.Enabled() || gatherer == nil {
		return s
	}

	if err := s.setup(); err != nil {
		s.logError("Push scheduler setup failed, pushing disabled", err, map[string]interface{}{
			"job": cfg.JobName,
		})
		return s
	}

	s.state.Store(int32(StateIdle))
	return s
}

// setup builds the HTTP client and checks grouping labels. Panics are
// converted to errors so a broken setup never escapes the constructor.
func (s *Scheduler) setup() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	for name := range s.cfg.Grouping {
		if name == "job" || !groupingLabelPattern.MatchString(name) {
			return fmt.Errorf("%w: %q", ErrInvalidGrouping, name)
		}
	}

	s.client = newHTTPClient()
	s.slots = semaphore.NewWeighted(MaxSockets)
	return nil
}

// newHTTPClient returns a keep-alive client with at most MaxSockets
// connections and a RequestTimeout per request.
func newHTTPClient() *http.Client {
	dialer := &net.Dialer{
		Timeout:   RequestTimeout,
		KeepAlive: KeepAlive,
	}
	return &http.Client{
		Timeout: RequestTimeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			DialContext:         dialer.DialContext,
			MaxConnsPerHost:     MaxSockets,
			MaxIdleConns:        MaxSockets,
			MaxIdleConnsPerHost: MaxSockets,
			IdleConnTimeout:     KeepAlive,
		},
	}
}

// WithCallback replaces the result callback. nil selects NopCallback.
// It returns the scheduler for chaining.
func (s *Scheduler) WithCallback(cb Callback) *Scheduler {
	if cb == nil {
		cb = NopCallback
	}
	s.cbMu.Lock()
	s.callback = cb
	s.cbMu.Unlock()
	return s
}

// Interval returns the effective push interval.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	st := State(s.state.Load())
	if st == StateScheduled && s.inflight.Load() > 0 {
		return StatePushing
	}
	return st
}

func (s *Scheduler) logError(msg string, err error, fields map[string]interface{}) {
	if s.logger == nil {
		return
	}
	s.logger.Error(msg, err, fields)
}
