package pushgateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus/push"
)

// Start arms the ticker. It is a no-op for disabled, already started or
// stopped schedulers.
func (s *Scheduler) Start() {
	if !s.state.CompareAndSwap(int32(StateIdle), int32(StateScheduled)) {
		return
	}
	s.startOnce.Do(func() {
		s.wg.Add(1)
		go s.run()
	})
}

// Stop disarms the ticker and waits for in-flight pushes. If ctx ends first
// the in-flight pushes are cancelled and ctx.Err() is returned.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.stopOnce.Do(func() {
		s.state.Store(int32(StateStopped))
		close(s.stopCh)
	})

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.cancel()
		return nil
	case <-ctx.Done():
		s.cancel()
		return ctx.Err()
	}
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

// tick dispatches one push without waiting for it.
func (s *Scheduler) tick() {
	attempt := s.attempts.Add(1)

	if !s.slots.TryAcquire(1) {
		s.report(Result{
			Attempt: attempt,
			Start:   time.Now(),
			Kind:    KindSkipped,
			Err:     ErrPushInFlight,
		})
		return
	}

	s.inflight.Add(1)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.slots.Release(1)
		defer s.inflight.Add(-1)
		s.report(s.push(attempt))
	}()
}

// push performs one push-add and classifies the outcome.
func (s *Scheduler) push(attempt uint64) (res Result) {
	res = Result{Attempt: attempt, Start: time.Now()}

	defer func() {
		if r := recover(); r != nil {
			res.Kind = KindPanic
			res.Err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
		res.Duration = time.Since(res.Start)
	}()

	ctx, cancel := context.WithTimeout(s.ctx, RequestTimeout)
	defer cancel()

	doer := &statusRecorder{client: s.client}
	err := s.pusher(doer).AddContext(ctx)

	res.StatusCode = doer.statusCode
	switch {
	case err == nil:
		res.Kind = KindSuccess
	case doer.statusCode != 0 && (doer.statusCode < 200 || doer.statusCode > 299):
		res.Kind = KindStatus
		res.Err = fmt.Errorf("%w: %w", ErrUnexpectedStatus, err)
	default:
		res.Kind = KindError
		res.Timeout = isTimeout(err)
		res.Err = err
	}
	return res
}

func (s *Scheduler) pusher(doer push.HTTPDoer) *push.Pusher {
	p := push.New(s.cfg.URL, s.cfg.JobName).
		Gatherer(s.gatherer).
		Client(doer)

	if s.cfg.basicAuth() {
		p = p.BasicAuth(s.cfg.Username, s.cfg.Password)
	}

	names := make([]string, 0, len(s.cfg.Grouping))
	for name := range s.cfg.Grouping {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		p = p.Grouping(name, s.cfg.Grouping[name])
	}
	return p
}

// report hands r to the callback. Callbacks never run concurrently and a
// panicking callback does not take the scheduler down.
func (s *Scheduler) report(r Result) {
	s.cbMu.Lock()
	defer s.cbMu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			s.logError("Push result callback panicked", fmt.Errorf("%w: %v", ErrPanic, p), map[string]interface{}{
				"attempt": r.Attempt,
			})
		}
	}()

	s.callback(r)
}

// statusRecorder remembers the status code of the single request a Pusher
// sends per push.
type statusRecorder struct {
	client     *http.Client
	statusCode int
}

func (d *statusRecorder) Do(req *http.Request) (*http.Response, error) {
	resp, err := d.client.Do(req)
	if resp != nil {
		d.statusCode = resp.StatusCode
	}
	return resp, err
}

// isTimeout reports whether a push failed on its deadline.
func isTimeout(err error) bool {
	var netErr net.Error
	return errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout())
}
