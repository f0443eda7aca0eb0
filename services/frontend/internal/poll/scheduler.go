package poll

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/appetiteclub/apt"
)

// Func fetches and applies one round of remote state.
type Func func(ctx context.Context) error

var (
	ErrAlreadyRunning  = errors.New("scheduler already running")
	ErrInvalidInterval = errors.New("poll interval must be positive")
)

// Scheduler runs a poll immediately on Start, then once per interval, plus on
// demand through Trigger. Polls never overlap: they all run on one goroutine.
// A failed poll is logged and the next tick tries again.
type Scheduler struct {
	name     string
	interval time.Duration
	fn       Func
	logger   apt.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	trigger chan struct{}
}

func New(name string, interval time.Duration, fn Func, logger apt.Logger) *Scheduler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Scheduler{
		name:     name,
		interval: interval,
		fn:       fn,
		logger:   logger.With("poller", name),
	}
}

func (s *Scheduler) Name() string {
	return s.name
}

// Start launches the poll loop. The loop ends when ctx is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.interval <= 0 {
		return ErrInvalidInterval
	}
	if s.fn == nil {
		return errors.New("poll func is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return ErrAlreadyRunning
	}

	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.trigger = make(chan struct{}, 1)

	go s.run(loopCtx, s.done, s.trigger)

	s.logger.Debug("poll scheduler started", "interval", s.interval.String())
	return nil
}

// Stop cancels the loop and waits for an in-flight poll to return. Calling it twice,
// or before Start, does nothing. It must not be called from inside the poll func.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel = nil
	s.done = nil
	s.trigger = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done
	s.logger.Debug("poll scheduler stopped")
}

// Trigger asks for a poll now. Requests made while one is already pending collapse
// into a single poll. It is a no-op when the scheduler is not running.
func (s *Scheduler) Trigger() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.trigger == nil {
		return
	}

	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

func (s *Scheduler) run(ctx context.Context, done chan struct{}, trigger <-chan struct{}) {
	defer close(done)

	s.poll(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.poll(ctx)
		case <-trigger:
			s.poll(ctx)
		}
	}
}

func (s *Scheduler) poll(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	if err := s.fn(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Error("poll failed", "error", err)
	}
}
