// Package timer provides the countdowns used by timed puzzles.
//
// A Service owns at most one running countdown. Starting another, or calling
// Cancel, stops the previous one before it can fire again, so callbacks never
// need to check whether they belong to a stale countdown. Time only moves
// when the owner calls Advance, which keeps every callback on the caller's
// event loop.
package timer

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultTick is the update rate used when none is configured (25 per second).
const DefaultTick = 40 * time.Millisecond

// UpdateFunc receives the remaining fraction in (0, 1]. Returning false
// cancels the countdown without firing expiry.
type UpdateFunc func(remaining float64) bool

// Service drives countdowns at a fixed tick rate.
type Service struct {
	tick    time.Duration
	current *Countdown
	nextID  uint64
	log     *zap.Logger
}

// Countdown is a handle to one started countdown.
type Countdown struct {
	id       uint64
	duration time.Duration
	elapsed  time.Duration
	pending  time.Duration
	onUpdate UpdateFunc
	onExpire func()
	stopped  bool
	svc      *Service
}

// New returns a Service ticking every tick (DefaultTick when tick <= 0).
func New(tick time.Duration, log *zap.Logger) *Service {
	if tick <= 0 {
		tick = DefaultTick
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{tick: tick, log: log}
}

// Tick returns the configured tick interval.
func (s *Service) Tick() time.Duration {
	return s.tick
}

// Start cancels any running countdown and starts a new one of duration d.
// onExpire runs exactly once when the remaining time reaches zero.
func (s *Service) Start(d time.Duration, onUpdate UpdateFunc, onExpire func()) *Countdown {
	s.Cancel()
	s.nextID++
	c := &Countdown{
		id:       s.nextID,
		duration: d,
		onUpdate: onUpdate,
		onExpire: onExpire,
		svc:      s,
	}
	s.current = c
	s.log.Debug("countdown started", zap.Uint64("id", c.id), zap.Duration("duration", d))
	return c
}

// Cancel stops the running countdown, if any. Its callbacks will not run again.
func (s *Service) Cancel() {
	if s.current != nil {
		s.current.Stop()
	}
}

// Current returns the running countdown or nil.
func (s *Service) Current() *Countdown {
	return s.current
}

// Advance moves time forward by dt, running one update per whole tick.
func (s *Service) Advance(dt time.Duration) {
	c := s.current
	if c == nil || dt <= 0 {
		return
	}
	c.pending += dt
	for c.pending >= s.tick && !c.stopped {
		c.pending -= s.tick
		c.elapsed += s.tick
		if c.elapsed >= c.duration {
			c.elapsed = c.duration
			c.finish()
			s.log.Debug("countdown expired", zap.Uint64("id", c.id))
			if c.onExpire != nil {
				c.onExpire()
			}
			return
		}
		if c.onUpdate != nil && !c.onUpdate(c.Remaining()) {
			c.finish()
			s.log.Debug("countdown cancelled by update", zap.Uint64("id", c.id))
			return
		}
	}
}

// ID identifies the countdown within its Service.
func (c *Countdown) ID() uint64 {
	return c.id
}

// Remaining returns the remaining fraction of the duration.
func (c *Countdown) Remaining() float64 {
	if c.duration <= 0 {
		return 0
	}
	return 1 - float64(c.elapsed)/float64(c.duration)
}

// Active reports whether the countdown can still fire.
func (c *Countdown) Active() bool {
	return !c.stopped
}

// Stop cancels the countdown.
func (c *Countdown) Stop() {
	if c.stopped {
		return
	}
	c.finish()
	c.svc.log.Debug("countdown cancelled", zap.Uint64("id", c.id))
}

func (c *Countdown) finish() {
	c.stopped = true
	if c.svc.current == c {
		c.svc.current = nil
	}
}

// Pump converts a wall-clock ticker into elapsed durations on out, for loops
// that multiplex ticks with other events. It returns when ctx is done.
func Pump(ctx context.Context, every time.Duration, out chan<- time.Duration) {
	if every <= 0 {
		every = DefaultTick
	}
	t := time.NewTicker(every)
	defer t.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			dt := now.Sub(last)
			last = now
			select {
			case out <- dt:
			case <-ctx.Done():
				return
			}
		}
	}
}
