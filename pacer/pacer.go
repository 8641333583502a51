// Package pacer converts emulated CPU cycles into real-time delay against
// a monotonic clock, so that a guest program observes the same timing on
// the emulator as it would on Odin32K silicon.
package pacer

import "time"

// DefaultClockHz is the Odin32K's nominal bus frequency.
const DefaultClockHz = 4000000

// A Pacer tracks the deadline of the next completed cycle and blocks the
// calling goroutine until that deadline arrives.
type Pacer struct {
	period   time.Duration
	enabled  bool
	deadline time.Time
	now      func() time.Time
	sleep    func(time.Duration)
}

// Option configures a Pacer at construction time.
type Option func(*Pacer)

// WithClockHz sets the target bus frequency. Zero or negative values are
// ignored and the default is kept.
func WithClockHz(hz int64) Option {
	return func(p *Pacer) {
		if hz > 0 {
			p.period = time.Second / time.Duration(hz)
		}
	}
}

// WithPacingEnabled controls whether Advance ever sleeps. Pacing is
// enabled by default.
func WithPacingEnabled(enabled bool) Option {
	return func(p *Pacer) { p.enabled = enabled }
}

// New creates a Pacer whose deadline starts at the current time.
func New(opts ...Option) *Pacer {
	p := &Pacer{
		period:  time.Second / DefaultClockHz,
		enabled: true,
		now:     time.Now,
		sleep:   time.Sleep,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.deadline = p.now()
	return p
}

// Advance moves the deadline forward by n cycles and blocks until the
// monotonic clock reaches it. If the deadline has already passed, Advance
// returns immediately; the emulator is then free-running behind schedule.
func (p *Pacer) Advance(n int) {
	p.deadline = p.deadline.Add(p.period * time.Duration(n))
	if !p.enabled {
		return
	}
	delay := p.deadline.Sub(p.now())
	if delay > 0 {
		p.sleep(delay)
	}
}

// Resync resets the deadline to the current time, discarding any accrued
// skew. Used when resuming from an external pause such as a single-step
// prompt, so that paused wall-clock time is not charged to the guest.
func (p *Pacer) Resync() {
	p.deadline = p.now()
}

// Deadline returns the pacer's current target time, for diagnostics.
func (p *Pacer) Deadline() time.Time {
	return p.deadline
}
