package pacer

import (
	"testing"
	"time"
)

// fakeClock lets tests drive Advance without real sleeps.
type fakeClock struct {
	t     time.Time
	slept time.Duration
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) sleep(d time.Duration) {
	c.slept += d
	c.t = c.t.Add(d)
}

func newTestPacer(clk *fakeClock, opts ...Option) *Pacer {
	p := New(opts...)
	p.now = clk.now
	p.sleep = clk.sleep
	p.deadline = clk.t
	return p
}

func TestAdvanceBlocksUntilDeadline(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	p := newTestPacer(clk, WithClockHz(1000000))

	p.Advance(1000000) // one full second of emulated time
	if clk.slept != time.Second {
		t.Errorf("slept = %v, want %v", clk.slept, time.Second)
	}
}

func TestAdvanceDoesNotBlockWhenBehindSchedule(t *testing.T) {
	clk := &fakeClock{t: time.Unix(100, 0)}
	p := newTestPacer(clk, WithClockHz(1000000))
	p.deadline = time.Unix(0, 0) // already long past

	p.Advance(1)
	if clk.slept != 0 {
		t.Errorf("slept = %v, want 0", clk.slept)
	}
}

func TestAdvanceDisabledNeverSleeps(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	p := newTestPacer(clk, WithClockHz(1000000), WithPacingEnabled(false))

	p.Advance(1000000)
	if clk.slept != 0 {
		t.Errorf("slept = %v, want 0", clk.slept)
	}
	if p.deadline.Sub(clk.t) != time.Second {
		t.Errorf("deadline did not advance despite disabled pacing")
	}
}

func TestResyncDropsAccruedSkew(t *testing.T) {
	clk := &fakeClock{t: time.Unix(50, 0)}
	p := newTestPacer(clk, WithClockHz(1000000))
	p.deadline = time.Unix(0, 0)

	p.Resync()
	if !p.deadline.Equal(clk.t) {
		t.Errorf("deadline = %v, want %v", p.deadline, clk.t)
	}
}
