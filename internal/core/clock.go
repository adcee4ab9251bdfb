package core

import "time"

// Clock is a monotonic millisecond time source.
type Clock interface {
	NowMillis() int64
}

// SystemClock reads the process monotonic clock.
type SystemClock struct {
	start time.Time
}

// NewSystemClock returns a clock whose zero is the moment of creation.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// NowMillis returns the milliseconds elapsed since the clock was created.
func (c *SystemClock) NowMillis() int64 {
	return time.Since(c.start).Milliseconds()
}

// Pacer keeps a loop at a fixed tick rate on a best-effort basis.
// A tick that overruns its budget makes the next one start late; no tick is
// ever skipped.
type Pacer struct {
	budget time.Duration
	now    func() time.Time
	sleep  func(time.Duration)
	start  time.Time
}

// NewPacer creates a pacer for the given ticks per second.
func NewPacer(tickRate int) *Pacer {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Pacer{
		budget: time.Second / time.Duration(tickRate),
		now:    time.Now,
		sleep:  time.Sleep,
	}
}

// Budget returns the duration of one tick.
func (p *Pacer) Budget() time.Duration {
	return p.budget
}

// Begin marks the start of a tick.
func (p *Pacer) Begin() {
	p.start = p.now()
}

// Wait sleeps for whatever is left of the current tick's budget and returns
// the time slept.
func (p *Pacer) Wait() time.Duration {
	remaining := p.budget - p.now().Sub(p.start)
	if remaining <= 0 {
		return 0
	}
	p.sleep(remaining)
	return remaining
}
