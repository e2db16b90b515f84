package tetris

import "time"

// Timer is the gravity timer state. The engine never sleeps or spawns
// goroutines; hosts read the timer and schedule a Tick carrying the
// generation. Any restart bumps the generation, so callbacks scheduled for
// an earlier generation are ignored and at most one timer is live.
type Timer struct {
	Running    bool
	Interval   time.Duration
	Generation uint64
}

// Start cancels the current timer and arms a new one.
func (t *Timer) Start(interval time.Duration) {
	t.Stop()
	t.Running = true
	t.Interval = interval
}

// Stop cancels the current timer.
func (t *Timer) Stop() {
	t.Generation++
	t.Running = false
}

// Clock drives an engine from elapsed wall time, for hosts with a frame
// loop rather than a message scheduler.
type Clock struct {
	generation uint64
	elapsed    time.Duration
}

// Advance adds dt to the clock and delivers every gravity tick that became
// due. Time accumulated under a cancelled timer is discarded.
// It returns the number of ticks delivered.
func (c *Clock) Advance(e *Engine, dt time.Duration) int {
	fired := 0
	remaining := dt
	for {
		t := e.Timer()
		if t.Generation != c.generation {
			c.generation = t.Generation
			c.elapsed = 0
		}
		if !t.Running || t.Interval <= 0 {
			return fired
		}

		need := t.Interval - c.elapsed
		if remaining < need {
			c.elapsed += remaining
			return fired
		}
		remaining -= need
		c.elapsed = 0
		e.Tick(t.Generation)
		fired++
	}
}
