package sim

import "time"

// frameTime is the simulator timebase: wall-clock deltas sampled once per
// Step, stable for the rest of the frame.
type frameTime struct {
	start time.Time
	last  time.Time
	dt    float64
	total float64
}

func (t *frameTime) step() {
	now := time.Now()
	if t.start.IsZero() {
		t.start = now
		t.last = now
		return
	}
	t.dt = now.Sub(t.last).Seconds()
	t.total = now.Sub(t.start).Seconds()
	t.last = now
}

func (t *frameTime) StepUnscaled() float64 { return t.dt }

func (t *frameTime) TotalUnscaled() float64 { return t.total }
