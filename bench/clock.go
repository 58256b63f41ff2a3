package bench

import "time"

// Clock yields monotonic nanosecond ticks. The harness only ever subtracts
// two readings, so the epoch is arbitrary. Tests inject synthetic clocks to
// pin down unit-conversion behavior.
type Clock interface {
	Ticks() int64
}

// SystemClock reads the runtime's monotonic clock.
type SystemClock struct {
	start time.Time
}

func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (c *SystemClock) Ticks() int64 {
	return time.Since(c.start).Nanoseconds()
}
