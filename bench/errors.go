package bench

import "fmt"

// TimingInconsistencyError reports a zero or negative measured duration.
// Letting one through would produce an infinite or negative bandwidth, so
// the run aborts instead.
type TimingInconsistencyError struct {
	Iteration int
	ElapsedNS int64
}

func (e *TimingInconsistencyError) Error() string {
	return fmt.Sprintf("iteration %d: clock anomaly, measured %d ns", e.Iteration, e.ElapsedNS)
}
