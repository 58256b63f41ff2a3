package bench

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/stencilbench/launch"
)

// fakeSweeper counts calls and can fail at a chosen call index (warmup is
// call 0).
type fakeSweeper struct {
	calls  int
	failAt int // -1: never fail
}

func (f *fakeSweeper) RunOnce(launch.Config) error {
	call := f.calls
	f.calls++
	if f.failAt >= 0 && call == f.failAt {
		return errors.New("injected sweep failure")
	}
	return nil
}

// steppedClock advances by a fixed tick count on every read.
type steppedClock struct {
	now  int64
	step int64
}

func (c *steppedClock) Ticks() int64 {
	c.now += c.step
	return c.now
}

// scheduleClock replays a fixed sequence of deltas, one per read.
type scheduleClock struct {
	now    int64
	deltas []int64
	i      int
}

func (c *scheduleClock) Ticks() int64 {
	c.now += c.deltas[c.i%len(c.deltas)]
	c.i++
	return c.now
}

var cfg111 = launch.Config{BlockX: 1, BlockY: 1, BlockZ: 1}

// End-to-end unit conversion check: 1,000,000 ns per sweep and a datasize
// of 2,000,000,000 bytes must report exactly 2000.0 GB/s.
func TestRun_SyntheticClockBandwidth(t *testing.T) {
	clock := &steppedClock{step: 1_000_000}
	res, err := Run(&fakeSweeper{failAt: -1}, cfg111, 2_000_000_000,
		Options{Iterations: 5, Clock: clock})
	require.NoError(t, err)

	require.Equal(t, 5, res.Iterations())
	for i := 0; i < res.Iterations(); i++ {
		assert.Equal(t, int64(1_000_000), res.ElapsedNS[i])
		assert.Equal(t, 2000.0, res.GBs(i))
	}
	assert.Equal(t, 2000.0, res.MeanGBs())
}

func TestRun_WarmupDiscarded(t *testing.T) {
	sweeper := &fakeSweeper{failAt: -1}
	clock := &steppedClock{step: 500}
	res, err := Run(sweeper, cfg111, 1000, Options{Iterations: 10, Clock: clock})
	require.NoError(t, err)

	// 1 warmup + 10 timed sweeps, but only 10 samples and 20 clock reads
	assert.Equal(t, 11, sweeper.calls)
	assert.Equal(t, 10, res.Iterations())
	assert.Equal(t, int64(20*500), clock.now)
}

func TestRun_TimingInconsistencyDetected(t *testing.T) {
	// a clock that never advances would otherwise produce infinite bandwidth
	_, err := Run(&fakeSweeper{failAt: -1}, cfg111, 1000,
		Options{Iterations: 3, Clock: &steppedClock{step: 0}})

	var timingErr *TimingInconsistencyError
	require.ErrorAs(t, err, &timingErr)
	assert.Equal(t, 0, timingErr.Iteration)
	assert.Equal(t, int64(0), timingErr.ElapsedNS)
}

func TestRun_WarmupFailureAborts(t *testing.T) {
	sweeper := &fakeSweeper{failAt: 0}
	_, err := Run(sweeper, cfg111, 1000,
		Options{Iterations: 5, Clock: &steppedClock{step: 1}})
	require.Error(t, err)
	assert.Equal(t, 1, sweeper.calls)
}

func TestRun_IterationFailureAbortsWithoutPartialAverages(t *testing.T) {
	// failure on the third timed iteration: no result, no interpolation
	sweeper := &fakeSweeper{failAt: 3}
	res, err := Run(sweeper, cfg111, 1000,
		Options{Iterations: 5, Clock: &steppedClock{step: 1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "iteration 2")
	assert.Zero(t, res)
	assert.Equal(t, 4, sweeper.calls, "no retries after the failing sweep")
}

func TestRun_SummaryConsistentWithPerIterationSamples(t *testing.T) {
	// uneven sweep times: the aggregate must be datasize over the mean of
	// the same per-iteration seconds the streaming rows report
	deltas := []int64{1, 1_000_000, 1, 2_000_000}
	clock := &scheduleClock{deltas: deltas}
	const datasize = 1_000_000_000

	res, err := Run(&fakeSweeper{failAt: -1}, cfg111, datasize,
		Options{Iterations: 2, Clock: clock})
	require.NoError(t, err)

	// reads pair up as (t0,t1): elapsed = deltas[1], deltas[3]
	require.Equal(t, []int64{1_000_000, 2_000_000}, res.ElapsedNS)

	sum := 0.0
	for i := range res.ElapsedNS {
		sum += float64(res.ElapsedNS[i]) / 1e9
	}
	mean := sum / float64(len(res.ElapsedNS))
	assert.InEpsilon(t, float64(datasize)/mean, res.MeanBandwidth, 1e-12)
}

func TestRun_RejectsNonPositiveDataSize(t *testing.T) {
	_, err := Run(&fakeSweeper{failAt: -1}, cfg111, 0, Options{Iterations: 1})
	assert.Error(t, err)
	_, err = Run(&fakeSweeper{failAt: -1}, cfg111, -5, Options{Iterations: 1})
	assert.Error(t, err)
}

func TestRun_DefaultIterations(t *testing.T) {
	sweeper := &fakeSweeper{failAt: -1}
	res, err := Run(sweeper, cfg111, 1000, Options{Clock: &steppedClock{step: 10}})
	require.NoError(t, err)
	assert.Equal(t, DefaultIterations, res.Iterations())
	assert.Equal(t, DefaultIterations+1, sweeper.calls)
}
