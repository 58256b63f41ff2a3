// Package bench drives timed sweeps through a backend session and reduces
// the wall-clock deltas into effective-bandwidth figures.
package bench

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/notargets/stencilbench/launch"
)

// DefaultIterations is the timed iteration count when Options leaves it
// unset.
const DefaultIterations = 1000

// Sweeper is the slice of the backend session the harness drives. One call
// is one fully synchronous sweep.
type Sweeper interface {
	RunOnce(cfg launch.Config) error
}

// Options configures one benchmark invocation.
type Options struct {
	// Iterations is the number of timed sweeps (after the one discarded
	// warmup). Defaults to DefaultIterations.
	Iterations int

	// Clock supplies monotonic ticks; defaults to the system clock.
	Clock Clock
}

// Result holds the measurements of one completed invocation. Records are
// immutable once returned; summary figures are reduced from the same
// per-iteration samples the streaming mode reports, never from a separate
// run.
type Result struct {
	Config   launch.Config
	DataSize int64 // theoretical bytes per sweep

	ElapsedNS  []int64   // per timed iteration, warmup excluded
	Bandwidths []float64 // bytes/second per iteration

	MeanSeconds   float64
	MeanBandwidth float64 // bytes/second, DataSize / MeanSeconds
}

// Iterations is the number of timed sweeps that contributed.
func (r Result) Iterations() int { return len(r.ElapsedNS) }

// GBs returns iteration i's bandwidth in GB/s (GB = 1e9 bytes).
func (r Result) GBs(i int) float64 { return r.Bandwidths[i] / 1e9 }

// MeanGBs returns the aggregated bandwidth in GB/s.
func (r Result) MeanGBs() float64 { return r.MeanBandwidth / 1e9 }

// Run executes the measurement protocol against one session: one discarded
// warmup sweep to absorb one-time costs (context init, first-touch faults,
// kernel compilation), then Iterations timed sweeps, each bracketed by
// clock reads. Any sweep failure aborts the whole invocation; partial
// iteration counts are never folded into an average. There are no retries.
func Run(s Sweeper, cfg launch.Config, datasize int64, opts Options) (Result, error) {
	if datasize <= 0 {
		return Result{}, fmt.Errorf("datasize %d invalid: must be positive", datasize)
	}
	iterations := opts.Iterations
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	clock := opts.Clock
	if clock == nil {
		clock = NewSystemClock()
	}

	if err := s.RunOnce(cfg); err != nil {
		return Result{}, fmt.Errorf("warmup sweep: %w", err)
	}

	elapsed := make([]int64, 0, iterations)
	for it := 0; it < iterations; it++ {
		t0 := clock.Ticks()
		if err := s.RunOnce(cfg); err != nil {
			return Result{}, fmt.Errorf("iteration %d: %w", it, err)
		}
		t1 := clock.Ticks()
		d := t1 - t0
		if d <= 0 {
			return Result{}, &TimingInconsistencyError{Iteration: it, ElapsedNS: d}
		}
		elapsed = append(elapsed, d)
	}

	// Integer tick deltas are converted to float64 seconds here, at one
	// explicit point, before any floating-point arithmetic touches them.
	size := float64(datasize)
	seconds := make([]float64, len(elapsed))
	bandwidths := make([]float64, len(elapsed))
	for i, ns := range elapsed {
		seconds[i] = float64(ns) / 1e9
		bandwidths[i] = size / seconds[i]
	}
	meanSeconds := stat.Mean(seconds, nil)

	return Result{
		Config:        cfg,
		DataSize:      datasize,
		ElapsedNS:     elapsed,
		Bandwidths:    bandwidths,
		MeanSeconds:   meanSeconds,
		MeanBandwidth: size / meanSeconds,
	}, nil
}
