// Package backend executes stencil sweeps on one of exactly two targets: an
// OCCA-accelerated device or a sequential host reference. Both sit behind
// one contract so the timing engine and the reporter cannot tell them
// apart, which is what makes their bandwidth numbers comparable.
package backend

import (
	"github.com/notargets/stencilbench/launch"
	"github.com/notargets/stencilbench/stencil"
)

// Backend is the execution target. The two implementations (Device,
// Reference) are exhaustive; there is no plugin registry.
type Backend interface {
	// Name is the stable backend tag used in structured output:
	// "cpu" or "gpu".
	Name() string

	// DeviceName identifies the concrete execution device: the OCCA mode
	// string for the accelerated backend, the literal "CPU" for the
	// reference backend.
	DeviceName() string

	// Prepare allocates and seeds the buffer pair for one benchmark run.
	// The input field u gets the deterministic index pattern, the output
	// field f is zeroed. Returns AllocationError if the buffers do not fit.
	Prepare(g stencil.Grid, p stencil.Precision) (Session, error)
}

// Session owns the buffer pair for the duration of one benchmark run. It is
// driven by a single controlling goroutine; parallelism exists only inside
// RunOnce on the accelerated backend.
type Session interface {
	// RunOnce executes exactly one sweep, writing into f. It blocks until
	// the sweep's effects are fully visible (device synchronization
	// included), so successive calls never overlap and wall-clock brackets
	// around it measure one true sweep.
	RunOnce(cfg launch.Config) error

	// CopyOutput copies the current output field into dst, which must be a
	// []float32 or []float64 matching the session's precision and size.
	// Verification only; never called inside a timed path.
	CopyOutput(dst interface{}) error

	// Teardown releases the buffers (and, on the device, compiled kernels).
	// The session is unusable afterwards.
	Teardown()
}
