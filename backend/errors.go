package backend

import (
	"fmt"

	"github.com/notargets/stencilbench/launch"
	"github.com/notargets/stencilbench/stencil"
)

// AllocationError reports a buffer request that exceeds available host or
// device memory. Fatal for the configuration that requested it; a batch
// sweep moves on to the next configuration.
type AllocationError struct {
	Backend string // "cpu" or "gpu"
	Bytes   int64  // requested size
	Err     error
}

func (e *AllocationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s backend: allocation of %d bytes failed: %v", e.Backend, e.Bytes, e.Err)
	}
	return fmt.Sprintf("%s backend: allocation of %d bytes failed", e.Backend, e.Bytes)
}

func (e *AllocationError) Unwrap() error { return e.Err }

// BackendUnavailableError reports that no usable accelerator device could
// be created. The caller decides whether to fall back to the reference
// backend; nothing falls back silently.
type BackendUnavailableError struct {
	Modes []string // device property sets that were probed
	Err   error    // last probe failure
}

func (e *BackendUnavailableError) Error() string {
	return fmt.Sprintf("no usable device after probing %d mode(s): %v", len(e.Modes), e.Err)
}

func (e *BackendUnavailableError) Unwrap() error { return e.Err }

// KernelCompilationError reports that the device toolchain rejected the
// generated kernel, typically for one precision only (observed: float64
// kernels failing where float32 builds). Fatal for that (backend, precision)
// pair; other pairs in a batch still run.
type KernelCompilationError struct {
	Precision stencil.Precision
	Mode      string // OCCA mode the build ran under
	Err       error
}

func (e *KernelCompilationError) Error() string {
	return fmt.Sprintf("%s kernel build failed for %s: %v", e.Mode, e.Precision, e.Err)
}

func (e *KernelCompilationError) Unwrap() error { return e.Err }

// LaunchError reports an invalid or unsupported launch configuration, such
// as a block shape exceeding the device's thread limit.
type LaunchError struct {
	Config launch.Config
	Mode   string
	Reason string
	Err    error
}

func (e *LaunchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("launch %s on %s failed: %s: %v", e.Config, e.Mode, e.Reason, e.Err)
	}
	return fmt.Sprintf("launch %s on %s failed: %s", e.Config, e.Mode, e.Reason)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// OutOfMemoryError reports a device-side out-of-memory condition raised at
// run time rather than at buffer allocation.
type OutOfMemoryError struct {
	Mode string
	Err  error
}

func (e *OutOfMemoryError) Error() string {
	return fmt.Sprintf("%s device out of memory: %v", e.Mode, e.Err)
}

func (e *OutOfMemoryError) Unwrap() error { return e.Err }
