package backend

import (
	"fmt"

	"github.com/notargets/stencilbench/launch"
	"github.com/notargets/stencilbench/stencil"
)

// Reference is the sequential host backend: a triple nested loop over
// interior voxels calling the same point function the device kernel is
// generated from.
type Reference struct{}

func NewReference() *Reference { return &Reference{} }

func (r *Reference) Name() string       { return "cpu" }
func (r *Reference) DeviceName() string { return "CPU" }

func (r *Reference) Prepare(g stencil.Grid, p stencil.Precision) (Session, error) {
	if err := checkHostAlloc(g, p); err != nil {
		return nil, err
	}
	switch p {
	case stencil.Float32:
		return newHostSession[float32](g), nil
	case stencil.Float64:
		return newHostSession[float64](g), nil
	default:
		return nil, fmt.Errorf("unknown precision %v", p)
	}
}

// checkHostAlloc rejects sizes whose byte count overflows before make()
// would fail less gracefully.
func checkHostAlloc(g stencil.Grid, p stencil.Precision) error {
	n := int64(g.Nx) * int64(g.Ny) * int64(g.Nz)
	bytes := n * p.ElemSize()
	if n <= 0 || bytes <= 0 || bytes/p.ElemSize() != n {
		return &AllocationError{Backend: "cpu", Bytes: bytes,
			Err: fmt.Errorf("grid %s overflows addressable size", g)}
	}
	return nil
}

type hostSession[T stencil.Float] struct {
	grid   stencil.Grid
	coeffs stencil.Coeffs[T]
	u, f   []T
}

func newHostSession[T stencil.Float](g stencil.Grid) *hostSession[T] {
	return &hostSession[T]{
		grid:   g,
		coeffs: stencil.CoeffsFor[T](g),
		u:      stencil.NewSeededField[T](g),
		f:      stencil.NewZeroField[T](g),
	}
}

// RunOnce performs one full sweep. The launch configuration does not tile
// the host loop; it is validated so an invalid shape fails identically on
// both backends.
func (s *hostSession[T]) RunOnce(cfg launch.Config) error {
	if err := cfg.Validate(); err != nil {
		return &LaunchError{Config: cfg, Mode: "CPU", Reason: "invalid block shape", Err: err}
	}
	stencil.Sweep(s.u, s.f, s.coeffs, s.grid)
	return nil
}

func (s *hostSession[T]) CopyOutput(dst interface{}) error {
	d, ok := dst.([]T)
	if !ok {
		return fmt.Errorf("output copy: destination %T does not match session precision", dst)
	}
	if len(d) != len(s.f) {
		return fmt.Errorf("output copy: destination holds %d elements, field has %d", len(d), len(s.f))
	}
	copy(d, s.f)
	return nil
}

func (s *hostSession[T]) Teardown() {
	s.u, s.f = nil, nil
}
