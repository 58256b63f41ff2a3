package backend

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/notargets/gocca"

	"github.com/notargets/stencilbench/launch"
	"github.com/notargets/stencilbench/stencil"
)

// Thread-per-block limits for the modes that have one. OCCA maps the
// @inner loops onto device threads, so the block volume may not exceed
// these.
const (
	maxCUDAThreads   = 1024
	maxOpenCLThreads = 1024
)

// Device is the accelerated backend. It owns one OCCA device and hands out
// sessions that hold the buffer pair and the compiled kernels for one run.
type Device struct {
	device *gocca.OCCADevice
}

// NewDevice opens an OCCA device, probing modes in order (DefaultModes when
// none are given). Returns BackendUnavailableError when nothing opens.
func NewDevice(modes ...string) (*Device, error) {
	device, err := Probe(modes...)
	if err != nil {
		return nil, err
	}
	return &Device{device: device}, nil
}

func (d *Device) Name() string       { return "gpu" }
func (d *Device) DeviceName() string { return d.device.Mode() }

// Free releases the underlying OCCA device. Sessions must be torn down
// first.
func (d *Device) Free() { d.device.Free() }

// maxThreads is the per-block thread limit of the current mode, 0 when the
// mode has none.
func (d *Device) maxThreads() int {
	switch d.device.Mode() {
	case "CUDA":
		return maxCUDAThreads
	case "OpenCL":
		return maxOpenCLThreads
	}
	return 0
}

func (d *Device) Prepare(g stencil.Grid, p stencil.Precision) (Session, error) {
	bytes := int64(g.NumVoxels()) * p.ElemSize()

	// Seed on the host, then hand the initial contents to Malloc the way
	// the device API expects.
	var uPtr, fPtr unsafe.Pointer
	var coeffArgs []interface{}
	switch p {
	case stencil.Float32:
		u := stencil.NewSeededField[float32](g)
		f := stencil.NewZeroField[float32](g)
		uPtr, fPtr = unsafe.Pointer(&u[0]), unsafe.Pointer(&f[0])
		c := stencil.CoeffsFor[float32](g)
		coeffArgs = []interface{}{c.InvHX2, c.InvHY2, c.InvHZ2, c.InvHXYZ2}
	case stencil.Float64:
		u := stencil.NewSeededField[float64](g)
		f := stencil.NewZeroField[float64](g)
		uPtr, fPtr = unsafe.Pointer(&u[0]), unsafe.Pointer(&f[0])
		c := stencil.CoeffsFor[float64](g)
		coeffArgs = []interface{}{c.InvHX2, c.InvHY2, c.InvHZ2, c.InvHXYZ2}
	default:
		return nil, fmt.Errorf("unknown precision %v", p)
	}

	uMem, err := d.malloc(bytes, uPtr)
	if err != nil {
		return nil, err
	}
	fMem, err := d.malloc(bytes, fPtr)
	if err != nil {
		uMem.Free()
		return nil, err
	}

	return &deviceSession{
		backend:   d,
		grid:      g,
		precision: p,
		bytes:     bytes,
		u:         uMem,
		f:         fMem,
		coeffArgs: coeffArgs,
		kernels:   make(map[launch.Config]*gocca.OCCAKernel),
	}, nil
}

// malloc converts the device allocator's failure modes (nil handle or
// panic) into AllocationError.
func (d *Device) malloc(bytes int64, src unsafe.Pointer) (mem *gocca.OCCAMemory, err error) {
	defer func() {
		if r := recover(); r != nil {
			mem = nil
			err = &AllocationError{Backend: "gpu", Bytes: bytes, Err: fmt.Errorf("%v", r)}
		}
	}()
	mem = d.device.Malloc(bytes, src, nil)
	if mem == nil {
		err = &AllocationError{Backend: "gpu", Bytes: bytes}
	}
	return mem, err
}

type deviceSession struct {
	backend   *Device
	grid      stencil.Grid
	precision stencil.Precision
	bytes     int64
	u, f      *gocca.OCCAMemory
	coeffArgs []interface{}

	// One compiled kernel per launch configuration; block and grid shapes
	// are baked into the source as compile-time constants.
	kernels map[launch.Config]*gocca.OCCAKernel
}

func (s *deviceSession) RunOnce(cfg launch.Config) error {
	kernel, err := s.kernelFor(cfg)
	if err != nil {
		return err
	}

	args := make([]interface{}, 0, len(s.coeffArgs)+2)
	args = append(args, s.coeffArgs...)
	args = append(args, s.u, s.f)
	if err := kernel.RunWithArgs(args...); err != nil {
		return s.classifyRunError(cfg, err)
	}

	// Force completion so the caller's clock brackets exactly one sweep;
	// without this, measured bandwidth would be a pipelining artifact.
	s.backend.device.Finish()
	return nil
}

// kernelFor returns the compiled kernel for cfg, building and caching it on
// first use. Build rejection surfaces as KernelCompilationError carrying
// the precision, distinct from run-time LaunchError.
func (s *deviceSession) kernelFor(cfg launch.Config) (*gocca.OCCAKernel, error) {
	if kernel, ok := s.kernels[cfg]; ok {
		return kernel, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, &LaunchError{Config: cfg, Mode: s.backend.DeviceName(),
			Reason: "invalid block shape", Err: err}
	}
	if limit := s.backend.maxThreads(); limit > 0 && cfg.Threads() > limit {
		return nil, &LaunchError{Config: cfg, Mode: s.backend.DeviceName(),
			Reason: fmt.Sprintf("block volume %d exceeds device limit %d", cfg.Threads(), limit)}
	}

	source := kernelSource(s.grid, s.precision, cfg)
	kernel, err := s.backend.device.BuildKernelFromString(source, kernelName, nil)
	if err != nil {
		return nil, &KernelCompilationError{Precision: s.precision,
			Mode: s.backend.DeviceName(), Err: err}
	}
	s.kernels[cfg] = kernel
	return kernel, nil
}

func (s *deviceSession) classifyRunError(cfg launch.Config, err error) error {
	if strings.Contains(strings.ToLower(err.Error()), "out of memory") {
		return &OutOfMemoryError{Mode: s.backend.DeviceName(), Err: err}
	}
	return &LaunchError{Config: cfg, Mode: s.backend.DeviceName(),
		Reason: "kernel launch failed", Err: err}
}

func (s *deviceSession) CopyOutput(dst interface{}) error {
	switch d := dst.(type) {
	case []float32:
		if s.precision != stencil.Float32 {
			return fmt.Errorf("output copy: []float32 destination for %s session", s.precision)
		}
		if int64(len(d))*4 != s.bytes {
			return fmt.Errorf("output copy: destination holds %d elements, field has %d",
				len(d), s.grid.NumVoxels())
		}
		s.f.CopyTo(unsafe.Pointer(&d[0]), s.bytes)
	case []float64:
		if s.precision != stencil.Float64 {
			return fmt.Errorf("output copy: []float64 destination for %s session", s.precision)
		}
		if int64(len(d))*8 != s.bytes {
			return fmt.Errorf("output copy: destination holds %d elements, field has %d",
				len(d), s.grid.NumVoxels())
		}
		s.f.CopyTo(unsafe.Pointer(&d[0]), s.bytes)
	default:
		return fmt.Errorf("output copy: unsupported destination %T", dst)
	}
	return nil
}

func (s *deviceSession) Teardown() {
	for _, kernel := range s.kernels {
		kernel.Free()
	}
	s.kernels = nil
	if s.u != nil {
		s.u.Free()
		s.u = nil
	}
	if s.f != nil {
		s.f.Free()
		s.f = nil
	}
}
