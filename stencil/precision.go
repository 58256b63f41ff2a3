package stencil

import "fmt"

// Precision selects the numeric element type of the field buffers.
type Precision int

const (
	Float32 Precision = iota + 1
	Float64
)

// ElemSize returns the element size in bytes.
func (p Precision) ElemSize() int64 {
	switch p {
	case Float32:
		return 4
	case Float64:
		return 8
	default:
		panic(fmt.Sprintf("unknown precision %d", int(p)))
	}
}

func (p Precision) String() string {
	switch p {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return fmt.Sprintf("Precision(%d)", int(p))
	}
}

// CType returns the OKL/C type name used when generating kernel source.
func (p Precision) CType() string {
	switch p {
	case Float32:
		return "float"
	case Float64:
		return "double"
	default:
		panic(fmt.Sprintf("unknown precision %d", int(p)))
	}
}

// ParsePrecision accepts the names used on the command line and in
// structured output.
func ParsePrecision(s string) (Precision, error) {
	switch s {
	case "float32":
		return Float32, nil
	case "float64":
		return Float64, nil
	default:
		return 0, fmt.Errorf("unknown precision %q (want float32 or float64)", s)
	}
}
