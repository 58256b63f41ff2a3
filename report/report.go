// Package report emits benchmark results, either as stable CSV rows or as a
// human-readable summary. The two modes are never mixed within one
// invocation.
package report

import (
	"github.com/notargets/stencilbench/launch"
	"github.com/notargets/stencilbench/stencil"
)

// Record identifies the configuration a measurement (or failure) belongs
// to. Every emitted row and every reported error carries one, so failures
// are always attributable.
type Record struct {
	Backend   string // "cpu" or "gpu"
	Device    string // OCCA mode string, or the literal "CPU"
	Precision stencil.Precision
	L         int // cubic edge length
	Config    launch.Config
}
