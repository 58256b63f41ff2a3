package report

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"

	"github.com/notargets/stencilbench/bench"
)

// Summary prints human-readable results.
type Summary struct {
	w io.Writer
}

func NewSummary(w io.Writer) *Summary {
	return &Summary{w: w}
}

// PrintHost emits one line describing the host, for context next to
// cpu-backend numbers.
func (s *Summary) PrintHost() {
	fmt.Fprintf(s.w, "host: %s/%s, %d logical cores, simd: %s\n",
		runtime.GOOS, runtime.GOARCH, runtime.NumCPU(), hostSIMD())
}

// Print emits one result line per configuration.
func (s *Summary) Print(rec Record, res bench.Result) {
	fmt.Fprintf(s.w, "%s (%s) %s L=%d block=%s: %d iterations, avg %.3f ms, %.2f GB/s\n",
		rec.Backend, rec.Device, rec.Precision, rec.L, rec.Config,
		res.Iterations(), res.MeanSeconds*1e3, res.MeanGBs())
}

// PrintError attributes a failed configuration. Nothing is swallowed: every
// error that aborts a configuration lands here with its full context.
func (s *Summary) PrintError(rec Record, err error) {
	fmt.Fprintf(s.w, "%s (%s) %s L=%d block=%s: FAILED: %v\n",
		rec.Backend, rec.Device, rec.Precision, rec.L, rec.Config, err)
}

func hostSIMD() string {
	var feats []string
	if cpu.X86.HasAVX512F {
		feats = append(feats, "avx512f")
	}
	if cpu.X86.HasAVX2 {
		feats = append(feats, "avx2")
	}
	if cpu.X86.HasSSE42 {
		feats = append(feats, "sse4.2")
	}
	if cpu.ARM64.HasASIMD {
		feats = append(feats, "asimd")
	}
	if cpu.ARM64.HasSVE {
		feats = append(feats, "sve")
	}
	if len(feats) == 0 {
		return "none detected"
	}
	return strings.Join(feats, ",")
}
