// Package launch maps a problem size onto a thread/block decomposition and
// computes the theoretical data-movement model used as the bandwidth
// numerator.
package launch

import (
	"fmt"

	"github.com/notargets/stencilbench/stencil"
)

// Config is the requested block (thread/tile) shape. The covering
// grid-of-blocks is derived per grid via GridDims.
type Config struct {
	BlockX, BlockY, BlockZ int
}

// Validate rejects non-positive block dimensions. Device-specific limits
// (e.g. total threads per block) are checked by the backend that knows them.
func (c Config) Validate() error {
	if c.BlockX < 1 || c.BlockY < 1 || c.BlockZ < 1 {
		return fmt.Errorf("block dimensions (%d,%d,%d) invalid: every dimension must be >= 1",
			c.BlockX, c.BlockY, c.BlockZ)
	}
	return nil
}

// Threads is the number of threads per block.
func (c Config) Threads() int {
	return c.BlockX * c.BlockY * c.BlockZ
}

// GridDims computes the covering grid-of-blocks by ceiling division per
// axis, so gridDim*blockDim >= axisDim always holds. Threads landing past
// the domain edge idle.
func (c Config) GridDims(g stencil.Grid) (gx, gy, gz int) {
	return ceilDiv(g.Nx, c.BlockX), ceilDiv(g.Ny, c.BlockY), ceilDiv(g.Nz, c.BlockZ)
}

func (c Config) String() string {
	return fmt.Sprintf("%dx%dx%d", c.BlockX, c.BlockY, c.BlockZ)
}

func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}

// ParseConfig reads a "x,y,z" block triple as given on the command line.
func ParseConfig(s string) (Config, error) {
	var c Config
	n, err := fmt.Sscanf(s, "%d,%d,%d", &c.BlockX, &c.BlockY, &c.BlockZ)
	if err != nil || n != 3 {
		return Config{}, fmt.Errorf("block shape %q invalid: want \"x,y,z\"", s)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
