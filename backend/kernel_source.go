package backend

import (
	"fmt"

	"github.com/notargets/stencilbench/launch"
	"github.com/notargets/stencilbench/stencil"
)

const kernelName = "stencil7"

// kernelSource generates the OKL source for one (grid, precision, launch
// config) combination. Grid and block shapes are compile-time constants;
// the @outer loops walk the covering grid of blocks and the @inner loops
// the threads of one block, one logical thread per voxel. Threads mapped
// past the interior are masked out, which is what keeps boundary voxels of
// f untouched on the device exactly as the host sweep leaves them.
//
// The update expression is the device rendering of stencil.Point; the two
// must stay in lockstep.
func kernelSource(g stencil.Grid, p stencil.Precision, cfg launch.Config) string {
	gx, gy, gz := cfg.GridDims(g)
	return fmt.Sprintf(`
typedef %s real_t;

#define NX %d
#define NY %d
#define NZ %d

#define BLK_X %d
#define BLK_Y %d
#define BLK_Z %d

#define GRID_X %d
#define GRID_Y %d
#define GRID_Z %d

@kernel void %s(const real_t invhx2,
                const real_t invhy2,
                const real_t invhz2,
                const real_t invhxyz2,
                const real_t *u,
                real_t *f) {
	for (int bz = 0; bz < GRID_Z; ++bz; @outer(2)) {
		for (int by = 0; by < GRID_Y; ++by; @outer(1)) {
			for (int bx = 0; bx < GRID_X; ++bx; @outer(0)) {
				for (int tz = 0; tz < BLK_Z; ++tz; @inner(2)) {
					for (int ty = 0; ty < BLK_Y; ++ty; @inner(1)) {
						for (int tx = 0; tx < BLK_X; ++tx; @inner(0)) {
							const int i = bx * BLK_X + tx;
							const int j = by * BLK_Y + ty;
							const int k = bz * BLK_Z + tz;
							if (i >= 1 && i < NX - 1 &&
							    j >= 1 && j < NY - 1 &&
							    k >= 1 && k < NZ - 1) {
								const int n = (k * NY + j) * NX + i;
								f[n] = u[n] * invhxyz2
								     + (u[n - 1]       + u[n + 1])       * invhx2
								     + (u[n - NX]      + u[n + NX])      * invhy2
								     + (u[n - NX * NY] + u[n + NX * NY]) * invhz2;
							}
						}
					}
				}
			}
		}
	}
}
`, p.CType(),
		g.Nx, g.Ny, g.Nz,
		cfg.BlockX, cfg.BlockY, cfg.BlockZ,
		gx, gy, gz,
		kernelName)
}
