package stencil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid_Validation(t *testing.T) {
	cases := []struct {
		name       string
		nx, ny, nz int
		ok         bool
	}{
		{"MinimumCube", 3, 3, 3, true},
		{"Typical", 512, 512, 512, true},
		{"Anisotropic", 3, 64, 128, true},
		{"ThinX", 2, 3, 3, false},
		{"ThinY", 3, 2, 3, false},
		{"ThinZ", 3, 3, 2, false},
		{"Zero", 0, 0, 0, false},
		{"Negative", -3, 3, 3, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := NewGrid(tc.nx, tc.ny, tc.nz)
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, tc.nx*tc.ny*tc.nz, g.NumVoxels())
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestGrid_IdxRowMajor(t *testing.T) {
	g, err := NewGrid(4, 5, 6)
	require.NoError(t, err)

	// x is fastest-varying
	assert.Equal(t, 0, g.Idx(0, 0, 0))
	assert.Equal(t, 1, g.Idx(1, 0, 0))
	assert.Equal(t, g.Nx, g.Idx(0, 1, 0))
	assert.Equal(t, g.Nx*g.Ny, g.Idx(0, 0, 1))
	assert.Equal(t, g.NumVoxels()-1, g.Idx(g.Nx-1, g.Ny-1, g.Nz-1))

	// every voxel maps to a distinct linear offset
	seen := make(map[int]bool, g.NumVoxels())
	for k := 0; k < g.Nz; k++ {
		for j := 0; j < g.Ny; j++ {
			for i := 0; i < g.Nx; i++ {
				n := g.Idx(i, j, k)
				if seen[n] {
					t.Fatalf("Idx(%d,%d,%d)=%d already used", i, j, k, n)
				}
				seen[n] = true
			}
		}
	}
}

func TestGrid_InteriorCounts(t *testing.T) {
	g, err := NewGrid(5, 6, 7)
	require.NoError(t, err)
	assert.Equal(t, 3*4*5, g.InteriorVoxels())

	interior := 0
	for k := 0; k < g.Nz; k++ {
		for j := 0; j < g.Ny; j++ {
			for i := 0; i < g.Nx; i++ {
				if g.Interior(i, j, k) {
					interior++
				}
			}
		}
	}
	assert.Equal(t, g.InteriorVoxels(), interior)
}
