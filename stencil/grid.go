package stencil

import "fmt"

// Grid describes a structured 3D scalar field domain. Storage is row-major
// with x fastest-varying, so linear index (k*Ny + j)*Nx + i. Both execution
// backends address buffers through Idx so their results are directly
// comparable element by element.
type Grid struct {
	Nx, Ny, Nz int
}

// NewGrid validates the domain dimensions. A 7-point stencil needs at least
// one interior point per axis beyond the 1-voxel boundary shell, so every
// axis must be >= 3.
func NewGrid(nx, ny, nz int) (Grid, error) {
	if nx < 3 || ny < 3 || nz < 3 {
		return Grid{}, fmt.Errorf("grid dimensions (%d,%d,%d) invalid: every axis must be >= 3", nx, ny, nz)
	}
	return Grid{Nx: nx, Ny: ny, Nz: nz}, nil
}

// Idx maps voxel coordinates to the linear buffer offset.
func (g Grid) Idx(i, j, k int) int {
	return (k*g.Ny+j)*g.Nx + i
}

// NumVoxels is the total element count of one field buffer.
func (g Grid) NumVoxels() int {
	return g.Nx * g.Ny * g.Nz
}

// InteriorVoxels counts the voxels a sweep writes: everything except the
// 1-voxel boundary shell.
func (g Grid) InteriorVoxels() int {
	return (g.Nx - 2) * (g.Ny - 2) * (g.Nz - 2)
}

// Interior reports whether (i,j,k) is written by a sweep.
func (g Grid) Interior(i, j, k int) bool {
	return i >= 1 && i < g.Nx-1 &&
		j >= 1 && j < g.Ny-1 &&
		k >= 1 && k < g.Nz-1
}

func (g Grid) String() string {
	return fmt.Sprintf("%dx%dx%d", g.Nx, g.Ny, g.Nz)
}
