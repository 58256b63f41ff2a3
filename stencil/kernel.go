package stencil

// Coeffs carries the four stencil coefficients at the field's precision.
// They are derived once per grid from uniform spacing h = 1/(dim-1) per
// axis and are invariant for the duration of a run. The kernel receives
// them explicitly rather than capturing them, so the same coefficients
// drive both the host sweep and the generated device kernel.
type Coeffs[T Float] struct {
	InvHX2   T // 1/hx^2
	InvHY2   T // 1/hy^2
	InvHZ2   T // 1/hz^2
	InvHXYZ2 T // -2*(InvHX2 + InvHY2 + InvHZ2)
}

// CoeffsFor derives the coefficients for a grid.
func CoeffsFor[T Float](g Grid) Coeffs[T] {
	hx := 1.0 / float64(g.Nx-1)
	hy := 1.0 / float64(g.Ny-1)
	hz := 1.0 / float64(g.Nz-1)
	invhx2 := 1.0 / (hx * hx)
	invhy2 := 1.0 / (hy * hy)
	invhz2 := 1.0 / (hz * hz)
	return Coeffs[T]{
		InvHX2:   T(invhx2),
		InvHY2:   T(invhy2),
		InvHZ2:   T(invhz2),
		InvHXYZ2: T(-2.0 * (invhx2 + invhy2 + invhz2)),
	}
}

// Point computes the 7-point Laplacian at interior voxel (i,j,k). Pure
// function of (u, coefficients, indices); no allocation, no logging, so it
// is safe inside timed paths. Callers must pass interior indices.
func Point[T Float](u []T, c Coeffs[T], g Grid, i, j, k int) T {
	n := g.Idx(i, j, k)
	return u[n]*c.InvHXYZ2 +
		(u[n-1]+u[n+1])*c.InvHX2 +
		(u[n-g.Nx]+u[n+g.Nx])*c.InvHY2 +
		(u[n-g.Nx*g.Ny]+u[n+g.Nx*g.Ny])*c.InvHZ2
}

// Sweep applies Point over every interior voxel of u, writing f. Boundary
// entries of f are never touched. This is the reference-backend sweep and
// the semantic definition the device kernel is generated from.
func Sweep[T Float](u, f []T, c Coeffs[T], g Grid) {
	for k := 1; k < g.Nz-1; k++ {
		for j := 1; j < g.Ny-1; j++ {
			for i := 1; i < g.Nx-1; i++ {
				f[g.Idx(i, j, k)] = Point(u, c, g, i, j, k)
			}
		}
	}
}
