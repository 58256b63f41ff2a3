package stencil

// Float constrains the element types a field buffer may hold.
type Float interface {
	~float32 | ~float64
}

// NewSeededField allocates the input field u with the deterministic seed
// pattern u[idx] = T(idx). Both backends start from this exact pattern so
// their outputs can be compared element by element.
func NewSeededField[T Float](g Grid) []T {
	u := make([]T, g.NumVoxels())
	for i := range u {
		u[i] = T(i)
	}
	return u
}

// NewZeroField allocates the output field f. A sweep never writes boundary
// voxels, so whatever this leaves there (zero) persists for the life of the
// run.
func NewZeroField[T Float](g Grid) []T {
	return make([]T, g.NumVoxels())
}
