package launch

import "github.com/notargets/stencilbench/stencil"

// DataSize is the theoretical bytes moved by one stencil sweep, the
// numerator of the effective-bandwidth metric:
//
//	fetch = (total voxels - boundary correction) * elemSize
//	write = interior voxels * elemSize
//
// The boundary correction 8 + 4*(nx-2) + 4*(ny-2) + 4*(nz-2) subtracts the
// corner and edge voxels the 7-point kernel never touches. The term is
// carried over verbatim from the model this harness reproduces; changing it
// changes every reported bandwidth, so it is a fixed convention here, not a
// derived quantity. Both backends use this identical formula.
func DataSize(g stencil.Grid, p stencil.Precision) int64 {
	es := p.ElemSize()
	total := int64(g.NumVoxels())
	boundary := int64(8 + 4*(g.Nx-2) + 4*(g.Ny-2) + 4*(g.Nz-2))
	fetch := (total - boundary) * es
	write := int64(g.InteriorVoxels()) * es
	return fetch + write
}
