// VolumeConverter: turns decoded frames into dense numeric arrays, with an
// optional reduction to the top 2D plane of a volume-of-interest window.

package vti

import "fmt"

// Grid is a dense numeric array produced from a Frame. Data is row-major
// with the last axis of Dims varying fastest; a full volume has
// Dims=[nz,ny,nx] (matching the (frames, z, y, x) layout of the training
// datasets), a top slice has Dims=[ny,nx].
type Grid struct {
	Dims []int
	Data []float64
}

// NumElements returns the product of Dims.
func (g *Grid) NumElements() int {
	n := 1
	for _, d := range g.Dims {
		n *= d
	}
	return n
}

// VOIPolicy pins down the volume-of-interest rule used for slicing.
// The default (Axis 2, FromTop) reproduces the upstream extraction: the
// topmost Z plane with full X/Y extent. It is deliberately explicit so the
// training-data shape never depends on an implicit convention.
type VOIPolicy struct {
	Axis    int  // slicing axis: 0=X, 1=Y, 2=Z
	FromTop bool // true selects the highest index, false the lowest
}

// DefaultVOI is the policy used by the dataset pipeline unless overridden.
var DefaultVOI = VOIPolicy{Axis: 2, FromTop: true}

// ToArray converts the named scalar field of frame to a dense array.
// With slicing=false the full volume is preserved, values untouched.
// With slicing=true the single plane selected by voi is extracted first
// and the singleton axis dropped.
func ToArray(frame *Frame, scalar string, slicing bool, voi VOIPolicy) (*Grid, error) {
	arr, cell, err := frame.ActiveArray(scalar)
	if err != nil {
		return nil, err
	}
	dims := frame.DataDims(cell)
	want := dims[0] * dims[1] * dims[2]
	if len(arr.Values) != want {
		return nil, fmt.Errorf("array %q has %d values, grid %dx%dx%d wants %d",
			arr.Name, len(arr.Values), dims[0], dims[1], dims[2], want)
	}

	if !slicing {
		data := make([]float64, len(arr.Values))
		copy(data, arr.Values)
		// Dims reversed so row-major indexing matches the X-fastest layout.
		return &Grid{Dims: []int{dims[2], dims[1], dims[0]}, Data: data}, nil
	}

	plane, planeDims, err := extractPlane(arr.Values, dims, voi)
	if err != nil {
		return nil, err
	}
	return &Grid{Dims: planeDims, Data: plane}, nil
}

// extractPlane pulls one axis-aligned plane out of an X-fastest volume.
// Returned dims are row-major for the two remaining axes (slowest first).
func extractPlane(values []float64, dims [3]int, voi VOIPolicy) ([]float64, []int, error) {
	if voi.Axis < 0 || voi.Axis > 2 {
		return nil, nil, fmt.Errorf("invalid VOI axis %d", voi.Axis)
	}
	idx := 0
	if voi.FromTop {
		idx = dims[voi.Axis] - 1
	}

	nx, ny, nz := dims[0], dims[1], dims[2]
	at := func(x, y, z int) float64 {
		return values[(z*ny+y)*nx+x]
	}

	switch voi.Axis {
	case 2: // keep (y, x)
		plane := make([]float64, nx*ny)
		for y := 0; y < ny; y++ {
			for x := 0; x < nx; x++ {
				plane[y*nx+x] = at(x, y, idx)
			}
		}
		return plane, []int{ny, nx}, nil
	case 1: // keep (z, x)
		plane := make([]float64, nx*nz)
		for z := 0; z < nz; z++ {
			for x := 0; x < nx; x++ {
				plane[z*nx+x] = at(x, idx, z)
			}
		}
		return plane, []int{nz, nx}, nil
	default: // axis 0, keep (z, y)
		plane := make([]float64, ny*nz)
		for z := 0; z < nz; z++ {
			for y := 0; y < ny; y++ {
				plane[z*ny+y] = at(idx, y, z)
			}
		}
		return plane, []int{nz, ny}, nil
	}
}
