// Defines the in-memory representation of one VTK XML ImageData frame
// (a `.vti.N` snapshot written by SPPARKS at one time step).

package vti

import "fmt"

// DataArray holds one named scalar field decoded from a VTI file.
// Values are stored as float64 regardless of the on-disk type; SourceType
// keeps the original VTI type string (e.g. "Int32") for bookkeeping.
type DataArray struct {
	Name          string
	SourceType    string
	NumComponents int
	Values        []float64 // flat, X varies fastest, then Y, then Z
}

// Frame is a single volumetric snapshot: a regular grid with attached
// cell and/or point scalar arrays. Frames are immutable once decoded.
type Frame struct {
	// Extent is the point extent as stored in the file: x0 x1 y0 y1 z0 z1.
	Extent  [6]int
	Origin  [3]float64
	Spacing [3]float64

	CellArrays  []DataArray
	PointArrays []DataArray
}

// PointDims returns the number of grid points along X, Y, Z.
func (f *Frame) PointDims() [3]int {
	return [3]int{
		f.Extent[1] - f.Extent[0] + 1,
		f.Extent[3] - f.Extent[2] + 1,
		f.Extent[5] - f.Extent[4] + 1,
	}
}

// CellDims returns the number of cells along X, Y, Z. A grid with N points
// along an axis has N-1 cells; degenerate axes keep a single layer.
func (f *Frame) CellDims() [3]int {
	p := f.PointDims()
	var c [3]int
	for i, n := range p {
		if n > 1 {
			c[i] = n - 1
		} else {
			c[i] = 1
		}
	}
	return c
}

// ActiveArray resolves the scalar field to convert. Cell data wins over
// point data when both are present, matching the upstream SPPARKS layout
// where the Spin field lives on cells. An empty name selects the first
// array of the winning kind.
func (f *Frame) ActiveArray(name string) (*DataArray, bool, error) {
	pick := func(arrays []DataArray) *DataArray {
		if name == "" {
			if len(arrays) > 0 {
				return &arrays[0]
			}
			return nil
		}
		for i := range arrays {
			if arrays[i].Name == name {
				return &arrays[i]
			}
		}
		return nil
	}

	if len(f.CellArrays) > 0 {
		if arr := pick(f.CellArrays); arr != nil {
			return arr, true, nil
		}
		return nil, false, fmt.Errorf("no cell array named %q", name)
	}
	if arr := pick(f.PointArrays); arr != nil {
		return arr, false, nil
	}
	return nil, false, fmt.Errorf("no data array named %q", name)
}

// DataDims returns the grid dimensions the scalar values live on:
// cell dims for cell data, point dims otherwise.
func (f *Frame) DataDims(cell bool) [3]int {
	if cell {
		return f.CellDims()
	}
	return f.PointDims()
}
