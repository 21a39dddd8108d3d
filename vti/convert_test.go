package vti

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// volumeFrame builds a frame with cell dims (nx, ny, nz) whose Spin values
// are their own flat index, X varying fastest.
func volumeFrame(nx, ny, nz int) *Frame {
	values := make([]float64, nx*ny*nz)
	for i := range values {
		values[i] = float64(i)
	}
	return &Frame{
		Extent:  [6]int{0, nx, 0, ny, 0, nz},
		Spacing: [3]float64{1, 1, 1},
		CellArrays: []DataArray{
			{Name: "Spin", SourceType: "Int32", NumComponents: 1, Values: values},
		},
	}
}

func TestToArray_FullVolume(t *testing.T) {
	// GIVEN a 4x3x2-cell frame
	frame := volumeFrame(4, 3, 2)

	// WHEN converted without slicing
	grid, err := ToArray(frame, "Spin", false, DefaultVOI)
	require.NoError(t, err)

	// THEN dims are (nz, ny, nx) and every voxel value is preserved
	assert.Equal(t, []int{2, 3, 4}, grid.Dims)
	require.Equal(t, 24, grid.NumElements())
	for i, v := range grid.Data {
		assert.Equal(t, float64(i), v)
	}
}

func TestToArray_FullVolume_Idempotent(t *testing.T) {
	// GIVEN one frame converted twice
	frame := volumeFrame(3, 3, 3)
	a, err := ToArray(frame, "Spin", false, DefaultVOI)
	require.NoError(t, err)
	b, err := ToArray(frame, "Spin", false, DefaultVOI)
	require.NoError(t, err)

	// THEN both conversions are identical and independent
	assert.Equal(t, a.Dims, b.Dims)
	assert.Equal(t, a.Data, b.Data)
	a.Data[0] = -1
	assert.Equal(t, float64(0), b.Data[0])
	assert.Equal(t, float64(0), frame.CellArrays[0].Values[0])
}

func TestToArray_TopSlice(t *testing.T) {
	// GIVEN a 4x3x2-cell frame
	frame := volumeFrame(4, 3, 2)

	// WHEN converted with slicing under the default VOI policy
	grid, err := ToArray(frame, "Spin", true, DefaultVOI)
	require.NoError(t, err)

	// THEN the result is the topmost Z layer, full X/Y extent
	assert.Equal(t, []int{3, 4}, grid.Dims)
	want := make([]float64, 12)
	for i := range want {
		want[i] = float64(12 + i) // second (topmost) Z layer of the 4x3 grid
	}
	assert.Equal(t, want, grid.Data)
}

func TestToArray_SliceAxisOverride(t *testing.T) {
	// GIVEN a 2x2x2-cell frame with values 0..7
	frame := volumeFrame(2, 2, 2)

	// WHEN sliced along Y from the bottom
	grid, err := ToArray(frame, "Spin", true, VOIPolicy{Axis: 1, FromTop: false})
	require.NoError(t, err)

	// THEN the plane keeps (z, x) and selects y=0
	assert.Equal(t, []int{2, 2}, grid.Dims)
	assert.Equal(t, []float64{0, 1, 4, 5}, grid.Data)
}

func TestToArray_ValueCountMismatch(t *testing.T) {
	frame := volumeFrame(2, 2, 2)
	frame.CellArrays[0].Values = frame.CellArrays[0].Values[:5]
	_, err := ToArray(frame, "Spin", false, DefaultVOI)
	assert.Error(t, err)
}

func TestToArray_BadVOIAxis(t *testing.T) {
	frame := volumeFrame(2, 2, 2)
	_, err := ToArray(frame, "Spin", true, VOIPolicy{Axis: 3, FromTop: true})
	assert.Error(t, err)
}
