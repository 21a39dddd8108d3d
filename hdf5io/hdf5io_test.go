package hdf5io

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spparks-data/vtiset/vti"
)

func grid2x2(base float64) *vti.Grid {
	return &vti.Grid{Dims: []int{2, 2}, Data: []float64{base, base + 1, base + 2, base + 3}}
}

func TestStack_ShapeAndOrder(t *testing.T) {
	// GIVEN three 2x2 grids
	images := []*vti.Grid{grid2x2(0), grid2x2(10), grid2x2(20)}

	// WHEN stacked
	dims, flat, err := stack(images)
	require.NoError(t, err)

	// THEN the shape gains a leading count axis and data concatenates in order
	assert.Equal(t, []uint64{3, 2, 2}, dims)
	assert.Equal(t, []float64{0, 1, 2, 3, 10, 11, 12, 13, 20, 21, 22, 23}, flat)
}

func TestStack_RejectsMixedDims(t *testing.T) {
	images := []*vti.Grid{
		grid2x2(0),
		{Dims: []int{4}, Data: []float64{0, 1, 2, 3}},
	}
	_, _, err := stack(images)
	assert.Error(t, err)
}

func TestStack_RejectsShortData(t *testing.T) {
	images := []*vti.Grid{
		grid2x2(0),
		{Dims: []int{2, 2}, Data: []float64{0, 1}},
	}
	_, _, err := stack(images)
	assert.Error(t, err)
}

func TestWriteImages_Empty(t *testing.T) {
	err := WriteImages(t.TempDir()+"/out.h5", nil)
	assert.Error(t, err)
}

func TestWriteReadImages_RoundTrip(t *testing.T) {
	// GIVEN three 2x2 grids with distinct values
	images := []*vti.Grid{grid2x2(0), grid2x2(10), grid2x2(20)}
	path := filepath.Join(t.TempDir(), "round_len_3_2D.h5")

	// WHEN written and read back through the container
	require.NoError(t, WriteImages(path, images))
	s, err := ReadImages(path)
	require.NoError(t, err)

	// THEN shape and values survive, stacked in write order
	assert.Equal(t, []int{3, 2, 2}, s.Dims)
	assert.Equal(t, []float64{0, 1, 2, 3, 10, 11, 12, 13, 20, 21, 22, 23}, s.Data)
}

func TestStackFrame_Indexing(t *testing.T) {
	// GIVEN a read-back stack of two 2x3 frames
	s := &Stack{
		Dims: []int{2, 2, 3},
		Data: []float64{0, 1, 2, 3, 4, 5, 10, 11, 12, 13, 14, 15},
	}
	require.Equal(t, 2, s.NumFrames())

	// WHEN individual frames are selected
	f0, err := s.Frame(0)
	require.NoError(t, err)
	f1, err := s.Frame(1)
	require.NoError(t, err)

	// THEN each window carries its own values and the frame dims
	assert.Equal(t, []int{2, 3}, f0.Dims)
	assert.Equal(t, []float64{0, 1, 2, 3, 4, 5}, f0.Data)
	assert.Equal(t, []float64{10, 11, 12, 13, 14, 15}, f1.Data)

	_, err = s.Frame(2)
	assert.Error(t, err)
}

func TestLengthFromName(t *testing.T) {
	cases := []struct {
		path string
		want int
		ok   bool
	}{
		{"exp_6_len_28_2D.h5", 28, true},
		{"/data/out/run_len_3_3D.h5", 3, true},
		{"exp_len_0_2D.h5", 0, false},
		{"exp_2D.h5", 0, false},
	}
	for _, c := range cases {
		got, ok := LengthFromName(c.path)
		assert.Equal(t, c.ok, ok, c.path)
		if c.ok {
			assert.Equal(t, c.want, got, c.path)
		}
	}
}
