// Package hdf5io persists converted frame stacks as HDF5 container files,
// one dataset named "images" per file, and reads them back.
//
// Writing and reading go through two pure-Go HDF5 libraries with
// complementary coverage: scigolib/hdf5 creates datasets with explicit
// dimensions from a flat row-major slice (required for the multi-dim image
// stacks), while robert-malhotra/go-hdf5 carries the full read path
// (shape discovery plus typed dataset reads).
package hdf5io

import (
	"fmt"
	"regexp"
	"strconv"

	gohdf5 "github.com/robert-malhotra/go-hdf5/hdf5"
	scihdf5 "github.com/scigolib/hdf5"

	"github.com/spparks-data/vtiset/vti"
)

// DatasetName is the single dataset every container file holds.
const DatasetName = "images"

// WriteImages stacks the given grids into one dataset named "images" and
// writes it to path, overwriting any existing file. All grids must share
// the same dims; the dataset shape is (len(images), dims...).
func WriteImages(path string, images []*vti.Grid) error {
	if len(images) == 0 {
		return fmt.Errorf("no images to write")
	}
	dims, flat, err := stack(images)
	if err != nil {
		return err
	}

	fw, err := scihdf5.CreateForWrite(path, scihdf5.CreateTruncate)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	ds, err := fw.CreateDataset("/"+DatasetName, scihdf5.Float64, dims)
	if err != nil {
		fw.Close()
		return fmt.Errorf("creating dataset in %s: %w", path, err)
	}
	if err := ds.Write(flat); err != nil {
		fw.Close()
		return fmt.Errorf("writing dataset to %s: %w", path, err)
	}
	if err := fw.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// stack validates that all grids share one shape and concatenates their
// data row-major. Returned dims are (count, grid dims...).
func stack(images []*vti.Grid) ([]uint64, []float64, error) {
	first := images[0]
	per := first.NumElements()
	for i, g := range images {
		if len(g.Dims) != len(first.Dims) {
			return nil, nil, fmt.Errorf("image %d has rank %d, want %d", i, len(g.Dims), len(first.Dims))
		}
		for ax := range g.Dims {
			if g.Dims[ax] != first.Dims[ax] {
				return nil, nil, fmt.Errorf("image %d has dims %v, want %v", i, g.Dims, first.Dims)
			}
		}
		if len(g.Data) != per {
			return nil, nil, fmt.Errorf("image %d has %d values, dims %v want %d", i, len(g.Data), g.Dims, per)
		}
	}

	dims := make([]uint64, 0, len(first.Dims)+1)
	dims = append(dims, uint64(len(images)))
	for _, d := range first.Dims {
		dims = append(dims, uint64(d))
	}
	flat := make([]float64, 0, len(images)*per)
	for _, g := range images {
		flat = append(flat, g.Data...)
	}
	return dims, flat, nil
}

// Stack is an image stack read back from a container file.
type Stack struct {
	Dims []int // (count, frame dims...)
	Data []float64
}

// NumFrames returns the leading dimension of the stack.
func (s *Stack) NumFrames() int {
	if len(s.Dims) == 0 {
		return 0
	}
	return s.Dims[0]
}

// frameSize returns the number of values per frame.
func (s *Stack) frameSize() int {
	n := 1
	for _, d := range s.Dims[1:] {
		n *= d
	}
	return n
}

// Frame returns image i of the stack as a Grid sharing the stack's storage.
func (s *Stack) Frame(i int) (*vti.Grid, error) {
	if i < 0 || i >= s.NumFrames() {
		return nil, fmt.Errorf("frame %d out of range [0, %d)", i, s.NumFrames())
	}
	per := s.frameSize()
	return &vti.Grid{
		Dims: append([]int(nil), s.Dims[1:]...),
		Data: s.Data[i*per : (i+1)*per],
	}, nil
}

// ReadImages opens a container file and reads the full "images" dataset.
func ReadImages(path string) (*Stack, error) {
	f, err := gohdf5.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	ds, err := f.OpenDataset("/" + DatasetName)
	if err != nil {
		return nil, fmt.Errorf("opening dataset in %s: %w", path, err)
	}
	shape := ds.Shape()
	if len(shape) < 2 {
		return nil, fmt.Errorf("dataset in %s has rank %d, want >= 2", path, len(shape))
	}
	data, err := ds.ReadFloat64()
	if err != nil {
		return nil, fmt.Errorf("reading dataset from %s: %w", path, err)
	}

	dims := make([]int, len(shape))
	n := 1
	for i, d := range shape {
		dims[i] = int(d)
		n *= int(d)
	}
	if len(data) != n {
		return nil, fmt.Errorf("dataset in %s has %d values, shape %v wants %d", path, len(data), dims, n)
	}
	return &Stack{Dims: dims, Data: data}, nil
}

var lengthRe = regexp.MustCompile(`len_(\d+)`)

// LengthFromName extracts the per-experiment sequence length encoded in a
// dataset file name of the form "{base}_len_{L}_{2D|3D}.h5".
func LengthFromName(path string) (int, bool) {
	m := lengthRe.FindStringSubmatch(path)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
