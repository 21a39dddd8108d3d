// Implements the DatasetGenerator: flattens every length group of the
// registry into one stacked array per variant and writes the container
// files.

package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/spparks-data/vtiset/hdf5io"
	"github.com/spparks-data/vtiset/vti"
)

// GenerateOptions selects which dataset variants a generation run emits.
// At least one must be set.
type GenerateOptions struct {
	Slicing    bool // write {base}_len_{L}_2D.h5 with top-slice frames
	Generate3D bool // write {base}_len_{L}_3D.h5 with full volumes
}

// Generate writes one container file per (length, variant) pair and
// returns the paths actually written, in generation order. Write errors
// are fatal and propagate; no partial-file cleanup is attempted.
func (p *Pipeline) Generate(registry *SampleRegistry, outputDir, baseName string, opts GenerateOptions) ([]string, error) {
	if !opts.Slicing && !opts.Generate3D {
		return nil, errors.New("generate: at least one of slicing and 3D output must be enabled")
	}

	var paths []string
	for _, length := range registry.Lengths() {
		sequences := registry.Sequences(length)
		logrus.Infof("%s: len %d, experiments %d", baseName, length, len(sequences))

		frames := Flatten(sequences)

		if opts.Generate3D {
			path := filepath.Join(outputDir, fmt.Sprintf("%s_len_%d_3D.h5", baseName, length))
			if err := p.writeVariant(path, frames, false); err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
		if opts.Slicing {
			path := filepath.Join(outputDir, fmt.Sprintf("%s_len_%d_2D.h5", baseName, length))
			if err := p.writeVariant(path, frames, true); err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
	}
	return paths, nil
}

// Flatten concatenates a bucket's sequences into one frame list:
// experiment order first, then frame order within each experiment.
func Flatten(sequences []TemporalSequence) []*vti.Frame {
	n := 0
	for _, seq := range sequences {
		n += len(seq)
	}
	frames := make([]*vti.Frame, 0, n)
	for _, seq := range sequences {
		frames = append(frames, seq...)
	}
	return frames
}

// writeVariant converts frames (sliced or full) and writes one container.
func (p *Pipeline) writeVariant(path string, frames []*vti.Frame, slicing bool) error {
	images := make([]*vti.Grid, 0, len(frames))
	for i, frame := range frames {
		grid, err := vti.ToArray(frame, p.cfg.Scalar, slicing, p.cfg.VOI)
		if err != nil {
			return fmt.Errorf("converting frame %d for %s: %w", i, path, err)
		}
		images = append(images, grid)
	}
	if err := hdf5io.WriteImages(path, images); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	logSummary(path, images)
	return nil
}

// logSummary reports the value range and moments of a written dataset;
// downstream training pipelines use these to pick a normalization.
func logSummary(path string, images []*vti.Grid) {
	if logrus.GetLevel() < logrus.InfoLevel {
		return
	}
	n := 0
	for _, g := range images {
		n += len(g.Data)
	}
	all := make([]float64, 0, n)
	vmin, vmax := images[0].Data[0], images[0].Data[0]
	for _, g := range images {
		for _, v := range g.Data {
			if v < vmin {
				vmin = v
			}
			if v > vmax {
				vmax = v
			}
		}
		all = append(all, g.Data...)
	}
	mean, std := stat.MeanStdDev(all, nil)
	logrus.Infof("Wrote %s: %d images, shape %v, range [%g, %g], mean %.4g, stddev %.4g",
		path, len(images), images[0].Dims, vmin, vmax, mean, std)
}
