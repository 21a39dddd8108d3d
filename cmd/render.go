package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/spparks-data/vtiset/hdf5io"
	"github.com/spparks-data/vtiset/vti"
)

var (
	frameIndex int    // Frame to render
	renderOut  string // Output PNG path
)

// renderCmd draws one 2D frame of a dataset file as a heatmap PNG
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a 2D dataset frame as a heatmap PNG",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		if datasetPath == "" {
			logrus.Fatalf("No dataset provided. Use --dataset.")
		}

		stack, err := hdf5io.ReadImages(datasetPath)
		if err != nil {
			logrus.Fatalf("Cannot read dataset %s: %v", datasetPath, err)
		}
		frame, err := stack.Frame(frameIndex)
		if err != nil {
			logrus.Fatalf("Cannot select frame: %v", err)
		}
		if len(frame.Dims) != 2 {
			logrus.Fatalf("Frame has rank %d; only 2D datasets can be rendered", len(frame.Dims))
		}

		if err := renderHeatmap(frame, renderOut); err != nil {
			logrus.Fatalf("Cannot render frame: %v", err)
		}
		logrus.Infof("Heatmap saved in: %s", renderOut)
	},
}

// renderHeatmap draws a 2D grid as a heatmap and saves it as a PNG.
func renderHeatmap(frame *vti.Grid, out string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%dx%d frame", frame.Dims[1], frame.Dims[0])
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	hm := plotter.NewHeatMap(&gridXYZ{frame}, palette.Heat(12, 1))
	if hm.Min == hm.Max {
		// A constant-valued frame would collapse the color scale.
		hm.Max = hm.Min + 1
	}
	p.Add(hm)

	if err := p.Save(6*vg.Inch, 6*vg.Inch, out); err != nil {
		return fmt.Errorf("save heatmap: %w", err)
	}
	return nil
}

// gridXYZ adapts a 2D Grid (Dims = [rows, cols], row-major) to the
// plotter.GridXYZ interface.
type gridXYZ struct {
	g *vti.Grid
}

func (a *gridXYZ) Dims() (int, int)   { return a.g.Dims[1], a.g.Dims[0] }
func (a *gridXYZ) Z(c, r int) float64 { return a.g.Data[r*a.g.Dims[1]+c] }
func (a *gridXYZ) X(c int) float64    { return float64(c) }
func (a *gridXYZ) Y(r int) float64    { return float64(r) }

func init() {
	renderCmd.Flags().StringVar(&datasetPath, "dataset", "", "Path to a 2D dataset .h5 file")
	renderCmd.Flags().IntVar(&frameIndex, "frame", 0, "Frame index to render")
	renderCmd.Flags().StringVar(&renderOut, "out", "frame.png", "Output PNG path")

	rootCmd.AddCommand(renderCmd)
}
