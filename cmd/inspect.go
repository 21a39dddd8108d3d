package cmd

import (
	"math"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/spparks-data/vtiset/hdf5io"
)

var (
	datasetPath string // Container file to inspect
	experiment  int    // Experiment index to summarize (-1 for the whole dataset)
)

// inspectCmd reports the shape and value statistics of a dataset file
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Report shape and value statistics of a dataset file",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		if datasetPath == "" {
			logrus.Fatalf("No dataset provided. Use --dataset.")
		}

		stack, err := hdf5io.ReadImages(datasetPath)
		if err != nil {
			logrus.Fatalf("Cannot read dataset %s: %v", datasetPath, err)
		}
		logrus.Infof("Dataset %s: shape %v, %d frames", datasetPath, stack.Dims, stack.NumFrames())

		seqLen, ok := hdf5io.LengthFromName(datasetPath)
		if ok {
			if stack.NumFrames()%seqLen != 0 {
				logrus.Warnf("Frame count %d is not a multiple of the sequence length %d in the file name",
					stack.NumFrames(), seqLen)
			} else {
				logrus.Infof("%d experiments of %d frames each", stack.NumFrames()/seqLen, seqLen)
			}
		}

		values := stack.Data
		if experiment >= 0 {
			if !ok {
				logrus.Fatalf("Cannot select an experiment: no sequence length in file name %s", datasetPath)
			}
			numExp := stack.NumFrames() / seqLen
			if experiment >= numExp {
				logrus.Fatalf("Experiment %d out of range [0, %d)", experiment, numExp)
			}
			per := len(stack.Data) / stack.NumFrames()
			values = stack.Data[experiment*seqLen*per : (experiment+1)*seqLen*per]
			logrus.Infof("Summarizing experiment %d (%d values)", experiment, len(values))
		}

		mean, std := stat.MeanStdDev(values, nil)
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, v := range values {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		logrus.Infof("Values: mean %.4f, stddev %.4f, min %g, max %g", mean, std, lo, hi)
	},
}

func init() {
	inspectCmd.Flags().StringVar(&datasetPath, "dataset", "", "Path to a dataset .h5 file")
	inspectCmd.Flags().IntVar(&experiment, "experiment", -1, "Experiment index to summarize (default: whole dataset)")

	rootCmd.AddCommand(inspectCmd)
}
