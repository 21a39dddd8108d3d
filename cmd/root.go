package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/spparks-data/vtiset/pipeline"
)

var (
	// CLI flags shared by all subcommands
	logLevel string // Log verbosity level

	// CLI flags for the pack subcommand
	tarPath      string // Input .tar.gz archive of experiment directories
	outputDir    string // Directory receiving the dataset files
	outputName   string // Base name of the dataset files
	slicing      bool   // Generate 2D top-slice datasets
	generate3D   bool   // Generate full-volume 3D datasets
	scalarName   string // Data array to convert
	frameMarker  string // Substring identifying frame files
	voiAxis      string // Slicing axis override (x, y or z)
	defaultsPath string // Optional defaults.yaml
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "vtiset",
	Short: "Convert archives of SPPARKS volumetric frames into HDF5 training datasets",
}

// setupLogging applies the --log flag before any work starts.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// packCmd runs the end-to-end archive-to-dataset conversion
var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Stream a tar.gz archive and write length-grouped dataset files",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		if tarPath == "" {
			logrus.Fatalf("No archive provided. Use --tar-path.")
		}
		if !slicing && !generate3D {
			logrus.Fatalf("Nothing to generate: enable --slice and/or --generate-3d.")
		}

		cfg := pipeline.NewConfig()
		if defaultsPath != "" {
			loadDefaults(defaultsPath).apply(&cfg)
		}
		if scalarName != "" {
			cfg.Scalar = scalarName
		}
		if frameMarker != "" {
			cfg.FrameMarker = frameMarker
		}
		if voiAxis != "" {
			axis, ok := parseAxis(voiAxis)
			if !ok {
				logrus.Fatalf("Invalid --voi-axis %q: want x, y or z", voiAxis)
			}
			cfg.VOI.Axis = axis
		}

		logrus.Infof("Processing archive %s", tarPath)
		p := pipeline.New(cfg)

		registry, err := p.Ingest(tarPath)
		if err != nil {
			// Ingest already reported the cause; proceed with the empty
			// registry so the run still terminates cleanly.
			logrus.Errorf("Ingestion produced no data: %v", err)
		}

		paths, err := p.Generate(registry, outputDir, outputName, pipeline.GenerateOptions{
			Slicing:    slicing,
			Generate3D: generate3D,
		})
		if err != nil {
			logrus.Fatalf("Dataset generation failed: %v", err)
		}
		for _, path := range paths {
			logrus.Infof("Dataset saved in: %s", path)
		}
		logrus.Infof("Done: %d experiments, %d frames, %d dataset files",
			registry.NumExperiments(), registry.NumFrames(), len(paths))
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	packCmd.Flags().StringVar(&tarPath, "tar-path", "", "Path to the .tar.gz archive")
	packCmd.Flags().StringVar(&outputDir, "output-dir", ".", "Directory for the generated dataset files")
	packCmd.Flags().StringVar(&outputName, "output-name", "exp", "Base name for the generated dataset files")
	packCmd.Flags().BoolVar(&slicing, "slice", true, "Write 2D top-slice datasets")
	packCmd.Flags().BoolVar(&generate3D, "generate-3d", false, "Write full-volume 3D datasets")
	packCmd.Flags().StringVar(&scalarName, "scalar", "", "Data array to convert (default Spin)")
	packCmd.Flags().StringVar(&frameMarker, "frame-marker", "", "Substring identifying frame files (default .vti.)")
	packCmd.Flags().StringVar(&voiAxis, "voi-axis", "", "Slicing axis: x, y or z (default z)")
	packCmd.Flags().StringVar(&defaultsPath, "defaults", "", "Optional defaults.yaml overriding marker/scalar/VOI")

	rootCmd.AddCommand(packCmd)
}

func parseAxis(s string) (int, bool) {
	switch s {
	case "x", "X":
		return 0, true
	case "y", "Y":
		return 1, true
	case "z", "Z":
		return 2, true
	}
	return 0, false
}
