package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/spparks-data/vtiset/pipeline"
)

var metadataName string // File receiving the experiment directory listing

// countCmd lists the experiment directories of an archive without decoding frames
var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Count the experiment directories in a tar.gz archive",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		if tarPath == "" {
			logrus.Fatalf("No archive provided. Use --tar-path.")
		}

		names, err := pipeline.Census(tarPath)
		if err != nil {
			logrus.Fatalf("Cannot read archive %s: %v", tarPath, err)
		}
		logrus.Infof("Found %d experiment directories in %s", len(names), tarPath)

		if metadataName != "" {
			out := filepath.Join(outputDir, metadataName)
			listing := strings.Join(names, "\n")
			if len(names) > 0 {
				listing += "\n"
			}
			if err := os.WriteFile(out, []byte(listing), 0o644); err != nil {
				logrus.Fatalf("Cannot write metadata file %s: %v", out, err)
			}
			logrus.Infof("Directory listing saved in: %s", out)
		}
	},
}

func init() {
	countCmd.Flags().StringVar(&tarPath, "tar-path", "", "Path to the .tar.gz archive")
	countCmd.Flags().StringVar(&outputDir, "output-dir", ".", "Directory for the metadata file")
	countCmd.Flags().StringVar(&metadataName, "metadata", "", "Optional file name for the directory listing")

	rootCmd.AddCommand(countCmd)
}
