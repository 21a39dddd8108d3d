package cmd

import (
	"bytes"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/spparks-data/vtiset/pipeline"
)

// Defaults mirrors the optional defaults.yaml file: every field overrides
// the matching Config default when set.
type Defaults struct {
	FrameMarker string `yaml:"frame_marker,omitempty"`
	Scalar      string `yaml:"scalar,omitempty"`
	VOIAxis     string `yaml:"voi_axis,omitempty"`
	VOIFromTop  *bool  `yaml:"voi_from_top,omitempty"`
}

// parseDefaults decodes defaults.yaml content, rejecting unknown fields.
func parseDefaults(data []byte) (Defaults, error) {
	var d Defaults
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return Defaults{}, err
	}
	return d, nil
}

// loadDefaults reads and parses a defaults.yaml, exiting on failure.
func loadDefaults(path string) Defaults {
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Fatalf("Cannot read defaults file %s: %v", path, err)
	}
	d, err := parseDefaults(data)
	if err != nil {
		logrus.Fatalf("Cannot parse defaults file %s: %v", path, err)
	}
	return d
}

// apply writes the set fields onto cfg.
func (d Defaults) apply(cfg *pipeline.Config) {
	if d.FrameMarker != "" {
		cfg.FrameMarker = d.FrameMarker
	}
	if d.Scalar != "" {
		cfg.Scalar = d.Scalar
	}
	if d.VOIAxis != "" {
		axis, ok := parseAxis(d.VOIAxis)
		if !ok {
			logrus.Fatalf("Invalid voi_axis %q in defaults file: want x, y or z", d.VOIAxis)
		}
		cfg.VOI.Axis = axis
	}
	if d.VOIFromTop != nil {
		cfg.VOI.FromTop = *d.VOIFromTop
	}
}
