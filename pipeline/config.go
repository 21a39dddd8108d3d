package pipeline

import (
	"io"

	"github.com/spparks-data/vtiset/vti"
)

// FrameDecoder parses one archive entry's bytes into a volumetric frame.
// Decode failures are per-entry: the ingestor skips the entry and moves on.
type FrameDecoder interface {
	Decode(r io.Reader) (*vti.Frame, error)
}

// Config groups the knobs of one pipeline run.
type Config struct {
	FrameMarker string        // substring of the base name identifying frame files
	Scalar      string        // data array to convert ("Spin" for SPPARKS output)
	VOI         vti.VOIPolicy // slicing rule for 2D datasets
	Decoder     FrameDecoder  // frame format decoder (defaults to the vti reader)
}

// NewConfig returns a Config with the SPPARKS defaults.
func NewConfig() Config {
	return Config{
		FrameMarker: ".vti.",
		Scalar:      "Spin",
		VOI:         vti.DefaultVOI,
		Decoder:     vti.NewDecoder(),
	}
}

// Pipeline drives one archive through ingestion and dataset generation.
type Pipeline struct {
	cfg Config
}

// New builds a Pipeline, filling unset Config fields with the defaults.
func New(cfg Config) *Pipeline {
	def := NewConfig()
	if cfg.FrameMarker == "" {
		cfg.FrameMarker = def.FrameMarker
	}
	if cfg.Scalar == "" {
		cfg.Scalar = def.Scalar
	}
	if cfg.Decoder == nil {
		cfg.Decoder = def.Decoder
	}
	// A zero VOI (X axis, bottom plane) is not a meaningful slicing rule
	// for this data, so treat it as "unset".
	if cfg.VOI == (vti.VOIPolicy{}) {
		cfg.VOI = def.VOI
	}
	return &Pipeline{cfg: cfg}
}
