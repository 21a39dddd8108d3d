package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spparks-data/vtiset/pipeline"
)

func TestParseDefaults(t *testing.T) {
	// GIVEN a defaults file overriding every knob
	doc := []byte(`
frame_marker: ".vtk."
scalar: Energy
voi_axis: y
voi_from_top: false
`)

	// WHEN parsed and applied
	d, err := parseDefaults(doc)
	require.NoError(t, err)
	cfg := pipeline.NewConfig()
	d.apply(&cfg)

	// THEN the config carries the overrides
	assert.Equal(t, ".vtk.", cfg.FrameMarker)
	assert.Equal(t, "Energy", cfg.Scalar)
	assert.Equal(t, 1, cfg.VOI.Axis)
	assert.False(t, cfg.VOI.FromTop)
}

func TestParseDefaults_PartialKeepsDefaults(t *testing.T) {
	d, err := parseDefaults([]byte(`scalar: Energy`))
	require.NoError(t, err)
	cfg := pipeline.NewConfig()
	d.apply(&cfg)

	assert.Equal(t, "Energy", cfg.Scalar)
	assert.Equal(t, ".vti.", cfg.FrameMarker)
	assert.Equal(t, 2, cfg.VOI.Axis)
	assert.True(t, cfg.VOI.FromTop)
}

func TestParseDefaults_RejectsUnknownField(t *testing.T) {
	_, err := parseDefaults([]byte(`scaler: Energy`))
	assert.Error(t, err)
}

func TestParseAxis(t *testing.T) {
	for s, want := range map[string]int{"x": 0, "y": 1, "z": 2, "Z": 2} {
		axis, ok := parseAxis(s)
		require.True(t, ok, s)
		assert.Equal(t, want, axis, s)
	}
	_, ok := parseAxis("w")
	assert.False(t, ok)
}
