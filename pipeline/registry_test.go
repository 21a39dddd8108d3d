package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spparks-data/vtiset/vti"
)

func seqOfLen(n int) TemporalSequence {
	seq := make(TemporalSequence, n)
	for i := range seq {
		seq[i] = &vti.Frame{}
	}
	return seq
}

func TestRegistry_BucketsByLength(t *testing.T) {
	// GIVEN sequences of lengths 3, 5, 3 registered in that order
	reg := NewSampleRegistry()
	a, b, c := seqOfLen(3), seqOfLen(5), seqOfLen(3)
	reg.Register(a)
	reg.Register(b)
	reg.Register(c)

	// THEN every sequence sits under its own length, discovery order kept
	assert.Equal(t, []int{3, 5}, reg.Lengths())
	three := reg.Sequences(3)
	require.Len(t, three, 2)
	assert.Equal(t, a[0], three[0][0])
	assert.Equal(t, c[0], three[1][0])
	require.Len(t, reg.Sequences(5), 1)
	assert.Equal(t, 3, reg.NumExperiments())
	assert.Equal(t, 11, reg.NumFrames())
}

func TestRegistry_DropsEmptySequence(t *testing.T) {
	reg := NewSampleRegistry()
	reg.Register(TemporalSequence{})
	reg.Register(nil)
	assert.Empty(t, reg.Lengths())
	assert.Equal(t, 0, reg.NumExperiments())
}

func TestRegistry_UnknownLength(t *testing.T) {
	reg := NewSampleRegistry()
	assert.Nil(t, reg.Sequences(7))
}

func TestFlatten_Order(t *testing.T) {
	// GIVEN two sequences in one bucket
	a, b := seqOfLen(2), seqOfLen(2)

	// WHEN flattened
	frames := Flatten([]TemporalSequence{a, b})

	// THEN the result is a's frames then b's frames, in order
	require.Len(t, frames, 4)
	assert.Equal(t, a[0], frames[0])
	assert.Equal(t, a[1], frames[1])
	assert.Equal(t, b[0], frames[2])
	assert.Equal(t, b[1], frames[3])
}
