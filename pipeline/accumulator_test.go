package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spparks-data/vtiset/vti"
)

func TestAccumulator_AppendFlush(t *testing.T) {
	// GIVEN three appended frames
	acc := &SequenceAccumulator{}
	a, b, c := &vti.Frame{}, &vti.Frame{}, &vti.Frame{}
	acc.Append(a)
	acc.Append(b)
	acc.Append(c)
	require.Equal(t, 3, acc.Len())

	// WHEN flushed
	seq, ok := acc.Flush()

	// THEN the sequence preserves append order and the buffer is empty
	require.True(t, ok)
	assert.Equal(t, TemporalSequence{a, b, c}, seq)
	assert.Equal(t, 0, acc.Len())
}

func TestAccumulator_FlushEmpty(t *testing.T) {
	acc := &SequenceAccumulator{}
	seq, ok := acc.Flush()
	assert.False(t, ok)
	assert.Nil(t, seq)
}

func TestAccumulator_FlushedSequenceIsDetached(t *testing.T) {
	// GIVEN a flushed sequence
	acc := &SequenceAccumulator{}
	a := &vti.Frame{}
	acc.Append(a)
	seq, ok := acc.Flush()
	require.True(t, ok)

	// WHEN the accumulator keeps collecting
	acc.Append(&vti.Frame{})
	acc.Append(&vti.Frame{})

	// THEN the earlier sequence is unaffected
	assert.Equal(t, TemporalSequence{a}, seq)
}

func TestAccumulator_Reset(t *testing.T) {
	acc := &SequenceAccumulator{}
	acc.Append(&vti.Frame{})
	acc.Reset()
	assert.Equal(t, 0, acc.Len())
	_, ok := acc.Flush()
	assert.False(t, ok)
}
