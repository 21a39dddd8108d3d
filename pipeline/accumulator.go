// Implements the SequenceAccumulator, which buffers the frames of the
// experiment currently being read from the archive stream.

package pipeline

import "github.com/spparks-data/vtiset/vti"

// TemporalSequence is one experiment's frames in archive stream order.
// A flushed sequence is immutable by convention: the accumulator hands off
// its backing storage and never touches it again.
type TemporalSequence []*vti.Frame

// SequenceAccumulator collects frames for the currently open experiment.
// Strict append, no deduplication, no reordering.
type SequenceAccumulator struct {
	frames []*vti.Frame
}

// Append adds a frame to the back of the buffer.
func (a *SequenceAccumulator) Append(f *vti.Frame) {
	a.frames = append(a.frames, f)
}

// Len returns the number of buffered frames.
func (a *SequenceAccumulator) Len() int {
	return len(a.frames)
}

// Flush hands off the buffered frames as a sequence and clears the buffer.
// Flushing an empty buffer reports false and yields nothing.
func (a *SequenceAccumulator) Flush() (TemporalSequence, bool) {
	if len(a.frames) == 0 {
		return nil, false
	}
	seq := TemporalSequence(a.frames)
	a.frames = nil
	return seq, true
}

// Reset discards any buffered frames.
func (a *SequenceAccumulator) Reset() {
	a.frames = nil
}
