// Implements the SampleRegistry, which groups completed temporal sequences
// by their length for dataset generation.

package pipeline

import "sort"

// SampleRegistry maps sequence length to the experiments of that length,
// preserving per-length discovery order. Only fully flushed sequences are
// registered; empty sequences never are.
type SampleRegistry struct {
	buckets map[int][]TemporalSequence
}

// NewSampleRegistry returns an empty registry.
func NewSampleRegistry() *SampleRegistry {
	return &SampleRegistry{buckets: make(map[int][]TemporalSequence)}
}

// Register files seq under its own length. Zero-length sequences are
// dropped silently; flushing already guards against producing them.
func (r *SampleRegistry) Register(seq TemporalSequence) {
	if len(seq) == 0 {
		return
	}
	r.buckets[len(seq)] = append(r.buckets[len(seq)], seq)
}

// Lengths returns the registered sequence lengths in ascending order.
// Generation iterates in this order so output is deterministic across runs.
func (r *SampleRegistry) Lengths() []int {
	lengths := make([]int, 0, len(r.buckets))
	for l := range r.buckets {
		lengths = append(lengths, l)
	}
	sort.Ints(lengths)
	return lengths
}

// Sequences returns the experiments of the given length in discovery order.
func (r *SampleRegistry) Sequences(length int) []TemporalSequence {
	return r.buckets[length]
}

// NumExperiments returns the total number of registered sequences.
func (r *SampleRegistry) NumExperiments() int {
	n := 0
	for _, seqs := range r.buckets {
		n += len(seqs)
	}
	return n
}

// NumFrames returns the total number of frames across all sequences.
func (r *SampleRegistry) NumFrames() int {
	n := 0
	for l, seqs := range r.buckets {
		n += l * len(seqs)
	}
	return n
}
