// Package pipeline implements the streaming archive-to-dataset pipeline:
// it walks a tar.gz archive of experiment directories one entry at a time,
// assembles each directory's frames into a temporal sequence, groups the
// sequences by length, and materializes one HDF5 dataset file per
// (length, variant) pair.
//
// # Reading Guide
//
// Start with these three files to understand the data flow:
//   - entry.go: how archive members are classified (boundary / frame / ignored)
//   - ingest.go: the streaming traversal, flush points, and salvage behavior
//   - generate.go: flattening length groups into stacked dataset files
//
// # Memory model
//
// The archive is never materialized: process-wide state is bounded by one
// open experiment's decoded frames plus a single in-flight entry buffer.
// Frame decoding lives in the vti package, container I/O in hdf5io; both
// are reached only through the narrow seams in Config and generate.go.
package pipeline
