// Implements the ArchiveIngestor: a single streaming pass over a tar.gz
// archive that assembles per-experiment frame sequences and files them in
// a SampleRegistry.

package pipeline

import (
	"archive/tar"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/sirupsen/logrus"
)

// Ingest streams the archive at tarPath and returns the registry of all
// completed sequences.
//
// Failure semantics, from most to least local:
//   - a frame entry that fails to decode is skipped with a warning;
//   - a stream that ends abruptly mid-member salvages the open sequence,
//     warns, and still returns the registry with a nil error;
//   - any other traversal error stops the walk the same way;
//   - an archive that cannot be opened (or is not gzip at all) returns an
//     empty registry together with the error.
//
// The archive is consumed one entry at a time; memory is bounded by the
// open experiment's frames plus one in-flight entry.
func (p *Pipeline) Ingest(tarPath string) (*SampleRegistry, error) {
	registry := NewSampleRegistry()

	f, err := os.Open(tarPath)
	if err != nil {
		logrus.Errorf("Cannot open archive %s: %v", tarPath, err)
		return registry, fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		logrus.Errorf("Archive %s is not a valid gzip stream: %v", tarPath, err)
		return registry, fmt.Errorf("reading gzip header: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	acc := &SequenceAccumulator{}
	entries := 0

walk:
	for {
		hdr, err := tr.Next()
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			break walk
		case errors.Is(err, io.ErrUnexpectedEOF):
			logrus.Warnf("Reached corrupted section of %s after %d entries; salvaging open sequence", tarPath, entries)
			break walk
		default:
			logrus.Warnf("Archive traversal stopped after %d entries: %v", entries, err)
			break walk
		}
		entries++

		switch ClassifyEntry(hdr, p.cfg.FrameMarker) {
		case EntryBoundary:
			if seq, ok := acc.Flush(); ok {
				registry.Register(seq)
			}

		case EntryFrame:
			payload, err := io.ReadAll(tr)
			if err != nil {
				// Truncation inside a member: keep what decoded so far.
				logrus.Warnf("Entry %s truncated: %v; salvaging open sequence", hdr.Name, err)
				break walk
			}
			frame, err := p.cfg.Decoder.Decode(bytes.NewReader(payload))
			if err != nil {
				logrus.Warnf("Skipping undecodable frame %s: %v", hdr.Name, err)
				continue
			}
			acc.Append(frame)

		case EntryIgnored:
			logrus.Debugf("Ignoring archive entry %s", hdr.Name)
		}
	}

	// The last experiment has no trailing boundary.
	if seq, ok := acc.Flush(); ok {
		registry.Register(seq)
	}

	logrus.Infof("Ingested %s: %d entries, %d experiments, %d frames",
		tarPath, entries, registry.NumExperiments(), registry.NumFrames())
	return registry, nil
}
