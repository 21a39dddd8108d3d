package pipeline

import (
	"archive/tar"
	"path"
	"strings"
)

// EntryKind classifies one archive member. The set is closed: every member
// is exactly one of a directory boundary, a frame payload, or noise.
type EntryKind int

const (
	// EntryBoundary marks the start of a new experiment directory.
	EntryBoundary EntryKind = iota
	// EntryFrame is a regular file carrying one volumetric frame.
	EntryFrame
	// EntryIgnored is anything else (logs, checkpoints, symlinks, ...).
	EntryIgnored
)

func (k EntryKind) String() string {
	switch k {
	case EntryBoundary:
		return "boundary"
	case EntryFrame:
		return "frame"
	default:
		return "ignored"
	}
}

// ClassifyEntry decides how the ingestor treats a tar member. Regular files
// count as frames only when their base name contains marker (".vti." for
// SPPARKS output, so IN1003d.vti.0, IN1003d.vti.1, ... all match).
func ClassifyEntry(hdr *tar.Header, marker string) EntryKind {
	switch hdr.Typeflag {
	case tar.TypeDir:
		return EntryBoundary
	case tar.TypeReg:
		if strings.Contains(path.Base(hdr.Name), marker) {
			return EntryFrame
		}
	}
	return EntryIgnored
}
