package pipeline

import (
	"archive/tar"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyEntry(t *testing.T) {
	cases := []struct {
		name     string
		typeflag byte
		want     EntryKind
	}{
		{"vHpdV_1/", tar.TypeDir, EntryBoundary},
		{"vHpdV_1/IN1003d.vti.0", tar.TypeReg, EntryFrame},
		{"vHpdV_1/IN1003d.vti.12", tar.TypeReg, EntryFrame},
		{"vHpdV_1/log.spparks", tar.TypeReg, EntryIgnored},
		{"vHpdV_1/README", tar.TypeReg, EntryIgnored},
		// marker must appear in the base name, not just the path
		{"weird.vti.dir/notes.txt", tar.TypeReg, EntryIgnored},
		{"vHpdV_1/link.vti.0", tar.TypeSymlink, EntryIgnored},
	}
	for _, c := range cases {
		hdr := &tar.Header{Name: c.name, Typeflag: c.typeflag}
		assert.Equal(t, c.want, ClassifyEntry(hdr, ".vti."), c.name)
	}
}

func TestClassifyEntry_CustomMarker(t *testing.T) {
	hdr := &tar.Header{Name: "run/field.vtk.3", Typeflag: tar.TypeReg}
	assert.Equal(t, EntryFrame, ClassifyEntry(hdr, ".vtk."))
	assert.Equal(t, EntryIgnored, ClassifyEntry(hdr, ".vti."))
}

func TestEntryKind_String(t *testing.T) {
	assert.Equal(t, "boundary", EntryBoundary.String())
	assert.Equal(t, "frame", EntryFrame.String())
	assert.Equal(t, "ignored", EntryIgnored.String())
}
