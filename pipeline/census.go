// Experiment census: counts the experiment directories in an archive
// without decoding any frame data. Backs the `count` command.

package pipeline

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/sirupsen/logrus"
)

// Census streams the archive and returns the names of its experiment
// directories in stream order. Same salvage behavior as Ingest: a stream
// that dies mid-walk yields the names seen so far.
func Census(tarPath string) ([]string, error) {
	f, err := os.Open(tarPath)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("reading gzip header: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	var names []string
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			logrus.Warnf("Census of %s stopped early: %v", tarPath, err)
			break
		}
		if hdr.Typeflag == tar.TypeDir {
			names = append(names, strings.TrimSuffix(hdr.Name, "/"))
		}
	}
	return names, nil
}
