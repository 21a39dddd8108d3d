// Writes a Frame back out as an ascii VTK XML ImageData document.
// Round-trip partner for Decode; also handy for exporting individual
// frames recovered from an HDF5 dataset.

package vti

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// Encode writes frame to w as an uncompressed ascii .vti document.
func Encode(w io.Writer, frame *Frame) error {
	bw := bufio.NewWriter(w)

	ext := frame.Extent
	fmt.Fprintf(bw, "<?xml version=\"1.0\"?>\n")
	fmt.Fprintf(bw, "<VTKFile type=\"ImageData\" version=\"1.0\" byte_order=\"LittleEndian\" header_type=\"UInt32\">\n")
	fmt.Fprintf(bw, "  <ImageData WholeExtent=\"%d %d %d %d %d %d\" Origin=\"%s %s %s\" Spacing=\"%s %s %s\">\n",
		ext[0], ext[1], ext[2], ext[3], ext[4], ext[5],
		ftoa(frame.Origin[0]), ftoa(frame.Origin[1]), ftoa(frame.Origin[2]),
		ftoa(frame.Spacing[0]), ftoa(frame.Spacing[1]), ftoa(frame.Spacing[2]))
	fmt.Fprintf(bw, "    <Piece Extent=\"%d %d %d %d %d %d\">\n",
		ext[0], ext[1], ext[2], ext[3], ext[4], ext[5])

	writeField := func(tag string, arrays []DataArray) {
		if len(arrays) == 0 {
			fmt.Fprintf(bw, "      <%s/>\n", tag)
			return
		}
		fmt.Fprintf(bw, "      <%s Scalars=%q>\n", tag, arrays[0].Name)
		for _, arr := range arrays {
			typ := arr.SourceType
			if typ == "" {
				typ = "Float64"
			}
			fmt.Fprintf(bw, "        <DataArray type=%q Name=%q NumberOfComponents=\"%d\" format=\"ascii\">\n",
				typ, arr.Name, max(arr.NumComponents, 1))
			fmt.Fprintf(bw, "          ")
			for i, v := range arr.Values {
				if i > 0 {
					fmt.Fprintf(bw, " ")
				}
				fmt.Fprintf(bw, "%s", ftoa(v))
			}
			fmt.Fprintf(bw, "\n        </DataArray>\n")
		}
		fmt.Fprintf(bw, "      </%s>\n", tag)
	}

	writeField("CellData", frame.CellArrays)
	writeField("PointData", frame.PointArrays)

	fmt.Fprintf(bw, "    </Piece>\n")
	fmt.Fprintf(bw, "  </ImageData>\n")
	fmt.Fprintf(bw, "</VTKFile>\n")
	return bw.Flush()
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
