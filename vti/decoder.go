// VTK XML ImageData (.vti) reader.
//
// The subset implemented here covers what SPPARKS emits and what Encode
// writes back: serial ImageData files with cell/point scalar arrays in
// ascii, inline-binary (base64) or appended (base64) form, optionally
// block-compressed with vtkZLibDataCompressor.

package vti

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zlib"
)

const zlibCompressor = "vtkZLibDataCompressor"

// Decoder turns raw .vti bytes into a Frame. The zero value is ready to use.
type Decoder struct{}

// NewDecoder returns a Decoder for VTK XML ImageData payloads.
func NewDecoder() *Decoder { return &Decoder{} }

// Decode reads one VTI document from r.
func (d *Decoder) Decode(r io.Reader) (*Frame, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading vti payload: %w", err)
	}
	return decodeBytes(raw)
}

// xml document shape

type xmlVTKFile struct {
	XMLName      xml.Name         `xml:"VTKFile"`
	Type         string           `xml:"type,attr"`
	ByteOrder    string           `xml:"byte_order,attr"`
	HeaderType   string           `xml:"header_type,attr"`
	Compressor   string           `xml:"compressor,attr"`
	ImageData    *xmlImageData    `xml:"ImageData"`
	AppendedData *xmlAppendedData `xml:"AppendedData"`
}

type xmlImageData struct {
	WholeExtent string     `xml:"WholeExtent,attr"`
	Origin      string     `xml:"Origin,attr"`
	Spacing     string     `xml:"Spacing,attr"`
	Pieces      []xmlPiece `xml:"Piece"`
}

type xmlPiece struct {
	Extent    string        `xml:"Extent,attr"`
	CellData  *xmlFieldData `xml:"CellData"`
	PointData *xmlFieldData `xml:"PointData"`
}

type xmlFieldData struct {
	Scalars string         `xml:"Scalars,attr"`
	Arrays  []xmlDataArray `xml:"DataArray"`
}

type xmlDataArray struct {
	Type          string `xml:"type,attr"`
	Name          string `xml:"Name,attr"`
	NumComponents string `xml:"NumberOfComponents,attr"`
	Format        string `xml:"format,attr"`
	Offset        string `xml:"offset,attr"`
	Content       string `xml:",chardata"`
}

type xmlAppendedData struct {
	Encoding string `xml:"encoding,attr"`
	Content  string `xml:",chardata"`
}

func decodeBytes(raw []byte) (*Frame, error) {
	var doc xmlVTKFile
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing vti xml: %w", err)
	}
	if doc.Type != "" && doc.Type != "ImageData" {
		return nil, fmt.Errorf("unsupported VTKFile type %q", doc.Type)
	}
	if doc.ImageData == nil || len(doc.ImageData.Pieces) == 0 {
		return nil, fmt.Errorf("vti document has no ImageData piece")
	}

	order, err := byteOrder(doc.ByteOrder)
	if err != nil {
		return nil, err
	}
	headerSize := 4 // VTK default header_type is UInt32
	switch doc.HeaderType {
	case "", "UInt32":
	case "UInt64":
		headerSize = 8
	default:
		return nil, fmt.Errorf("unsupported header_type %q", doc.HeaderType)
	}
	if doc.Compressor != "" && doc.Compressor != zlibCompressor {
		return nil, fmt.Errorf("unsupported compressor %q", doc.Compressor)
	}

	var appended []byte
	if doc.AppendedData != nil {
		appended, err = decodeAppended(doc.AppendedData)
		if err != nil {
			return nil, err
		}
	}

	frame := &Frame{}
	extent := doc.ImageData.WholeExtent
	piece := doc.ImageData.Pieces[0]
	if piece.Extent != "" {
		extent = piece.Extent
	}
	if err := parseInts(extent, frame.Extent[:]); err != nil {
		return nil, fmt.Errorf("parsing extent %q: %w", extent, err)
	}
	if doc.ImageData.Origin != "" {
		if err := parseFloats(doc.ImageData.Origin, frame.Origin[:]); err != nil {
			return nil, fmt.Errorf("parsing origin: %w", err)
		}
	}
	if doc.ImageData.Spacing != "" {
		if err := parseFloats(doc.ImageData.Spacing, frame.Spacing[:]); err != nil {
			return nil, fmt.Errorf("parsing spacing: %w", err)
		}
	} else {
		frame.Spacing = [3]float64{1, 1, 1}
	}

	env := &payloadEnv{
		order:      order,
		headerSize: headerSize,
		compressed: doc.Compressor == zlibCompressor,
		appended:   appended,
	}
	if piece.CellData != nil {
		frame.CellArrays, err = decodeArrays(piece.CellData.Arrays, env)
		if err != nil {
			return nil, fmt.Errorf("cell data: %w", err)
		}
	}
	if piece.PointData != nil {
		frame.PointArrays, err = decodeArrays(piece.PointData.Arrays, env)
		if err != nil {
			return nil, fmt.Errorf("point data: %w", err)
		}
	}
	if len(frame.CellArrays) == 0 && len(frame.PointArrays) == 0 {
		return nil, fmt.Errorf("vti document carries no data arrays")
	}
	return frame, nil
}

// payloadEnv carries the file-level knobs every DataArray payload needs.
type payloadEnv struct {
	order      binary.ByteOrder
	headerSize int
	compressed bool
	appended   []byte
}

func decodeArrays(arrays []xmlDataArray, env *payloadEnv) ([]DataArray, error) {
	out := make([]DataArray, 0, len(arrays))
	for _, xa := range arrays {
		values, err := decodeArrayValues(xa, env)
		if err != nil {
			return nil, fmt.Errorf("array %q: %w", xa.Name, err)
		}
		comps := 1
		if xa.NumComponents != "" {
			comps, err = strconv.Atoi(xa.NumComponents)
			if err != nil {
				return nil, fmt.Errorf("array %q: bad NumberOfComponents: %w", xa.Name, err)
			}
		}
		out = append(out, DataArray{
			Name:          xa.Name,
			SourceType:    xa.Type,
			NumComponents: comps,
			Values:        values,
		})
	}
	return out, nil
}

func decodeArrayValues(xa xmlDataArray, env *payloadEnv) ([]float64, error) {
	switch xa.Format {
	case "", "ascii":
		return parseASCIIValues(xa.Content, xa.Type)

	case "binary":
		// Inline payload: one base64 stream holding header + data.
		blob, err := base64.StdEncoding.DecodeString(stripSpace(xa.Content))
		if err != nil {
			return nil, fmt.Errorf("decoding inline base64: %w", err)
		}
		data, err := unpackPayload(blob, env)
		if err != nil {
			return nil, err
		}
		return bytesToValues(data, xa.Type, env.order)

	case "appended":
		if env.appended == nil {
			return nil, fmt.Errorf("appended format but no AppendedData section")
		}
		off, err := strconv.Atoi(strings.TrimSpace(xa.Offset))
		if err != nil {
			return nil, fmt.Errorf("bad appended offset %q: %w", xa.Offset, err)
		}
		if off < 0 || off >= len(env.appended) {
			return nil, fmt.Errorf("appended offset %d out of range", off)
		}
		data, err := unpackPayload(env.appended[off:], env)
		if err != nil {
			return nil, err
		}
		return bytesToValues(data, xa.Type, env.order)

	default:
		return nil, fmt.Errorf("unsupported DataArray format %q", xa.Format)
	}
}

func decodeAppended(ad *xmlAppendedData) ([]byte, error) {
	content := stripSpace(ad.Content)
	idx := strings.IndexByte(content, '_')
	if idx < 0 {
		return nil, fmt.Errorf("AppendedData missing leading underscore")
	}
	content = content[idx+1:]
	switch ad.Encoding {
	case "", "base64":
		blob, err := base64.StdEncoding.DecodeString(content)
		if err != nil {
			return nil, fmt.Errorf("decoding AppendedData base64: %w", err)
		}
		return blob, nil
	default:
		return nil, fmt.Errorf("unsupported AppendedData encoding %q", ad.Encoding)
	}
}

// unpackPayload strips the VTK binary header from blob and returns the raw
// value bytes, inflating zlib blocks when the file declares a compressor.
func unpackPayload(blob []byte, env *payloadEnv) ([]byte, error) {
	readWord := func(b []byte) (uint64, error) {
		if len(b) < env.headerSize {
			return 0, io.ErrUnexpectedEOF
		}
		if env.headerSize == 4 {
			return uint64(env.order.Uint32(b)), nil
		}
		return env.order.Uint64(b), nil
	}

	if !env.compressed {
		n, err := readWord(blob)
		if err != nil {
			return nil, fmt.Errorf("reading payload header: %w", err)
		}
		rest := blob[env.headerSize:]
		if uint64(len(rest)) < n {
			return nil, fmt.Errorf("payload truncated: header says %d bytes, have %d", n, len(rest))
		}
		return rest[:n], nil
	}

	// Compressed header: block count, block size, last block size,
	// then the compressed size of every block.
	if len(blob) < 3*env.headerSize {
		return nil, fmt.Errorf("compressed payload header truncated")
	}
	numBlocks, _ := readWord(blob)
	if numBlocks == 0 {
		return nil, nil
	}
	need := (3 + int(numBlocks)) * env.headerSize
	if len(blob) < need {
		return nil, fmt.Errorf("compressed payload header truncated")
	}
	sizes := make([]int, numBlocks)
	for i := range sizes {
		w, _ := readWord(blob[(3+i)*env.headerSize:])
		sizes[i] = int(w)
	}

	var out bytes.Buffer
	pos := need
	for i, sz := range sizes {
		if pos+sz > len(blob) {
			return nil, fmt.Errorf("compressed block %d truncated", i)
		}
		zr, err := zlib.NewReader(bytes.NewReader(blob[pos : pos+sz]))
		if err != nil {
			return nil, fmt.Errorf("opening zlib block %d: %w", i, err)
		}
		if _, err := io.Copy(&out, zr); err != nil {
			zr.Close()
			return nil, fmt.Errorf("inflating block %d: %w", i, err)
		}
		zr.Close()
		pos += sz
	}
	return out.Bytes(), nil
}

func parseASCIIValues(content, typ string) ([]float64, error) {
	fields := strings.Fields(content)
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("value %d (%q) of %s array: %w", i, f, typ, err)
		}
		values[i] = v
	}
	return values, nil
}

func bytesToValues(data []byte, typ string, order binary.ByteOrder) ([]float64, error) {
	width, err := typeWidth(typ)
	if err != nil {
		return nil, err
	}
	if len(data)%width != 0 {
		return nil, fmt.Errorf("%s payload length %d not a multiple of %d", typ, len(data), width)
	}
	n := len(data) / width
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		b := data[i*width:]
		switch typ {
		case "UInt8":
			values[i] = float64(b[0])
		case "Int32":
			values[i] = float64(int32(order.Uint32(b)))
		case "Int64":
			values[i] = float64(int64(order.Uint64(b)))
		case "Float32":
			values[i] = float64(math.Float32frombits(order.Uint32(b)))
		case "Float64":
			values[i] = math.Float64frombits(order.Uint64(b))
		}
	}
	return values, nil
}

func typeWidth(typ string) (int, error) {
	switch typ {
	case "UInt8":
		return 1, nil
	case "Int32", "Float32":
		return 4, nil
	case "Int64", "Float64":
		return 8, nil
	default:
		return 0, fmt.Errorf("unsupported DataArray type %q", typ)
	}
}

func byteOrder(s string) (binary.ByteOrder, error) {
	switch s {
	case "", "LittleEndian":
		return binary.LittleEndian, nil
	case "BigEndian":
		return binary.BigEndian, nil
	default:
		return nil, fmt.Errorf("unsupported byte_order %q", s)
	}
}

func parseInts(s string, dst []int) error {
	fields := strings.Fields(s)
	if len(fields) != len(dst) {
		return fmt.Errorf("expected %d fields, got %d", len(dst), len(fields))
	}
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}

func parseFloats(s string, dst []float64) error {
	fields := strings.Fields(s)
	if len(fields) != len(dst) {
		return fmt.Errorf("expected %d fields, got %d", len(dst), len(fields))
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
}
