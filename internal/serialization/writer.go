package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/born-ml/ttcore/internal/tt"
)

// Writer writes tensors in SafeTensors format.
type Writer struct {
	file   *os.File
	closed bool
}

// NewWriter creates a new SafeTensors file writer.
func NewWriter(path string) (*Writer, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for saving
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return &Writer{file: file}, nil
}

// Save writes t to path. metadata is stored in the header next to the
// reserved keys (format, format_version, dim, sha256), which always win.
func Save(path string, t *tt.Tensor, metadata map[string]string) error {
	w, err := NewWriter(path)
	if err != nil {
		return err
	}
	if err := w.WriteTensor(t, metadata); err != nil {
		_ = w.Close() // Best effort close; the write error is more useful
		return err
	}
	return w.Close()
}

// WriteTensor writes t to the file.
func (w *Writer) WriteTensor(t *tt.Tensor, metadata map[string]string) error {
	if w.closed {
		return fmt.Errorf("writer is closed")
	}
	return Encode(w.file, t, metadata)
}

// Close closes the writer and the underlying file.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.file.Close()
}

type entry struct {
	shape  []int
	values []float64
}

// Encode writes t in SafeTensors layout to w.
//
// Format:
// [8 bytes: header_size (uint64 LE)]
// [header_size bytes: JSON header, space-padded]
// [tensor data: little-endian float64, entries sorted by name]
func Encode(w io.Writer, t *tt.Tensor, metadata map[string]string) error {
	entries := entriesOf(t)
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	meta := make(map[string]string, len(metadata)+4)
	for k, v := range metadata {
		meta[k] = v
	}
	meta[MetaFormat] = FormatName
	meta[MetaVersion] = strconv.Itoa(FormatVersion)
	meta[MetaDim] = strconv.Itoa(t.Dim())

	header := &Header{Metadata: meta, Tensors: make([]TensorMeta, 0, len(names))}
	var data []byte
	var offset int64
	for _, name := range names {
		e := entries[name]
		size := int64(len(e.values) * float64Size)
		header.Tensors = append(header.Tensors, TensorMeta{
			Name:   name,
			DType:  DTypeFloat64,
			Shape:  e.shape,
			Offset: offset,
			Size:   size,
		})
		data = appendFloat64s(data, e.values)
		offset += size
	}
	meta[MetaChecksum] = EncodeChecksum(ComputeChecksum(data))

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	if pad := len(headerJSON) % HeaderAlign; pad != 0 {
		headerJSON = append(headerJSON, bytes.Repeat([]byte{' '}, HeaderAlign-pad)...)
	}

	if err := binary.Write(w, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return fmt.Errorf("failed to write header size: %w", err)
	}
	if _, err := w.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write tensor data: %w", err)
	}
	return nil
}

// entriesOf collects the cores and factors of t under their entry names.
func entriesOf(t *tt.Tensor) map[string]entry {
	entries := make(map[string]entry, 2*t.Dim())
	for i, core := range t.Cores() {
		entries[coreName(i)] = entry{shape: core.Shape().Clone(), values: core.Data()}

		u, ok := t.Factor(i)
		if !ok {
			continue
		}
		rows, cols := u.Dims()
		values := make([]float64, 0, rows*cols)
		for r := 0; r < rows; r++ {
			values = append(values, u.RawRowView(r)...)
		}
		entries[factorName(i)] = entry{shape: []int{rows, cols}, values: values}
	}
	return entries
}

func appendFloat64s(b []byte, values []float64) []byte {
	for _, v := range values {
		b = binary.LittleEndian.AppendUint64(b, math.Float64bits(v))
	}
	return b
}
