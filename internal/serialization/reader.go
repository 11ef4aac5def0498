package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ttcore/internal/tensor"
	"github.com/born-ml/ttcore/internal/tt"
)

// Reader reads tensors from SafeTensors files.
type Reader struct {
	file       *os.File
	header     Header
	byName     map[string]TensorMeta
	dataOffset int64 // Offset where tensor data starts
	dataSize   int64
	level      ValidationLevel
}

// NewReader opens path and parses and validates its header at the given
// level. The checksum is verified later, by Tensor.
func NewReader(path string, level ValidationLevel) (*Reader, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for loading
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	r, err := newReader(file, level)
	if err != nil {
		_ = file.Close() // Best effort close on error
		return nil, err
	}
	return r, nil
}

func newReader(file *os.File, level ValidationLevel) (*Reader, error) {
	var headerSize uint64
	if err := binary.Read(file, binary.LittleEndian, &headerSize); err != nil {
		return nil, fmt.Errorf("failed to read header size: %w", err)
	}
	if headerSize > MaxHeaderSize {
		return nil, &ValidationError{
			Type:    "header_too_large",
			Details: fmt.Sprintf("%d bytes, max %d", headerSize, MaxHeaderSize),
			Err:     ErrHeaderTooLarge,
		}
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(file, headerBytes); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	var header Header
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, fmt.Errorf("failed to parse header JSON: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	dataOffset := int64(8 + headerSize) //nolint:gosec // G115: bounded by MaxHeaderSize
	dataSize := info.Size() - dataOffset

	if err := ValidateHeader(&header, dataSize, level); err != nil {
		return nil, fmt.Errorf("invalid header: %w", err)
	}

	byName := make(map[string]TensorMeta, len(header.Tensors))
	for _, t := range header.Tensors {
		byName[t.Name] = t
	}
	return &Reader{
		file:       file,
		header:     header,
		byName:     byName,
		dataOffset: dataOffset,
		dataSize:   dataSize,
		level:      level,
	}, nil
}

// Load reads a tensor saved by Save, with strict validation. It returns the
// tensor and the header metadata.
func Load(path string) (*tt.Tensor, map[string]string, error) {
	r, err := NewReader(path, ValidationStrict)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = r.Close() // Read-only; nothing to flush
	}()

	t, err := r.Tensor()
	if err != nil {
		return nil, nil, err
	}
	return t, r.Metadata(), nil
}

// Close closes the file.
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// Metadata returns the metadata map from the header.
func (r *Reader) Metadata() map[string]string {
	return r.header.Metadata
}

// TensorNames returns the entry names in sorted order.
func (r *Reader) TensorNames() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TensorInfo returns information about a specific entry.
func (r *Reader) TensorInfo(name string) (*TensorMeta, error) {
	info, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingTensor, name)
	}
	return &info, nil
}

// ReadTensorData reads the raw bytes of an entry.
func (r *Reader) ReadTensorData(name string) ([]byte, error) {
	info, err := r.TensorInfo(name)
	if err != nil {
		return nil, err
	}
	if info.Offset < 0 || info.Size < 0 || info.Offset+info.Size > r.dataSize {
		return nil, fmt.Errorf("%w: tensor %s at [%d, %d) in %d bytes",
			ErrOutOfBounds, name, info.Offset, info.Offset+info.Size, r.dataSize)
	}

	data := make([]byte, info.Size)
	if _, err := r.file.ReadAt(data, r.dataOffset+info.Offset); err != nil {
		return nil, fmt.Errorf("failed to read tensor data: %w", err)
	}
	return data, nil
}

// ReadFloat64s decodes an entry as little-endian float64 values.
func (r *Reader) ReadFloat64s(name string) ([]float64, error) {
	data, err := r.ReadTensorData(name)
	if err != nil {
		return nil, err
	}
	if len(data)%float64Size != 0 {
		return nil, fmt.Errorf("%w: tensor %s has %d bytes", ErrSizeMismatch, name, len(data))
	}
	values := make([]float64, len(data)/float64Size)
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[i*float64Size:]))
	}
	return values, nil
}

// VerifyChecksum hashes the data section and compares it with the sha256
// metadata entry.
func (r *Reader) VerifyChecksum() error {
	stored, ok := r.header.Metadata[MetaChecksum]
	if !ok {
		return ErrMissingChecksum
	}
	want, err := DecodeChecksum(stored)
	if err != nil {
		return err
	}
	got, err := ComputeChecksumReader(io.NewSectionReader(r.file, r.dataOffset, r.dataSize))
	if err != nil {
		return fmt.Errorf("failed to hash tensor data: %w", err)
	}
	return ValidateChecksum(got, want)
}

// Tensor rebuilds the chain stored in the file.
func (r *Reader) Tensor() (*tt.Tensor, error) {
	dim, err := r.dim()
	if err != nil {
		return nil, err
	}
	if r.level == ValidationStrict {
		if err := r.VerifyChecksum(); err != nil {
			return nil, err
		}
	}

	cores := make([]*tensor.Array, dim)
	factors := make([]*mat.Dense, dim)
	for _, name := range r.TensorNames() {
		isFactor, i, err := parseName(name)
		if err != nil {
			return nil, err
		}
		if i >= dim {
			return nil, &ValidationError{
				Type:    "invalid_name",
				Tensor:  name,
				Details: fmt.Sprintf("index %d beyond %d dimensions", i, dim),
				Err:     ErrInvalidTensorName,
			}
		}

		values, err := r.ReadFloat64s(name)
		if err != nil {
			return nil, err
		}
		shape := r.byName[name].Shape
		if isFactor {
			if len(shape) != 2 || shape[0]*shape[1] != len(values) {
				return nil, fmt.Errorf("%s: %w: factor shape %v", name, tt.ErrShape, shape)
			}
			factors[i] = mat.NewDense(shape[0], shape[1], values)
			continue
		}
		core, err := tensor.FromData(tensor.Shape(shape), values)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %v", name, tt.ErrShape, err)
		}
		cores[i] = core
	}

	for i, c := range cores {
		if c == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingTensor, coreName(i))
		}
	}
	t, err := tt.New(cores, factors)
	if err != nil {
		return nil, fmt.Errorf("rebuild tensor: %w", err)
	}
	return t, nil
}

// dim returns the number of dimensions: the metadata value, checked against
// the format tags unless validation is off. Without metadata it is the
// number of core entries.
func (r *Reader) dim() (int, error) {
	meta := r.header.Metadata
	if r.level != ValidationNone {
		if f := meta[MetaFormat]; f != FormatName {
			return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
		}
		if v := meta[MetaVersion]; v != strconv.Itoa(FormatVersion) {
			return 0, fmt.Errorf("%w: %q", ErrUnsupportedVersion, v)
		}
	}

	if s, ok := meta[MetaDim]; ok {
		dim, err := strconv.Atoi(s)
		if err != nil || dim < 1 || dim > MaxTensorCount {
			return 0, fmt.Errorf("%w: invalid dim %q", ErrUnsupportedFormat, s)
		}
		return dim, nil
	}
	dim := 0
	for name := range r.byName {
		if isFactor, _, err := parseName(name); err == nil && !isFactor {
			dim++
		}
	}
	if dim == 0 {
		return 0, fmt.Errorf("%w: %s", ErrMissingTensor, coreName(0))
	}
	return dim, nil
}
