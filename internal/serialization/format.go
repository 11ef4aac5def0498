package serialization

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Format constants.
const (
	FormatName    = "ttcore"
	FormatVersion = 1
	DTypeFloat64  = "F64" // the only dtype written or accepted
	HeaderAlign   = 8     // header is space-padded to this many bytes
	float64Size   = 8
)

// Reserved metadata keys.
const (
	MetaFormat   = "format"
	MetaVersion  = "format_version"
	MetaDim      = "dim"
	MetaChecksum = "sha256"
)

// Entry name prefixes.
const (
	corePrefix   = "core."
	factorPrefix = "factor."
)

// TensorMeta describes one entry of the data section.
type TensorMeta struct {
	Name   string // Entry name (e.g., "core.0", "factor.2")
	DType  string // Data type, always "F64" for valid files
	Shape  []int  // Entry shape
	Offset int64  // Offset in the data section (bytes from start of tensor data)
	Size   int64  // Size in bytes
}

// Header is the parsed SafeTensors header.
type Header struct {
	Metadata map[string]string
	Tensors  []TensorMeta
}

// safeTensorInfo is the on-disk description of an entry.
type safeTensorInfo struct {
	DType       string   `json:"dtype"`
	Shape       []int    `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"` // [start, end)
}

// UnmarshalJSON implements custom JSON unmarshaling: SafeTensors headers
// mix the __metadata__ object with one object per entry at the top level.
func (h *Header) UnmarshalJSON(data []byte) error {
	var rawMap map[string]json.RawMessage
	if err := json.Unmarshal(data, &rawMap); err != nil {
		return err
	}

	if metadataRaw, ok := rawMap["__metadata__"]; ok {
		if len(metadataRaw) > MaxMetadataSize {
			return &ValidationError{
				Type:    "metadata_too_large",
				Details: fmt.Sprintf("%d bytes, max %d", len(metadataRaw), MaxMetadataSize),
				Err:     ErrInvalidMetadataSize,
			}
		}
		if err := json.Unmarshal(metadataRaw, &h.Metadata); err != nil {
			return fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	h.Tensors = make([]TensorMeta, 0, len(rawMap))
	for key, value := range rawMap {
		if key == "__metadata__" {
			continue
		}
		var info safeTensorInfo
		if err := json.Unmarshal(value, &info); err != nil {
			return fmt.Errorf("failed to unmarshal tensor %s: %w", key, err)
		}
		h.Tensors = append(h.Tensors, TensorMeta{
			Name:   key,
			DType:  info.DType,
			Shape:  info.Shape,
			Offset: info.DataOffsets[0],
			Size:   info.DataOffsets[1] - info.DataOffsets[0],
		})
	}
	return nil
}

// MarshalJSON writes the header in SafeTensors layout. encoding/json sorts
// map keys, so the output is deterministic.
func (h *Header) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(h.Tensors)+1)
	if len(h.Metadata) > 0 {
		out["__metadata__"] = h.Metadata
	}
	for _, t := range h.Tensors {
		out[t.Name] = safeTensorInfo{
			DType:       t.DType,
			Shape:       t.Shape,
			DataOffsets: [2]int64{t.Offset, t.Offset + t.Size},
		}
	}
	return json.Marshal(out)
}

func coreName(i int) string   { return corePrefix + strconv.Itoa(i) }
func factorName(i int) string { return factorPrefix + strconv.Itoa(i) }

// parseName splits an entry name into its kind and dimension index.
func parseName(name string) (factor bool, index int, err error) {
	var digits string
	switch {
	case strings.HasPrefix(name, corePrefix):
		digits = name[len(corePrefix):]
	case strings.HasPrefix(name, factorPrefix):
		factor, digits = true, name[len(factorPrefix):]
	default:
		return false, 0, &ValidationError{Type: "invalid_name", Tensor: name, Details: "want core.<i> or factor.<i>", Err: ErrInvalidTensorName}
	}
	index, err = strconv.Atoi(digits)
	if err != nil || index < 0 || strconv.Itoa(index) != digits {
		return false, 0, &ValidationError{Type: "invalid_name", Tensor: name, Details: "index is not a canonical non-negative integer", Err: ErrInvalidTensorName}
	}
	return factor, index, nil
}
