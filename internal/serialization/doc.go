// Package serialization stores TT/Tucker tensors in SafeTensors files.
//
// A tensor with N dimensions is written as one F64 entry per core and per
// Tucker factor:
//
//	Layout:
//	  [8 bytes: header size (uint64 LE)]
//	  [header: JSON, space-padded to a multiple of 8 bytes]
//	  [data: little-endian float64 values, entries in name order]
//
//	Entries:
//	  core.<i>    shape (r[i-1], n[i], r[i])
//	  factor.<i>  shape (shape[i], n[i]), present only where a factor exists
//
// The header's __metadata__ map carries the format name, its version, the
// number of dimensions and the hex SHA-256 of the data section. Caller
// metadata is stored alongside; reserved keys are overwritten.
//
// Loading validates the header size, entry names, dtypes, offsets (no
// overlap, nothing past the data section) and the checksum before the chain
// is rebuilt, so a truncated or tampered file is rejected rather than
// decoded.
//
// Example usage:
//
//	if err := serialization.Save("model.safetensors", t, map[string]string{"source": "fit"}); err != nil {
//	    log.Fatal(err)
//	}
//
//	t, meta, err := serialization.Load("model.safetensors")
//	if err != nil {
//	    log.Fatal(err)
//	}
package serialization
