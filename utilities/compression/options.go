package compression

import "encoding/binary"

// CompressOptions configures compression.
type CompressOptions struct {
	// ByteOrder is used for the 4-byte size field. Routers disagree about this;
	// nil means big-endian.
	ByteOrder binary.ByteOrder
}

// DefaultCompressOptions returns options writing a big-endian size field.
func DefaultCompressOptions() *CompressOptions {
	return &CompressOptions{ByteOrder: binary.BigEndian}
}

func (opts *CompressOptions) byteOrder() binary.ByteOrder {
	if opts == nil || opts.ByteOrder == nil {
		return binary.BigEndian
	}
	return opts.ByteOrder
}
