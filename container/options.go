package container

import (
	"crypto/cipher"
	"encoding/binary"
	"io"
	"log/slog"
)

// Options configures [Decode] and [Encode]. The zero value, or a nil pointer,
// uses the firmware's DES key, MD5, and a big-endian size field.
type Options struct {
	// Key is the 8-byte DES key. Ignored if Block is set.
	Key []byte
	// Block overrides the block cipher entirely.
	Block cipher.Block
	// Digest overrides the digest function.
	Digest DigestFunc
	// ByteOrder is the size field byte order to write when encoding, and to
	// try first when decoding.
	ByteOrder binary.ByteOrder
	// Logger receives progress messages. nil discards them.
	Logger *slog.Logger
}

// DefaultOptions returns options matching the router firmware.
func DefaultOptions() *Options {
	return &Options{
		Key:       DefaultKey[:],
		Digest:    MD5,
		ByteOrder: binary.BigEndian,
	}
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func (opts *Options) withDefaults() Options {
	resolved := Options{}
	if opts != nil {
		resolved = *opts
	}
	if resolved.Key == nil {
		resolved.Key = DefaultKey[:]
	}
	if resolved.Digest == nil {
		resolved.Digest = MD5
	}
	if resolved.ByteOrder == nil {
		resolved.ByteOrder = binary.BigEndian
	}
	if resolved.Logger == nil {
		resolved.Logger = discardLogger
	}
	return resolved
}

func (opts *Options) cipher() (cipher.Block, error) {
	if opts.Block != nil {
		return opts.Block, nil
	}
	return NewCipher(opts.Key)
}
