package container

import (
	"encoding/binary"
	"fmt"

	"github.com/dargueta/tpconf/errors"
	"github.com/dargueta/tpconf/utilities/compression"
)

// Result is what [Decode] recovered from a container.
type Result struct {
	// Markup is the configuration document. For compressed variants it ends
	// with the NUL byte the compressor appended.
	Markup  []byte
	Variant Variant
	// ByteOrder is the size field byte order actually used. Nil for Plain.
	ByteOrder binary.ByteOrder
	// ByteOrderSwapped is true if ByteOrder differs from the one assumed in
	// the options.
	ByteOrderSwapped bool
}

// Decode decrypts a container, works out its variant from the marker bytes,
// verifies its digest, and decompresses it if needed.
//
// Faults are reported as:
//
//   - [errors.ErrFormat]: wrong length, unrecognized marker (often a wrong key),
//     or a size field that's out of range in both byte orders;
//   - [errors.ErrIntegrity]: the digest doesn't match, i.e. the data is corrupt.
//     For [CompressedVariantB] this also covers a compressed stream that can't
//     be decoded, since the digest is inside it;
//   - [errors.ErrDecodeInconsistency]: the compressed stream of a
//     [CompressedVariantA] container, which already passed its digest check,
//     doesn't decode to its declared size.
func Decode(container []byte, opts *Options) (*Result, error) {
	o := opts.withDefaults()

	if len(container) == 0 || len(container) > MaxContainerSize {
		msg := fmt.Sprintf(
			"container is %d bytes, must be in [1, %d]", len(container), MaxContainerSize)
		return nil, errors.ErrFormat.WithMessage(msg)
	}

	block, err := o.cipher()
	if err != nil {
		return nil, err
	}

	decrypted, err := DecryptECB(block, container)
	if err != nil {
		return nil, err
	}
	o.Logger.Debug("decrypted container", "bytes", len(decrypted))

	variant, ok := DetectVariant(decrypted)
	if !ok {
		return nil, errors.ErrFormat.WithMessage(
			"no known marker after decryption; wrong key or not a config backup")
	}
	profile := variant.Profile()
	o.Logger.Info(
		"detected container variant", "variant", variant.String(), "name", profile.Name)

	result := &Result{Variant: variant}
	switch {
	case !profile.Compressed:
		err = decodePlain(&o, decrypted, result)
	case profile.DigestEmbedded:
		err = decodeCompressedB(&o, decrypted, result)
	default:
		err = decodeCompressedA(&o, decrypted, result)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func decodePlain(o *Options, decrypted []byte, result *Result) error {
	n, err := verify(o, decrypted, Plain)
	if err != nil {
		return err
	}

	// Return exactly what the digest covered; anything after it is padding.
	result.Markup = decrypted[DigestLength : DigestLength+n]
	return nil
}

func decodeCompressedA(o *Options, decrypted []byte, result *Result) error {
	if _, err := verify(o, decrypted, CompressedVariantA); err != nil {
		return err
	}

	payload := decrypted[DigestLength:]
	markup, err := decompress(o, payload, result)
	if err != nil {
		return err
	}
	result.Markup = markup
	return nil
}

func decodeCompressedB(o *Options, decrypted []byte, result *Result) error {
	raw, err := decompress(o, decrypted, result)
	if err != nil {
		if errors.KindOf(err) == errors.KindDecodeInconsistency {
			return errors.ErrIntegrity.WithMessage(
				"can't check the digest of a corrupt compressed stream").Wrap(err)
		}
		return err
	}

	if _, err = verify(o, raw, CompressedVariantB); err != nil {
		return err
	}
	result.Markup = raw[DigestLength:]
	return nil
}

func verify(o *Options, buf []byte, variant Variant) (int, error) {
	n, ok := VerifyDigest(buf, o.Digest)
	if !ok {
		msg := fmt.Sprintf(
			"%s container: digest matches none of the padding lengths tried", variant)
		return 0, errors.ErrIntegrity.WithMessage(msg)
	}
	o.Logger.Debug("digest verified", "payload_bytes", n)
	return n, nil
}

func decompress(o *Options, payload []byte, result *Result) ([]byte, error) {
	size, order, err := ResolveSize(payload, o.ByteOrder)
	if err != nil {
		return nil, err
	}

	result.ByteOrder = order
	result.ByteOrderSwapped = order != o.ByteOrder
	if result.ByteOrderSwapped {
		o.Logger.Warn(
			"wrong endianness, automatically switching",
			"assumed", o.ByteOrder.String(),
			"actual", order.String(),
		)
	}

	raw, err := compression.Decompress(payload, int(size))
	if err != nil {
		return nil, err
	}
	o.Logger.Debug("decompressed", "compressed_bytes", len(payload), "bytes", len(raw))
	return raw, nil
}

// Encode builds a container of the given variant from `markup`. The steps run
// in the reverse order of [Decode]:
//
//   - Plain: digest the markup, prefix it, pad to a cipher block, encrypt.
//   - CompressedVariantA: compress, digest the compressed stream, prefix, encrypt.
//   - CompressedVariantB: digest the markup, prefix, compress, encrypt.
//
// The markup must start with an XML declaration, otherwise the result would
// have no recognizable marker and couldn't be decoded again.
func Encode(markup []byte, variant Variant, opts *Options) ([]byte, error) {
	o := opts.withDefaults()

	if !variant.IsValid() {
		return nil, errors.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("unknown container variant %d", int(variant)))
	}

	block, err := o.cipher()
	if err != nil {
		return nil, err
	}

	profile := variant.Profile()
	var plain []byte
	switch {
	case !profile.Compressed:
		plain = encodePlain(&o, markup)
	case profile.DigestEmbedded:
		plain, err = encodeCompressedB(&o, markup)
	default:
		plain, err = encodeCompressedA(&o, markup)
	}
	if err != nil {
		return nil, err
	}

	if len(plain) > MaxContainerSize {
		msg := fmt.Sprintf(
			"container would be %d bytes, maximum is %d", len(plain), MaxContainerSize)
		return nil, errors.ErrOverrun.WithMessage(msg)
	}

	if detected, ok := DetectVariant(plain); !ok || detected != variant {
		msg := fmt.Sprintf(
			"markup doesn't produce a recognizable %s container; it must start with \"<?xml\"",
			variant,
		)
		return nil, errors.ErrInvalidArgument.WithMessage(msg)
	}

	o.Logger.Info(
		"encoding container",
		"variant", variant.String(),
		"name", profile.Name,
		"bytes", len(plain),
	)
	return EncryptECB(block, plain)
}

func encodePlain(o *Options, markup []byte) []byte {
	digest := o.Digest(markup)

	plain := make([]byte, compression.AlignToBlock(DigestLength+len(markup)))
	copy(plain, digest[:])
	copy(plain[DigestLength:], markup)
	return plain
}

func encodeCompressedA(o *Options, markup []byte) ([]byte, error) {
	used, compressed, err := compression.Compress(
		markup, &compression.CompressOptions{ByteOrder: o.ByteOrder})
	if err != nil {
		return nil, err
	}
	o.Logger.Debug("compressed", "bytes", len(markup), "compressed_bytes", used)

	digest := o.Digest(compressed[:used])
	return append(digest[:], compressed...), nil
}

func encodeCompressedB(o *Options, markup []byte) ([]byte, error) {
	digest := o.Digest(markup)
	signed := append(digest[:], markup...)

	used, compressed, err := compression.Compress(
		signed, &compression.CompressOptions{ByteOrder: o.ByteOrder})
	if err != nil {
		return nil, err
	}
	o.Logger.Debug("compressed", "bytes", len(signed), "compressed_bytes", used)
	return compressed, nil
}
