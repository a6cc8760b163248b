package compression

import (
	"encoding/binary"
	"fmt"

	"github.com/dargueta/tpconf/errors"
)

type compressor struct {
	src  []byte
	out  *outputBuffer
	bits *bitWriter
	dict *dictionaryIndex
}

// Compress compresses `src` the way the router firmware does. opts may be nil
// (big-endian size field).
//
// The input is terminated with a NUL byte first unless it already ends with
// one; the size field and the decompressed output include that byte.
//
// It returns the number of meaningful bytes in the compressed stream and the
// stream itself, zero-padded to a multiple of [BlockAlignment]. The padding is
// not part of what the container digest covers.
func Compress(src []byte, opts *CompressOptions) (int, []byte, error) {
	raw := Terminate(src)
	if len(raw) > MaxRawSize {
		msg := fmt.Sprintf(
			"input is %d bytes, can't be larger than %d", len(raw), MaxRawSize)
		return 0, nil, errors.ErrInvalidArgument.WithMessage(msg)
	}

	c := compressor{
		src:  raw,
		out:  newOutputBuffer(MaxCompressedSize),
		dict: newDictionaryIndex(),
	}

	err := binary.Write(c.out, opts.byteOrder(), uint32(len(raw)))
	if err != nil {
		return 0, nil, err
	}

	// The first byte is stored bare, ahead of the first flag word.
	if err = c.out.WriteByte(raw[0]); err != nil {
		return 0, nil, err
	}

	c.bits, err = newBitWriter(c.out)
	if err != nil {
		return 0, nil, err
	}

	if err = c.run(); err != nil {
		return 0, nil, err
	}
	c.bits.Flush()

	used := c.out.pos
	padded := make([]byte, AlignToBlock(used))
	copy(padded, c.out.data[:used])
	return used, padded, nil
}

// Terminate returns `src` with a NUL byte appended, unless it already ends with
// one. The returned slice never aliases `src`.
func Terminate(src []byte) []byte {
	if len(src) > 0 && src[len(src)-1] == 0 {
		return append([]byte(nil), src...)
	}

	raw := make([]byte, len(src)+1)
	copy(raw, src)
	return raw
}

func (c *compressor) run() error {
	pos := 1
	indexed := 0
	remaining := len(c.src) - 1

	for remaining > minMatchLength {
		// Every position before the cursor goes into the dictionary, including
		// the ones a match just skipped over.
		for ; indexed < pos; indexed++ {
			c.dict.Insert(c.src, indexed)
		}

		candidate, ok := c.dict.Lookup(c.src, pos)
		if ok {
			length := c.matchLength(candidate, pos, remaining)
			if length >= minMatchLength || length == remaining {
				if err := c.emitMatch(pos-candidate-1, length); err != nil {
					return err
				}
				pos += length
				remaining -= length
				continue
			}
		}

		if err := c.emitLiteral(pos); err != nil {
			return err
		}
		pos++
		remaining--
	}

	// Too close to the end to hash a full window; the rest goes out as literals.
	for ; remaining > 0; remaining-- {
		if err := c.emitLiteral(pos); err != nil {
			return err
		}
		pos++
	}
	return nil
}

// matchLength counts how many bytes starting at `candidate` repeat at `pos`,
// up to `limit`.
func (c *compressor) matchLength(candidate, pos, limit int) int {
	length := 0
	for length < limit && c.src[candidate+length] == c.src[pos+length] {
		length++
	}
	return length
}

func (c *compressor) emitLiteral(pos int) error {
	if err := c.bits.WriteBit(false); err != nil {
		return err
	}
	return c.out.WriteByte(c.src[pos])
}

// emitMatch writes a back-reference. `distance` is already biased by one: zero
// means the byte immediately before the cursor.
func (c *compressor) emitMatch(distance, length int) error {
	if err := c.bits.WriteBit(true); err != nil {
		return err
	}
	if err := writeVarLen(c.bits, uint32(length-matchLengthBias)); err != nil {
		return err
	}
	if err := writeVarLen(c.bits, uint32(distance>>8)+minVarLenValue); err != nil {
		return err
	}
	return c.out.WriteByte(byte(distance))
}
