package compression

import (
	"fmt"

	"github.com/dargueta/tpconf/errors"
)

// Decompress decodes the compressed stream in `src` into exactly `outLen`
// bytes. `src` starts with the 4-byte size field, which is skipped: its byte
// order is ambiguous, so callers resolve it themselves and pass the result in
// as `outLen`.
//
// Up to [BlockAlignment]-1 bytes of padding may follow the last item. More than
// that, running out of input before `outLen` bytes are produced, or a
// back-reference landing outside the output, fails with
// [errors.ErrDecodeInconsistency].
func Decompress(src []byte, outLen int) ([]byte, error) {
	if outLen <= 0 || outLen > MaxRawSize {
		msg := fmt.Sprintf("declared size %d not in range [1, %d]", outLen, MaxRawSize)
		return nil, errors.ErrDecodeInconsistency.WithMessage(msg)
	}

	in := &inputBuffer{data: src, pos: sizeFieldLength}
	if len(src) < sizeFieldLength {
		return nil, in.overrun(sizeFieldLength)
	}

	dst := make([]byte, outLen)
	first, err := in.readByte()
	if err != nil {
		return nil, err
	}
	dst[0] = first
	outPos := 1

	flags := newBitReader(in)
	for outPos < outLen {
		isMatch, err := flags.ReadBit()
		if err != nil {
			return nil, err
		}

		if !isMatch {
			dst[outPos], err = in.readByte()
			if err != nil {
				return nil, err
			}
			outPos++
			continue
		}

		length, dist, err := readBackRef(in, flags)
		if err != nil {
			return nil, err
		}
		if err = copyBackRef(dst, outPos, dist, length); err != nil {
			return nil, err
		}
		outPos += length
	}

	if leftover := len(src) - in.pos; leftover >= BlockAlignment {
		msg := fmt.Sprintf(
			"%d bytes left over after producing the declared %d bytes", leftover, outLen)
		return nil, errors.ErrDecodeInconsistency.WithMessage(msg)
	}
	return dst, nil
}

// readBackRef reads the length and distance of a back-reference whose flag bit
// has already been consumed. The distance returned is unbiased, i.e. 1 means
// the previous byte.
func readBackRef(in *inputBuffer, flags *bitReader) (length, dist int, err error) {
	lengthCode, err := readVarLen(flags)
	if err != nil {
		return 0, 0, err
	}

	highCode, err := readVarLen(flags)
	if err != nil {
		return 0, 0, err
	}

	low, err := in.readByte()
	if err != nil {
		return 0, 0, err
	}

	length = int(lengthCode) + matchLengthBias
	dist = (int(highCode-minVarLenValue)<<8 | int(low)) + 1
	return length, dist, nil
}
