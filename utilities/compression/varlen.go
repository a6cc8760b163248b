package compression

import (
	"fmt"
	"math/bits"

	"github.com/dargueta/tpconf/errors"
)

// writeVarLen encodes a value >= 2 on the flag channel: every bit below the
// (implicit) leading one, most significant first, each followed by a
// continuation flag that is 0 only after the last bit.
func writeVarLen(w *bitWriter, value uint32) error {
	if value < minVarLenValue {
		msg := fmt.Sprintf("can't encode %d, minimum is %d", value, minVarLenValue)
		return errors.ErrInternal.WithMessage(msg)
	}

	top := bits.Len32(value) - 1
	for i := top - 1; i >= 0; i-- {
		if err := w.WriteBit(value&(1<<uint(i)) != 0); err != nil {
			return err
		}
		if err := w.WriteBit(i > 0); err != nil {
			return err
		}
	}
	return nil
}

// readVarLen decodes a value written by writeVarLen. The result is always >= 2.
func readVarLen(r *bitReader) (uint32, error) {
	value := uint32(1)
	for n := 0; ; n++ {
		if n == maxVarLenBits {
			return 0, errors.ErrDecodeInconsistency.WithMessage(
				fmt.Sprintf("variable-length value longer than %d bits", maxVarLenBits))
		}

		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		value <<= 1
		if bit {
			value |= 1
		}

		more, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		if !more {
			return value, nil
		}
	}
}
