package compression

import (
	"fmt"

	"github.com/dargueta/tpconf/errors"
)

// copyBackRef copies `length` bytes from `dist` bytes behind `outputPos` to
// `outputPos`. It always goes one byte at a time: when dist < length the
// source runs into bytes written by this same copy, which is how the format
// encodes runs. A bulk copy would produce different output.
func copyBackRef(dst []byte, outputPos, dist, length int) error {
	mPos := outputPos - dist
	if mPos < 0 {
		msg := fmt.Sprintf(
			"back-reference at output offset %d reaches %d bytes back", outputPos, dist)
		return errors.ErrDecodeInconsistency.WithMessage(msg)
	}

	if outputPos+length > len(dst) {
		msg := fmt.Sprintf(
			"back-reference of %d bytes at output offset %d overruns declared size %d",
			length,
			outputPos,
			len(dst),
		)
		return errors.ErrDecodeInconsistency.WithMessage(msg)
	}

	for i := 0; i < length; i++ {
		dst[outputPos+i] = dst[mPos+i]
	}
	return nil
}
