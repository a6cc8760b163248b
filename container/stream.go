package container

import (
	"fmt"
	"io"

	"github.com/dargueta/tpconf/errors"
)

// ReadLimited reads all of `r`, refusing inputs larger than [MaxContainerSize].
// Neither a container nor the markup that fits in one can be bigger.
func ReadLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxContainerSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxContainerSize {
		msg := fmt.Sprintf("input is larger than %d bytes", MaxContainerSize)
		return nil, errors.ErrFormat.WithMessage(msg)
	}
	return data, nil
}

// DecodeFrom reads a container from `r` and decodes it with [Decode].
func DecodeFrom(r io.Reader, opts *Options) (*Result, error) {
	container, err := ReadLimited(r)
	if err != nil {
		return nil, err
	}
	return Decode(container, opts)
}

// EncodeTo reads markup from `r`, encodes it with [Encode], and writes the
// container to `w`. The returned int64 is the number of bytes written, only
// valid if no error occurred.
func EncodeTo(w io.Writer, r io.Reader, variant Variant, opts *Options) (int64, error) {
	markup, err := ReadLimited(r)
	if err != nil {
		return 0, err
	}

	container, err := Encode(markup, variant, opts)
	if err != nil {
		return 0, err
	}

	n, err := w.Write(container)
	return int64(n), err
}
