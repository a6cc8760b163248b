package compression

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/dargueta/tpconf/errors"
	"github.com/noxer/bytewriter"
)

// outputBuffer is the compressor's fixed-capacity destination. Bytes are
// appended in order through a bytewriter; flag words are reserved as they're
// needed and patched in place once their 16 bits are known.
type outputBuffer struct {
	data   []byte
	writer io.Writer
	pos    int
}

func newOutputBuffer(capacity int) *outputBuffer {
	data := make([]byte, capacity)
	return &outputBuffer{
		data:   data,
		writer: bytewriter.New(data),
	}
}

// Write implements [io.Writer]. Running out of room is reported as
// [errors.ErrOverrun]; the firmware has no way to store a larger stream.
func (out *outputBuffer) Write(p []byte) (int, error) {
	n, err := out.writer.Write(p)
	out.pos += n
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		msg := fmt.Sprintf(
			"compressed data doesn't fit in %d bytes (wrote %d of %d at offset %d)",
			len(out.data),
			n,
			len(p),
			out.pos-n,
		)
		return n, errors.ErrOverrun.WithMessage(msg).Wrap(err)
	}
	return n, nil
}

func (out *outputBuffer) WriteByte(b byte) error {
	_, err := out.Write([]byte{b})
	return err
}

// reserveWord skips over two bytes for a flag word and returns their offset.
func (out *outputBuffer) reserveWord() (int, error) {
	at := out.pos
	_, err := out.Write([]byte{0, 0})
	return at, err
}

// patchWord stores a flag word at an offset previously returned by reserveWord.
func (out *outputBuffer) patchWord(at int, word uint16) {
	binary.LittleEndian.PutUint16(out.data[at:at+flagWordLength], word)
}

// inputBuffer is the decompressor's view of a compressed stream. Reading past
// the end means the stream lied about its length.
type inputBuffer struct {
	data []byte
	pos  int
}

func (in *inputBuffer) readByte() (byte, error) {
	if in.pos >= len(in.data) {
		return 0, in.overrun(1)
	}

	b := in.data[in.pos]
	in.pos++
	return b, nil
}

func (in *inputBuffer) readWord() (uint16, error) {
	if in.pos+flagWordLength > len(in.data) {
		return 0, in.overrun(flagWordLength)
	}

	word := binary.LittleEndian.Uint16(in.data[in.pos:])
	in.pos += flagWordLength
	return word, nil
}

func (in *inputBuffer) overrun(want int) error {
	msg := fmt.Sprintf(
		"compressed stream ended at offset %d, needed %d more byte(s)",
		len(in.data),
		in.pos+want-len(in.data),
	)
	return errors.ErrDecodeInconsistency.WithMessage(msg)
}
