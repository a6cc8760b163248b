package compression_test

import (
	"bytes"
	"testing"

	"github.com/dargueta/tpconf/errors"
	c "github.com/dargueta/tpconf/utilities/compression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecompress__XMLDeclaration(t *testing.T) {
	raw := []byte("<?xml version=\"1.0\"?><a></a>\x00")
	_, compressed, err := c.Compress(raw, nil)
	require.NoError(t, err)

	output, err := c.Decompress(compressed, len(raw))
	require.NoError(t, err)
	assert.Equal(t, raw, output)
}

func TestDecompress__OverlappingBackReference(t *testing.T) {
	// "AB", then one back-reference of 6 bytes at distance 2: ABABABAB.
	// Flags: literal(0), match(1), length 6-2=4 -> 0 1 0 0, high 0+2 -> 0 0.
	// 0101 0000 0000 0000 = 0x5000, stored little-endian.
	stream := []byte{0, 0, 0, 8, 'A', 0x00, 0x50, 'B', 0x01}

	output, err := c.Decompress(stream, 8)
	require.NoError(t, err)
	assert.Equal(t, []byte("ABABABAB"), output)
}

func TestDecompress__BackReferenceBeforeStart(t *testing.T) {
	// match(1), length code 2 -> 0 0, high code 3 -> 1 0, low byte 0xff.
	// That's a distance of 512 from output offset 1.
	stream := []byte{0, 0, 0, 5, 'A', 0x00, 0x90, 0xff}

	_, err := c.Decompress(stream, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrDecodeInconsistency)
}

func TestDecompress__BackReferencePastDeclaredSize(t *testing.T) {
	input := bytes.Repeat([]byte{0x41}, 1000)
	_, compressed, err := c.Compress(input, nil)
	require.NoError(t, err)

	_, err = c.Decompress(compressed, 500)
	assert.ErrorIs(t, err, errors.ErrDecodeInconsistency)
}

func TestDecompress__TruncatedInputAlwaysFails(t *testing.T) {
	data := sampleConfig()
	used, compressed, err := c.Compress(data, nil)
	require.NoError(t, err)

	expectedLength := len(c.Terminate(data))
	for cut := 1; cut <= 32; cut++ {
		truncated := compressed[:used-cut]
		_, decErr := c.Decompress(truncated, expectedLength)
		require.Error(t, decErr, "expected error for cut=%d", cut)
		assert.ErrorIs(t, decErr, errors.ErrDecodeInconsistency)
	}
}

func TestDecompress__DeclaredSizeOutOfRange(t *testing.T) {
	stream := []byte{0, 0, 0, 1, 'A', 0, 0, 0}

	_, err := c.Decompress(stream, 0)
	assert.ErrorIs(t, err, errors.ErrDecodeInconsistency)

	_, err = c.Decompress(stream, c.MaxRawSize+1)
	assert.ErrorIs(t, err, errors.ErrDecodeInconsistency)

	output, err := c.Decompress(stream, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte{'A'}, output)
}

func TestDecompress__ShortInput(t *testing.T) {
	for _, stream := range [][]byte{nil, {0, 0}, {0, 0, 0, 1}} {
		_, err := c.Decompress(stream, 1)
		assert.ErrorIs(t, err, errors.ErrDecodeInconsistency, "input % x", stream)
	}
}

func TestDecompress__TrailingBytes(t *testing.T) {
	data := sampleConfig()
	used, compressed, err := c.Compress(data, nil)
	require.NoError(t, err)
	expectedLength := len(c.Terminate(data))

	padded := append(append([]byte(nil), compressed[:used]...), make([]byte, 7)...)
	output, err := c.Decompress(padded, expectedLength)
	require.NoError(t, err, "less than a block of padding must be accepted")
	assert.Equal(t, c.Terminate(data), output)

	padded = append(padded, 0)
	_, err = c.Decompress(padded, expectedLength)
	assert.ErrorIs(t, err, errors.ErrDecodeInconsistency)
}
