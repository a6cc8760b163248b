package compression

// Size limits of the container format.
const (
	// MaxCompressedSize is the capacity of the compressor's output buffer. The
	// firmware allocates exactly this much, so nothing larger is valid.
	MaxCompressedSize = 0x8000

	// MaxRawSize is the largest uncompressed size the size field may declare.
	MaxRawSize = 0x20000

	// BlockAlignment is the cipher block size the compressed stream is padded to.
	BlockAlignment = 8
)

const (
	sizeFieldLength = 4
	flagsPerWord    = 16
	flagWordLength  = 2

	// minMatchLength is the shortest back-reference the encoder emits. The main
	// loop also stops looking for matches once this few bytes remain.
	minMatchLength = 4

	// matchLengthBias is subtracted from a match length before encoding it.
	matchLengthBias = 2

	// minVarLenValue is the smallest value the variable-length code can carry;
	// its leading 1 bit is implicit.
	minVarLenValue = 2

	// maxVarLenBits bounds how many data bits the decoder accepts for one
	// variable-length value before declaring the stream corrupt.
	maxVarLenBits = 31
)

// Dictionary hash parameters.
const (
	dictionarySlots = 0x2000
	dictionaryMask  = dictionarySlots - 1
	hashMultiplier  = 0x13d
	hashWindowSize  = 4
)

// AlignToBlock rounds `n` up to the next multiple of [BlockAlignment].
func AlignToBlock(n int) int {
	if n%BlockAlignment == 0 {
		return n
	}
	return (n | (BlockAlignment - 1)) + 1
}
