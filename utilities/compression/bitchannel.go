package compression

// bitWriter packs single-bit flags into 16-bit words interleaved with the
// compressed byte stream. Each word is reserved in the output before the items
// it describes and filled in once its 16th bit has been written.
type bitWriter struct {
	out *outputBuffer
	// flags accumulates the bits of the current word, oldest bit highest.
	flags uint16
	// remaining counts the bits still free in the current word.
	remaining uint
	// reserved is the output offset the current word will be stored at.
	reserved int
}

func newBitWriter(out *outputBuffer) (*bitWriter, error) {
	reserved, err := out.reserveWord()
	if err != nil {
		return nil, err
	}
	return &bitWriter{
		out:       out,
		remaining: flagsPerWord,
		reserved:  reserved,
	}, nil
}

// WriteBit appends one bit. The word is only flushed when a 17th bit arrives,
// so that the next word's reservation lands after every byte belonging to the
// previous group.
func (w *bitWriter) WriteBit(bit bool) error {
	if w.remaining == 0 {
		w.out.patchWord(w.reserved, w.flags)

		reserved, err := w.out.reserveWord()
		if err != nil {
			return err
		}
		w.reserved = reserved
		w.remaining = flagsPerWord
	}

	w.remaining--
	w.flags <<= 1
	if bit {
		w.flags |= 1
	}
	return nil
}

// Flush stores the partially filled word, left-aligned with zeros in the
// unused low bits.
func (w *bitWriter) Flush() {
	w.out.patchWord(w.reserved, w.flags<<w.remaining)
}

// bitReader is the mirror of [bitWriter]: it loads a new flag word from the
// input every 16 bits, right where the writer reserved it.
type bitReader struct {
	in        *inputBuffer
	flags     uint32
	remaining uint
}

func newBitReader(in *inputBuffer) *bitReader {
	return &bitReader{in: in}
}

func (r *bitReader) ReadBit() (bool, error) {
	if r.remaining == 0 {
		word, err := r.in.readWord()
		if err != nil {
			return false, err
		}
		r.flags = uint32(word)
		r.remaining = flagsPerWord
	}

	r.remaining--
	r.flags <<= 1
	bit := r.flags&(1<<flagsPerWord) != 0
	r.flags &= 1<<flagsPerWord - 1
	return bit, nil
}
