package compression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitWriter__PartialWordIsLeftAligned(t *testing.T) {
	out := newOutputBuffer(8)
	w, err := newBitWriter(out)
	require.NoError(t, err)

	require.NoError(t, w.WriteBit(true))
	require.NoError(t, w.WriteBit(false))
	require.NoError(t, w.WriteBit(true))
	w.Flush()

	assert.Equal(t, 2, out.pos, "only the reserved word should've been written")
	assert.Equal(t, []byte{0x00, 0xa0}, out.data[:2], "flag word is wrong")
}

func TestBitWriter__SeventeenthBitReservesNextWord(t *testing.T) {
	out := newOutputBuffer(64)
	w, err := newBitWriter(out)
	require.NoError(t, err)

	for i := 0; i < 16; i++ {
		require.NoError(t, w.WriteBit(i%2 == 0))
		require.NoError(t, out.WriteByte(byte(i)))
	}
	assert.Equal(t, 18, out.pos, "next word must not be reserved before it's needed")

	require.NoError(t, w.WriteBit(true))
	assert.Equal(t, 20, out.pos, "17th bit should reserve a new word")
	w.Flush()

	assert.Equal(t, []byte{0xaa, 0xaa}, out.data[0:2], "first flag word is wrong")
	assert.Equal(t, []byte{0x00, 0x80}, out.data[18:20], "second flag word is wrong")
}

func TestBitChannelRoundTrip__InterleavedBytes(t *testing.T) {
	pattern := []bool{
		true, true, false, true, false, false, false, true, true, false,
		true, false, true, true, true, false, false, true, false, true,
		false, false, true, true, true, true, false, true, false, false,
		true, false, true, false, false, true, true, false,
	}

	out := newOutputBuffer(256)
	w, err := newBitWriter(out)
	require.NoError(t, err)
	for i, bit := range pattern {
		require.NoError(t, w.WriteBit(bit))
		if i%3 == 0 {
			require.NoError(t, out.WriteByte(byte(0xc0+i)))
		}
	}
	w.Flush()

	r := newBitReader(&inputBuffer{data: out.data[:out.pos]})
	for i, expected := range pattern {
		bit, err := r.ReadBit()
		require.NoError(t, err, "bit %d", i)
		require.Equal(t, expected, bit, "bit %d is wrong", i)
		if i%3 == 0 {
			b, err := r.in.readByte()
			require.NoError(t, err)
			require.Equal(t, byte(0xc0+i), b, "byte after bit %d is wrong", i)
		}
	}
	assert.Equal(t, out.pos, r.in.pos, "reader and writer disagree on stream length")
}

func TestBitReader__TruncatedWord(t *testing.T) {
	r := newBitReader(&inputBuffer{data: []byte{0xff}})
	_, err := r.ReadBit()
	require.Error(t, err)
}

func TestBitWriter__OutputFull(t *testing.T) {
	out := newOutputBuffer(3)
	w, err := newBitWriter(out)
	require.NoError(t, err)
	require.NoError(t, out.WriteByte(1))

	for i := 0; i < 16; i++ {
		require.NoError(t, w.WriteBit(true))
	}
	assert.Error(t, w.WriteBit(true), "reserving a word past the end should fail")
}

func TestVarLenRoundTrip(t *testing.T) {
	const maxValue = 1 << 20

	out := newOutputBuffer(8 << 20)
	w, err := newBitWriter(out)
	require.NoError(t, err)
	for v := uint32(2); v <= maxValue; v++ {
		require.NoError(t, writeVarLen(w, v))
	}
	w.Flush()

	r := newBitReader(&inputBuffer{data: out.data[:out.pos]})
	for v := uint32(2); v <= maxValue; v++ {
		decoded, err := readVarLen(r)
		require.NoError(t, err)
		if decoded != v {
			t.Fatalf("decoded %d, expected %d", decoded, v)
		}
	}
}

func TestVarLen__BitSequence(t *testing.T) {
	tests := []struct {
		Name     string
		Value    uint32
		Expected []bool
	}{
		{"two", 2, []bool{false, false}},
		{"three", 3, []bool{true, false}},
		{"four", 4, []bool{false, true, false, false}},
		{"six", 6, []bool{true, true, false, false}},
		{"eleven", 11, []bool{false, true, true, true, true, false}},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			out := newOutputBuffer(8)
			w, err := newBitWriter(out)
			require.NoError(t, err)
			require.NoError(t, writeVarLen(w, test.Value))
			assert.Equal(t, uint(flagsPerWord-len(test.Expected)), w.remaining)

			expected := uint16(0)
			for _, bit := range test.Expected {
				expected <<= 1
				if bit {
					expected |= 1
				}
			}
			assert.Equal(t, expected, w.flags, "wrong bits for %d", test.Value)
		})
	}
}

func TestVarLen__RejectsSmallValues(t *testing.T) {
	out := newOutputBuffer(8)
	w, err := newBitWriter(out)
	require.NoError(t, err)

	assert.Error(t, writeVarLen(w, 0))
	assert.Error(t, writeVarLen(w, 1))
}

func TestVarLen__EndlessContinuation(t *testing.T) {
	data := []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	_, err := readVarLen(newBitReader(&inputBuffer{data: data}))
	assert.Error(t, err, "a value with no terminator should be rejected")
}

func TestDictionaryIndex__SingleSlotReplaces(t *testing.T) {
	src := []byte("abcdXabcdYabcdZ")
	dict := newDictionaryIndex()

	_, ok := dict.Lookup(src, 5)
	assert.False(t, ok, "empty dictionary returned a candidate")

	dict.Insert(src, 0)
	_, ok = dict.Lookup(src, 5)
	assert.False(t, ok, "position 0 must never be a candidate")

	dict.Insert(src, 5)
	candidate, ok := dict.Lookup(src, 10)
	require.True(t, ok)
	assert.Equal(t, 5, candidate)

	dict.Insert(src, 10)
	candidate, ok = dict.Lookup(src, 10)
	require.True(t, ok)
	assert.Equal(t, 10, candidate, "insert didn't replace the previous occupant")
}

func TestDictionaryIndex__InsertingPositionZeroEmptiesSlot(t *testing.T) {
	src := []byte("abcdXabcdYabcdZ")
	dict := newDictionaryIndex()

	dict.Insert(src, 5)
	candidate, ok := dict.Lookup(src, 10)
	require.True(t, ok)
	require.Equal(t, 5, candidate)

	dict.Insert(src, 0)
	_, ok = dict.Lookup(src, 10)
	assert.False(t, ok, "slot still holds position 5 after position 0 replaced it")

	dict.Insert(src, 10)
	candidate, ok = dict.Lookup(src, 5)
	require.True(t, ok, "slot wasn't reusable after being emptied")
	assert.Equal(t, 10, candidate)
}

func TestHashWindow(t *testing.T) {
	// ((('a' * 0x13d) + 'b') * 0x13d + 'c') * 0x13d + 'd', low 13 bits.
	key := uint32('a') * hashMultiplier
	key = (key + 'b') * hashMultiplier
	key = (key + 'c') * hashMultiplier
	expected := int((key + 'd') & dictionaryMask)

	assert.Equal(t, expected, hashWindow([]byte("abcd"), 0))
	assert.Equal(t, expected, hashWindow([]byte("xxabcdxx"), 2))
	assert.Less(t, hashWindow([]byte{0xff, 0xff, 0xff, 0xff}, 0), dictionarySlots)
}
