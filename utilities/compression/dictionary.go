package compression

import (
	"github.com/boljen/go-bitmap"
)

// dictionaryIndex maps the hash of a 4-byte window to the most recent position
// that produced it. Each slot holds one offset and inserting always replaces
// it; there are no chains. The firmware's output depends on this.
type dictionaryIndex struct {
	offsets  [dictionarySlots]int
	occupied bitmap.Bitmap
}

func newDictionaryIndex() *dictionaryIndex {
	return &dictionaryIndex{occupied: bitmap.New(dictionarySlots)}
}

// hashWindow hashes the 4 bytes of `src` starting at `offset`. The caller must
// make sure all four exist.
func hashWindow(src []byte, offset int) int {
	window := src[offset : offset+hashWindowSize]

	key := uint32(0)
	for _, b := range window[:hashWindowSize-1] {
		key = (key + uint32(b)) * hashMultiplier
	}
	return int((key + uint32(window[hashWindowSize-1])) & dictionaryMask)
}

// Insert records `offset` as the latest occurrence of its window's hash.
func (dict *dictionaryIndex) Insert(src []byte, offset int) {
	slot := hashWindow(src, offset)
	dict.offsets[slot] = offset
	dict.occupied.Set(slot, offset != 0)
}

// Lookup returns the candidate position for the window at `offset`, if any.
//
// Position 0 is never returned. The firmware's table starts zero-filled and
// treats a zero entry as empty, so inserting position 0 leaves its slot empty
// and clears whatever later position the slot held.
func (dict *dictionaryIndex) Lookup(src []byte, offset int) (int, bool) {
	slot := hashWindow(src, offset)
	if !dict.occupied.Get(slot) {
		return 0, false
	}

	return dict.offsets[slot], true
}
