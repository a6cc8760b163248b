package container

import (
	"encoding/binary"
	"fmt"

	"github.com/dargueta/tpconf/errors"
)

// MaxContainerSize is the largest container the firmware produces, and thus
// the largest value a compressed size field may hold.
const MaxContainerSize = 0x20000

const sizeFieldLength = 4

// ResolveSize reads the 4-byte size field at the start of `buf`, assuming
// `order` first. Nothing in the format says which byte order a router used, so
// if the value is implausibly large the other order is tried. It returns the
// size and the byte order that produced it.
//
// If neither order gives a size of at most [MaxContainerSize], the buffer isn't
// a compressed container and [errors.ErrFormat] is returned.
func ResolveSize(buf []byte, order binary.ByteOrder) (uint32, binary.ByteOrder, error) {
	if len(buf) < sizeFieldLength {
		msg := fmt.Sprintf(
			"need %d bytes for the size field, got %d", sizeFieldLength, len(buf))
		return 0, nil, errors.ErrFormat.WithMessage(msg)
	}
	if order == nil {
		order = binary.BigEndian
	}

	size := order.Uint32(buf)
	if size <= MaxContainerSize {
		return size, order, nil
	}

	swapped := swapByteOrder(order)
	swappedSize := swapped.Uint32(buf)
	if swappedSize <= MaxContainerSize {
		return swappedSize, swapped, nil
	}

	msg := fmt.Sprintf(
		"size field %02x is too large for a config file in either byte order (%d, %d)",
		buf[:sizeFieldLength],
		size,
		swappedSize,
	)
	return 0, nil, errors.ErrFormat.WithMessage(msg)
}

func swapByteOrder(order binary.ByteOrder) binary.ByteOrder {
	if order == binary.BigEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}
