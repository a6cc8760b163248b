// Fault kinds reported by the container codec. These play the same role errno
// codes do for system calls: callers switch on the kind to decide whether the
// input was corrupt, mis-keyed, or simply not a container at all.

package errors

import (
	"fmt"
)

type Kind int

var errorMessagesByKind = map[Kind]string{
	KindOK:                  "Success",
	KindFormat:              "Unrecognized container format",
	KindIntegrity:           "Digest verification failed",
	KindDecodeInconsistency: "Compressed stream is inconsistent",
	KindOverrun:             "Output buffer overrun",
	KindInternal:            "Internal codec error",
	KindInvalidArgument:     "Invalid argument",
}

const (
	KindOK Kind = iota
	KindFormat
	KindIntegrity
	KindDecodeInconsistency
	KindOverrun
	KindInternal
	KindInvalidArgument
)

// ErrFormat is returned when a buffer can't be a container at all: unknown
// marker bytes, an impossible size field, or a bad encrypted length.
var ErrFormat = New(KindFormat)

// ErrIntegrity is returned when the digest doesn't match the payload under any
// of the padding lengths tried. This usually means a wrong key or corruption.
var ErrIntegrity = New(KindIntegrity)

// ErrDecodeInconsistency is returned when a compressed stream doesn't decode to
// exactly its declared length.
var ErrDecodeInconsistency = New(KindDecodeInconsistency)

var ErrOverrun = New(KindOverrun)
var ErrInternal = New(KindInternal)
var ErrInvalidArgument = New(KindInvalidArgument)

// StrError returns the default message for a fault kind.
func StrError(kind Kind) string {
	message, ok := errorMessagesByKind[kind]
	if ok {
		return message
	}
	return fmt.Sprintf("Unknown fault kind %d", int(kind))
}

func (k Kind) String() string {
	return StrError(k)
}
