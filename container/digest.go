package container

import (
	"bytes"
	"crypto/md5"
)

// DigestLength is the size of the digest stored in every container.
const DigestLength = md5.Size

// maxPaddingCandidates is how many trailing byte counts VerifyDigest tries:
// zero through one less than a cipher block.
const maxPaddingCandidates = 8

// DigestFunc computes the 128-bit digest of a payload.
type DigestFunc func(payload []byte) [DigestLength]byte

// MD5 is the digest every known router uses.
func MD5(payload []byte) [DigestLength]byte {
	return md5.Sum(payload)
}

// VerifyDigest checks a buffer laid out as digest ++ payload. Encryption pads
// the payload to a whole number of cipher blocks and the padding isn't covered
// by the digest, so the payload is tried with 0 through 7 trailing bytes
// removed. It returns the length of the payload that matched.
//
// A nil digest function means [MD5].
func VerifyDigest(buf []byte, digest DigestFunc) (int, bool) {
	if digest == nil {
		digest = MD5
	}
	if len(buf) < DigestLength {
		return 0, false
	}

	expected := buf[:DigestLength]
	payload := buf[DigestLength:]
	for trim := 0; trim < maxPaddingCandidates && trim <= len(payload); trim++ {
		candidate := payload[:len(payload)-trim]
		actual := digest(candidate)
		if bytes.Equal(expected, actual[:]) {
			return len(candidate), true
		}
	}
	return 0, false
}
