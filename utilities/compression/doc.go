// Package compression implements the LZ-style dictionary compressor used inside
// TP-Link router backup containers (conf.bin).
//
// The encoder reproduces the firmware's greedy parse exactly and produces
// byte-for-byte the same stream for the same input.
//
// A compressed buffer looks like this:
//
//	+------+-------+------+-----------------------+------+-----------------
//	| size | first | flag | up to 16 items        | flag | up to 16 items ...
//	|  u32 | byte  |  u16 | (literals, matches)   |  u16 |
//	+------+-------+------+-----------------------+------+-----------------
//
// The size field holds the length of the uncompressed data. Its byte order
// depends on the router model and isn't recorded anywhere; callers have to
// guess (see the container package). Flag words are always little-endian.
//
// Every item after the first byte is preceded by one flag bit, taken from the
// most significant end of the current flag word. A zero bit means the next
// byte of the stream is a literal. A one bit introduces a back-reference:
//
//   - the match length minus 2, as a variable-length code;
//   - the high bits of (distance - 1) plus 2, as a variable-length code;
//   - the low 8 bits of (distance - 1), as a raw byte.
//
// The variable-length code sends the bits of a value >= 2 from the second most
// significant down, each followed by a continuation flag (1 = more bits,
// 0 = done). Its bits come from the same flag words as the item flags, so a
// back-reference can straddle a flag word boundary. When that happens the
// next flag word sits in the byte stream right where the writer was when the
// 17th bit was needed, which is exactly where the reader is when it needs it.
//
// Matches are found through a table of 8192 slots, each remembering only the
// most recent position whose 4-byte window hashed there. Position 0 doubles as
// the "empty" marker, so the very first byte of the input is never matched
// against.
//
// Back-references may overlap the bytes they produce (distance < length), which
// is how runs are encoded, so they are always copied one byte at a time.
//
// The compressed stream is zero-padded to a multiple of 8 bytes so it can be
// fed straight to a 64-bit block cipher.
package compression
