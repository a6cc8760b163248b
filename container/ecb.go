package container

import (
	"crypto/cipher"
	"crypto/des"
	"fmt"

	"github.com/dargueta/tpconf/errors"
)

// DefaultKey is the DES key baked into the router firmware.
var DefaultKey = [des.BlockSize]byte{0x47, 0x8D, 0xA5, 0x0B, 0xF9, 0xE3, 0xD2, 0xCF}

// NewCipher returns the DES block cipher for an 8-byte key.
func NewCipher(key []byte) (cipher.Block, error) {
	block, err := des.NewCipher(key)
	if err != nil {
		return nil, errors.ErrInvalidArgument.Wrap(err)
	}
	return block, nil
}

// DecryptECB decrypts every block of `data` independently. The input must be a
// whole number of blocks; anything else can't be a container.
func DecryptECB(block cipher.Block, data []byte) ([]byte, error) {
	if err := checkBlockAligned(block, data); err != nil {
		return nil, errors.ErrFormat.Wrap(err)
	}

	output := make([]byte, len(data))
	for offset := 0; offset < len(data); offset += block.BlockSize() {
		block.Decrypt(output[offset:], data[offset:])
	}
	return output, nil
}

// EncryptECB encrypts every block of `data` independently. The caller is
// responsible for padding.
func EncryptECB(block cipher.Block, data []byte) ([]byte, error) {
	if err := checkBlockAligned(block, data); err != nil {
		return nil, errors.ErrInvalidArgument.Wrap(err)
	}

	output := make([]byte, len(data))
	for offset := 0; offset < len(data); offset += block.BlockSize() {
		block.Encrypt(output[offset:], data[offset:])
	}
	return output, nil
}

func checkBlockAligned(block cipher.Block, data []byte) error {
	if len(data)%block.BlockSize() != 0 {
		return fmt.Errorf(
			"length %d is not a multiple of the %d-byte cipher block",
			len(data),
			block.BlockSize(),
		)
	}
	return nil
}
