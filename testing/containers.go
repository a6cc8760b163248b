package testing

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/dargueta/tpconf/container"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"
)

// SampleMarkup returns a NUL-terminated configuration document for the given
// router model with `entries` repeated sections, similar to what the firmware
// exports.
func SampleMarkup(model string, entries int) []byte {
	buffer := bytes.Buffer{}
	buffer.WriteString("<?xml version=\"1.0\"?>\n<DslCpeConfig>\n")
	fmt.Fprintf(&buffer, "  <DeviceInfo>\n    <ModelName>%s</ModelName>\n  </DeviceInfo>\n", model)
	for i := 0; i < entries; i++ {
		fmt.Fprintf(
			&buffer,
			"  <WANIPConnection instance=\"%d\">\n"+
				"    <Enable>%d</Enable>\n"+
				"    <Name>ipoe_%d_%d</Name>\n"+
				"    <ExternalIPAddress>192.168.%d.%d</ExternalIPAddress>\n"+
				"  </WANIPConnection>\n",
			i+1,
			i%2,
			i/8,
			i%8,
			i%256,
			(i*37)%256,
		)
	}
	buffer.WriteString("</DslCpeConfig>\n")
	buffer.WriteByte(0)
	return buffer.Bytes()
}

// EncodeContainer encodes `markup` with the firmware defaults, failing the test
// if that isn't possible.
func EncodeContainer(t *testing.T, markup []byte, variant container.Variant) []byte {
	encoded, err := container.Encode(markup, variant, nil)
	require.NoErrorf(t, err, "failed to encode %s container", variant)
	require.Zero(t, len(encoded)%8, "container isn't a whole number of cipher blocks")
	return encoded
}

// EncryptLayout encrypts an already laid out (decrypted) container with the
// default key. Use this to build containers the encoder would never produce.
// `plain` is zero-padded to a whole number of blocks first.
func EncryptLayout(t *testing.T, plain []byte) []byte {
	block, err := container.NewCipher(container.DefaultKey[:])
	require.NoError(t, err)

	padded := make([]byte, (len(plain)+7)/8*8)
	copy(padded, plain)

	encrypted, err := container.EncryptECB(block, padded)
	require.NoError(t, err)
	return encrypted
}

// OpenContainer encodes `markup` and returns a stream over the container.
//
//   - Writes to the stream do not affect anything else.
//   - While the stream can be written to, its size is fixed to the size of the
//     container. Attempting to write past the end will trigger an error.
func OpenContainer(
	t *testing.T, markup []byte, variant container.Variant,
) io.ReadWriteSeeker {
	encoded := EncodeContainer(t, markup, variant)
	require.Greater(t, len(encoded), 0, "encoded container is empty")
	return bytesextra.NewReadWriteSeeker(encoded)
}
