package bytecodec

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which is
// the preferred method of using multiple asserts in a test.

import (
	"encoding/base64"
	"github.com/stretchr/testify/assert"
	"testing"
)

func allBytes() []byte {
	data := make([]byte, 256)
	for index := range data {
		data[index] = byte(index)
	}
	return data
}

func TestBytesRoundTrip(test *testing.T) {
	assert := assert.New(test)

	full := allBytes()
	for length := 0; length <= len(full); length++ {
		data := full[:length]
		binary := BytesToBinaryString(data)
		assert.Equal(length, len([]rune(binary)))
		assert.Equal(data, BinaryStringToBytes(binary))
	}
}

func TestBinaryStringRoundTrip(test *testing.T) {
	binary := "abc\x00ÿ\u0080"
	assert.Equal(test, binary, BytesToBinaryString(BinaryStringToBytes(binary)))
}

func TestBinaryStringToBytes(test *testing.T) {
	assert := assert.New(test)

	assert.Equal([]byte{}, BinaryStringToBytes(""))
	assert.Equal([]byte("hello"), BinaryStringToBytes("hello"))
	assert.Equal([]byte{0xff, 0x00, 0x80}, BinaryStringToBytes("ÿ\x00\u0080"))
}

func TestRawStringIsNotBinaryString(test *testing.T) {
	assert := assert.New(test)

	data := []byte{0xff, 0x80, 'A'}
	assert.Equal([]byte{0xfd, 0xfd, 'A'}, BinaryStringToBytes(string(data)))
	assert.Equal(data, BinaryStringToBytes(BytesToBinaryString(data)))
}

func TestBase64(test *testing.T) {
	assert := assert.New(test)

	binary, err := Base64ToBinaryString("aGVsbG8=")
	assert.NoError(err)
	assert.Equal("hello", binary)

	assert.Equal("aGVsbG8=", BinaryStringToBase64("hello"))
	assert.Equal(
		base64.StdEncoding.EncodeToString(allBytes()),
		BinaryStringToBase64(BytesToBinaryString(allBytes())),
	)
}

func TestBase64Malformed(test *testing.T) {
	_, err := Base64ToBinaryString("not base64!")

	var corrupt base64.CorruptInputError
	assert.ErrorAs(test, err, &corrupt)
}
