/*
Package bytecodec holds the synchronous byte-level transforms between byte buffers,
binary-strings and base64 text.

A binary-string is a string whose every rune is in the range 0-255 and stands for exactly
one byte. It exists to interoperate with text-oriented read primitives and is not meant
to be human-readable. Note that a rune above 127 occupies two bytes of UTF-8 in the Go
string, so len(binary) is not the byte count; use BinaryStringToBytes.

A Go string converted directly from raw bytes, as in string(data), is NOT a
binary-string: bytes above 127 do not form valid UTF-8 and each decodes to U+FFFD, which
BinaryStringToBytes then truncates to 0xFD. Build binary-strings from bytes with
BytesToBinaryString.
*/
package bytecodec

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"
)

// Converts a binary-string into the byte sequence it encodes. Each rune is written as
// one byte, preserving order and length. Runes outside 0-255 are not valid
// binary-string content and are truncated to their low byte.
func BinaryStringToBytes(binary string) []byte {
	data := make([]byte, 0, utf8.RuneCountInString(binary))
	for _, char := range binary {
		data = append(data, byte(char))
	}
	return data
}

// Converts a byte sequence into a binary-string.
func BytesToBinaryString(data []byte) string {
	builder := strings.Builder{}
	builder.Grow(len(data))
	for _, value := range data {
		builder.WriteRune(rune(value))
	}
	return builder.String()
}

// Decodes standard base64 text into a binary-string. Malformed input fails with the
// base64.CorruptInputError of the underlying codec.
func Base64ToBinaryString(text string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return "", err
	}
	return BytesToBinaryString(data), nil
}

// Encodes a binary-string as standard base64 text.
func BinaryStringToBase64(binary string) string {
	return base64.StdEncoding.EncodeToString(BinaryStringToBytes(binary))
}
