/*
Package reader reads blobs back into binary-string, byte buffer, base64 or data-URL
form.

Every read is asynchronous and returns a future.Future that settles exactly once. The
host read capability is an ArrayBufferReader; if it also implements BinaryStringReader,
binary-string reads use the direct string read, otherwise they read a buffer and convert
it with bytecodec.BytesToBinaryString. A failure reported by the host rejects the future
with that error, unchanged, and no other read is attempted.
*/
package reader

import (
	"github.com/illuscio-dev/blobtools-go/blob"
	"github.com/illuscio-dev/blobtools-go/bytecodec"
	"github.com/illuscio-dev/blobtools-go/dataurl"
	"github.com/illuscio-dev/blobtools-go/future"
	"github.com/rs/zerolog/log"
)

// ArrayBufferReader is the host's buffer-read primitive. It signals completion by
// calling exactly one of onLoad or onError. A nil result means the host produced none.
type ArrayBufferReader interface {
	ReadAsArrayBuffer(b *blob.Blob, onLoad func(result []byte), onError func(err error))
}

// BinaryStringReader is the optional direct text-read primitive.
type BinaryStringReader interface {
	ReadAsBinaryString(b *blob.Blob, onLoad func(result *string), onError func(err error))
}

// Reader reads blobs through a host read capability.
type Reader struct {
	host ArrayBufferReader
}

// New returns a reader over host.
func New(host ArrayBufferReader) *Reader {
	return &Reader{host: host}
}

// Reads b as a binary-string.
func (reader *Reader) ReadAsBinaryString(b *blob.Blob) *future.Future[string] {
	result, resolve, reject := future.New[string]()

	if stringReader, ok := reader.host.(BinaryStringReader); ok {
		stringReader.ReadAsBinaryString(
			b,
			func(text *string) {
				if text == nil {
					resolve("")
					return
				}
				resolve(*text)
			},
			reject,
		)
		return result
	}

	log.Debug().Msg("host has no binary-string read, decoding buffer read")
	reader.host.ReadAsArrayBuffer(
		b,
		func(data []byte) {
			resolve(bytecodec.BytesToBinaryString(data))
		},
		reject,
	)
	return result
}

// Reads b as a byte buffer. An absent host result resolves to a zero-length buffer.
func (reader *Reader) ReadAsArrayBuffer(b *blob.Blob) *future.Future[[]byte] {
	result, resolve, reject := future.New[[]byte]()

	reader.host.ReadAsArrayBuffer(
		b,
		func(data []byte) {
			if data == nil {
				data = []byte{}
			}
			resolve(data)
		},
		reject,
	)
	return result
}

// Reads b as standard base64 text.
func (reader *Reader) ReadAsBase64(b *blob.Blob) *future.Future[string] {
	return future.Then(
		reader.ReadAsBinaryString(b),
		func(binary string) (string, error) {
			return bytecodec.BinaryStringToBase64(binary), nil
		},
	)
}

// Reads b as a base64 data-URL. The content-type is the one b was created with.
func (reader *Reader) ReadAsDataURL(b *blob.Blob) *future.Future[string] {
	return future.Then(
		reader.ReadAsBase64(b),
		func(base64Text string) (string, error) {
			return dataurl.Format(b.Type(), base64Text), nil
		},
	)
}
