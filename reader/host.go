package reader

import (
	"github.com/illuscio-dev/blobtools-go/blob"
	"github.com/illuscio-dev/blobtools-go/bytecodec"
	"io/ioutil"
)

// GoFileReader is the Go host's read capability. Reads run on their own goroutine and
// stream the blob content through its io.Reader.
type GoFileReader struct{}

func (host GoFileReader) ReadAsArrayBuffer(
	b *blob.Blob, onLoad func([]byte), onError func(error),
) {
	go func() {
		data, err := ioutil.ReadAll(b.Reader())
		if err != nil {
			onError(err)
			return
		}
		onLoad(data)
	}()
}

// GoBinaryStringReader extends GoFileReader with the direct binary-string read.
type GoBinaryStringReader struct {
	GoFileReader
}

func (host GoBinaryStringReader) ReadAsBinaryString(
	b *blob.Blob, onLoad func(*string), onError func(error),
) {
	host.ReadAsArrayBuffer(
		b,
		func(data []byte) {
			text := bytecodec.BytesToBinaryString(data)
			onLoad(&text)
		},
		onError,
	)
}

// Returns the Go host read capability, with or without the direct binary-string read.
func NewGoHost(binaryStringRead bool) ArrayBufferReader {
	if binaryStringRead {
		return GoBinaryStringReader{}
	}
	return GoFileReader{}
}
