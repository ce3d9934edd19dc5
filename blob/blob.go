package blob

import (
	"bytes"
	"io"
)

// Blob is an immutable byte sequence tagged with a content-type. The zero value is an
// empty blob with no content-type.
type Blob struct {
	data        []byte
	contentType string
}

// New returns a blob holding a copy of data.
func New(data []byte, contentType string) *Blob {
	copied := make([]byte, len(data))
	copy(copied, data)
	return &Blob{data: copied, contentType: contentType}
}

// Takes ownership of data without copying. Only for buffers nothing else references.
func wrap(data []byte, contentType string) *Blob {
	if data == nil {
		data = []byte{}
	}
	return &Blob{data: data, contentType: contentType}
}

// Size of the blob in bytes.
func (blob *Blob) Size() int {
	return len(blob.data)
}

// Content-type tag of the blob. Empty when none was given.
func (blob *Blob) Type() string {
	return blob.contentType
}

// Returns a copy of the blob content.
func (blob *Blob) Bytes() []byte {
	copied := make([]byte, len(blob.data))
	copy(copied, blob.data)
	return copied
}

// Returns a reader over the blob content.
func (blob *Blob) Reader() io.Reader {
	return bytes.NewReader(blob.data)
}

// WriteTo writes the blob content to writer.
func (blob *Blob) WriteTo(writer io.Writer) (int64, error) {
	written, err := writer.Write(blob.data)
	return int64(written), err
}

// Slice returns a new blob holding bytes [start, end) of this blob, clamped to its
// size, with contentType as its tag.
func (blob *Blob) Slice(start int, end int, contentType string) *Blob {
	if start < 0 {
		start = 0
	}
	if end > len(blob.data) {
		end = len(blob.data)
	}
	if start >= end {
		return New(nil, contentType)
	}
	return New(blob.data[start:end], contentType)
}

// Whether both blobs carry the same content-type and bytes.
func (blob *Blob) Equal(other *Blob) bool {
	if blob == nil || other == nil {
		return blob == other
	}
	return blob.contentType == other.contentType && bytes.Equal(blob.data, other.data)
}
