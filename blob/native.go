package blob

import (
	"bytes"
	"github.com/illuscio-dev/blobtools-go/bloberrors"
)

// Returns the bytes a single part contributes to a blob.
func partBytes(part interface{}, index int) ([]byte, error) {
	switch typed := part.(type) {
	case []byte:
		return typed, nil
	case string:
		return []byte(typed), nil
	case *Blob:
		if typed == nil {
			break
		}
		return typed.data, nil
	case Blob:
		return typed.data, nil
	}
	return nil, bloberrors.PartTypeError.Newf(
		nil, "blob part %d has unsupported type %T", index, part,
	)
}

// NativeConstructor is the Go host's canonical blob constructor. When Disabled it
// behaves like a host without a usable constructor.
type NativeConstructor struct {
	Disabled bool
}

func (constructor *NativeConstructor) NewBlob(
	parts []interface{}, contentType string,
) (*Blob, error) {
	if constructor.Disabled {
		return nil, bloberrors.CapabilityMismatchError.New(
			"blob constructor is not available on this host", nil,
		)
	}

	buffer := bytes.Buffer{}
	for index, part := range parts {
		data, err := partBytes(part, index)
		if err != nil {
			return nil, err
		}
		buffer.Write(data)
	}
	return wrap(buffer.Bytes(), contentType), nil
}

// BufferBuilderProvider is the Go host's legacy builder capability.
type BufferBuilderProvider struct {
	Disabled bool
}

func (provider *BufferBuilderProvider) Name() string {
	return "BufferBuilder"
}

func (provider *BufferBuilderProvider) Available() bool {
	return !provider.Disabled
}

func (provider *BufferBuilderProvider) NewBuilder() Builder {
	return &bufferBuilder{}
}

// Accumulates parts in a bytes.Buffer.
type bufferBuilder struct {
	buffer bytes.Buffer
	count  int
}

func (builder *bufferBuilder) Append(part interface{}) error {
	data, err := partBytes(part, builder.count)
	if err != nil {
		return err
	}
	builder.count++
	builder.buffer.Write(data)
	return nil
}

func (builder *bufferBuilder) GetBlob(contentType string) *Blob {
	blob := New(builder.buffer.Bytes(), contentType)
	builder.buffer.Reset()
	builder.count = 0
	return blob
}
