package encoding

import (
	"bytes"
	"github.com/illuscio-dev/blobtools-go/blob"
	"github.com/illuscio-dev/blobtools-go/mimetype"
	"golang.org/x/xerrors"
	"io"
)

// Passes raw bytes through for application/octet-stream.
type octetEncoder struct{}

func (handler *octetEncoder) Encode(
	engine ContentEngine, writer io.Writer, content interface{},
) error {
	var err error
	switch typed := content.(type) {
	case []byte:
		_, err = writer.Write(typed)
	case *[]byte:
		_, err = writer.Write(*typed)
	case *blob.Blob:
		_, err = typed.WriteTo(writer)
	case io.Reader:
		_, err = io.Copy(writer, typed)
	default:
		err = xerrors.Errorf("cannot write %T as raw bytes", content)
	}
	return err
}

func (handler *octetEncoder) Decode(
	engine ContentEngine, reader io.Reader, contentReceiver interface{},
) error {
	buffer := new(bytes.Buffer)
	if _, err := buffer.ReadFrom(reader); err != nil {
		return err
	}

	switch typed := contentReceiver.(type) {
	case *[]byte:
		*typed = buffer.Bytes()
	case *blob.Blob:
		*typed = *blob.New(buffer.Bytes(), string(mimetype.OCTET))
	case io.Writer:
		_, err := buffer.WriteTo(typed)
		return err
	default:
		return xerrors.Errorf("cannot read raw bytes into %T", contentReceiver)
	}
	return nil
}
