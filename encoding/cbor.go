package encoding

import (
	"github.com/fxamacker/cbor/v2"
	"io"
	"reflect"
)

// cborEncMode uses Core Deterministic Encoding so the same content always produces the
// same blob bytes. TextMarshaler types (including blob.Blob) are written as text
// strings.
var cborEncMode cbor.EncMode

// cborDecMode decodes untyped maps as map[string]interface{}.
var cborDecMode cbor.DecMode

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	encOptions.TextMarshaler = cbor.TextMarshalerTextString
	cborEncMode, err = encOptions.EncMode()
	if err != nil {
		panic("encoding: CBOR encoder initialization failed: " + err.Error())
	}

	cborDecMode, err = cbor.DecOptions{
		DefaultMapType:  reflect.TypeOf(map[string]interface{}(nil)),
		TextUnmarshaler: cbor.TextUnmarshalerTextString,
	}.DecMode()
	if err != nil {
		panic("encoding: CBOR decoder initialization failed: " + err.Error())
	}
}

// default CBOR encoder for BlobEngine.
type cborEncoder struct{}

func (encoder *cborEncoder) Encode(
	engine ContentEngine, writer io.Writer, content interface{},
) error {
	return cborEncMode.NewEncoder(writer).Encode(content)
}

func (encoder *cborEncoder) Decode(
	engine ContentEngine, reader io.Reader, contentReceiver interface{},
) error {
	return cborDecMode.NewDecoder(reader).Decode(contentReceiver)
}
