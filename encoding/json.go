package encoding

import (
	"github.com/illuscio-dev/blobtools-go/blob"
	"github.com/illuscio-dev/blobtools-go/mimetype"
	uuid "github.com/satori/go.uuid"
	"github.com/ugorji/go/codec"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/xerrors"
	"io"
	"reflect"
)

// JSONExtensionOpts holds options For Json Handle extension to add to the handle on
// engine setup.
type JSONExtensionOpts struct {
	ValueType    reflect.Type
	Tag          uint64
	ExtInterface codec.InterfaceExt
}

// defaultJSONExtensions holds all the JSONExtensionOpts to add to the JSONHandle on
// engine setup
var defaultJSONExtensions = []*JSONExtensionOpts{
	{
		ValueType:    reflect.TypeOf(primitive.Binary{}),
		Tag:          1,
		ExtInterface: &jsonExtBsonBinary{},
	},
	{
		ValueType:    reflect.TypeOf(blob.Blob{}),
		Tag:          2,
		ExtInterface: &jsonExtBlob{},
	},
}

// Converts blobs to data-URL strings and back.
type jsonExtBlob struct{}

func (ext *jsonExtBlob) ConvertExt(value interface{}) interface{} {
	var text []byte
	var err error

	switch typed := value.(type) {
	case blob.Blob:
		text, err = typed.MarshalText()
	case *blob.Blob:
		text, err = typed.MarshalText()
	default:
		panic(xerrors.Errorf("blob extension cannot convert %T", value))
	}
	if err != nil {
		panic(xerrors.Errorf("error converting blob: %w", err))
	}
	return string(text)
}

func (ext *jsonExtBlob) UpdateExt(dest interface{}, value interface{}) {
	destBlob, ok := dest.(*blob.Blob)
	if !ok {
		panic(xerrors.Errorf("blob extension cannot decode into %T", dest))
	}

	var text []byte
	switch typed := value.(type) {
	case string:
		text = []byte(typed)
	case []byte:
		text = typed
	case nil:
		*destBlob = blob.Blob{}
		return
	default:
		panic(xerrors.Errorf("blob must be decoded from a data-URL string, got %T", value))
	}

	if err := destBlob.UnmarshalText(text); err != nil {
		panic(xerrors.Errorf("error decoding blob data-URL: %w", err))
	}
}

// Converts BSON binary fields to json. Subtype 0x3 becomes a UUID, subtype 0x0 an
// application/octet-stream data-URL.
type jsonExtBsonBinary struct{}

func (ext *jsonExtBsonBinary) ConvertExt(value interface{}) interface{} {
	var valueBin primitive.Binary
	switch typed := value.(type) {
	case primitive.Binary:
		valueBin = typed
	case *primitive.Binary:
		valueBin = *typed
	}

	if valueBin.Subtype == 0x3 {
		valueUUID, err := uuid.FromBytes(valueBin.Data)
		if err != nil {
			panic(xerrors.Errorf("error converting bson uuid: %w", err))
		}
		return valueUUID.String()
	}

	if valueBin.Subtype == 0x0 {
		return (&jsonExtBlob{}).ConvertExt(
			blob.New(valueBin.Data, string(mimetype.OCTET)),
		)
	}

	panic(xerrors.New("unsupported Binary BSON format"))
}

func (ext *jsonExtBsonBinary) UpdateExt(dest interface{}, value interface{}) {
	panic(
		xerrors.New(
			"decoding to bson binary field not supported -- " +
				"use uuid or blob.Blob type as intermediary",
		),
	)
}

// Converts BSON Raw document to json object.
type jsonExtBsonRaw struct {
	bsonRegistry *bsoncodec.Registry
}

func (ext *jsonExtBsonRaw) ConvertExt(value interface{}) interface{} {
	var valueRaw bson.Raw
	switch typed := value.(type) {
	case bson.Raw:
		valueRaw = typed
	case *bson.Raw:
		valueRaw = *typed
	}

	unmarshaled := make(map[string]interface{})

	if len(valueRaw) > 0 {
		err := bson.UnmarshalWithRegistry(
			ext.bsonRegistry, valueRaw, &unmarshaled,
		)
		if err != nil {
			panic(xerrors.Errorf(
				"error while unmarshalling bson for encoding: %w", err,
			))
		}
	}

	return unmarshaled
}

func (ext *jsonExtBsonRaw) UpdateExt(dest interface{}, value interface{}) {
	panic(xerrors.New("decoding to BSON raw field not supported"))
}

// default JSON encoder for BlobEngine.
type jsonEncoder struct{}

func (encoder *jsonEncoder) Encode(
	engine ContentEngine, writer io.Writer, content interface{},
) error {
	blobEngine := engine.(*BlobEngine)
	jsonEncoder := codec.NewEncoder(writer, blobEngine.jsonHandle)
	return jsonEncoder.Encode(content)
}

func (encoder *jsonEncoder) Decode(
	engine ContentEngine, reader io.Reader, contentReceiver interface{},
) error {
	blobEngine := engine.(*BlobEngine)
	jsonDecoder := codec.NewDecoder(reader, blobEngine.jsonHandle)
	return jsonDecoder.Decode(contentReceiver)
}
