package encoding

import (
	"github.com/illuscio-dev/blobtools-go/blob"
	uuid "github.com/satori/go.uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"golang.org/x/xerrors"
	"io"
	"reflect"
)

// BSON

// BsonCodecOpts holds options for registering new BSON codecs with BlobEngine.
type BsonCodecOpts struct {
	// Type this codec handles encoding / decoding to.
	ValueType reflect.Type

	// Codec to register for this type.
	Codec bsoncodec.ValueCodec
}

var defaultBsonCodecs = []*BsonCodecOpts{
	{
		ValueType: reflect.TypeOf(uuid.UUID{}),
		Codec:     bsonCodecUUID{},
	},
	{
		ValueType: reflect.TypeOf(blob.Blob{}),
		Codec:     bsonCodecBlob{},
	},
}

// CODECS

// bsonCodecUUID Handles encoding and decoding of UUID to and from bson.
type bsonCodecUUID struct{}

// Encodes uuid value to bson.
func (codec bsonCodecUUID) EncodeValue(
	encodeCTX bsoncodec.EncodeContext,
	valueWriter bsonrw.ValueWriter,
	value reflect.Value,
) error {
	valueUUID, _ := value.Interface().(uuid.UUID)
	_ = valueWriter.WriteBinaryWithSubtype(valueUUID.Bytes(), 0x3)

	return nil
}

// Decodes uuid value from bson.
func (codec bsonCodecUUID) DecodeValue(
	decodeCTX bsoncodec.DecodeContext,
	valueReader bsonrw.ValueReader,
	value reflect.Value,
) error {
	bytesUUID, _, _ := valueReader.ReadBinary()
	uuidVal, err := uuid.FromBytes(bytesUUID)

	if err != nil {
		return err
	}

	value.Set(reflect.ValueOf(uuidVal))

	return nil
}

// Field names of the sub-document a blob is stored as.
const (
	bsonBlobTypeKey = "type"
	bsonBlobDataKey = "data"
)

// bsonCodecBlob handles encoding and decoding of blobs as {type, data} sub-documents,
// data being generic (0x0) binary.
type bsonCodecBlob struct{}

// Encodes blob value to bson.
func (codec bsonCodecBlob) EncodeValue(
	encodeCTX bsoncodec.EncodeContext,
	valueWriter bsonrw.ValueWriter,
	value reflect.Value,
) error {
	valueBlob, ok := value.Interface().(blob.Blob)
	if !ok {
		return xerrors.Errorf("bson blob codec cannot encode %v", value.Type())
	}

	documentWriter, err := valueWriter.WriteDocument()
	if err != nil {
		return err
	}

	typeWriter, err := documentWriter.WriteDocumentElement(bsonBlobTypeKey)
	if err != nil {
		return err
	}
	if err := typeWriter.WriteString(valueBlob.Type()); err != nil {
		return err
	}

	dataWriter, err := documentWriter.WriteDocumentElement(bsonBlobDataKey)
	if err != nil {
		return err
	}
	if err := dataWriter.WriteBinaryWithSubtype(valueBlob.Bytes(), 0x0); err != nil {
		return err
	}

	return documentWriter.WriteDocumentEnd()
}

// Decodes blob value from bson.
func (codec bsonCodecBlob) DecodeValue(
	decodeCTX bsoncodec.DecodeContext,
	valueReader bsonrw.ValueReader,
	value reflect.Value,
) error {
	documentReader, err := valueReader.ReadDocument()
	if err != nil {
		return err
	}

	var contentType string
	var data []byte

	for {
		key, elementReader, err := documentReader.ReadElement()
		if err == bsonrw.ErrEOD {
			break
		}
		if err != nil {
			return err
		}

		switch key {
		case bsonBlobTypeKey:
			contentType, err = elementReader.ReadString()
		case bsonBlobDataKey:
			data, _, err = elementReader.ReadBinary()
		default:
			err = elementReader.Skip()
		}
		if err != nil {
			return err
		}
	}

	value.Set(reflect.ValueOf(*blob.New(data, contentType)))

	return nil
}

// bsonEncoder writes BSON documents. A slice or array is written as a plain sequence
// of documents, each self-delimited by its length prefix, and read back the same way.
type bsonEncoder struct{}

func (encoder *bsonEncoder) document(
	blobEngine *BlobEngine, content interface{},
) (bson.Raw, error) {
	switch typed := content.(type) {
	case bson.Raw:
		return typed, nil
	case *bson.Raw:
		return *typed, nil
	}
	return bson.MarshalWithRegistry(blobEngine.bsonRegistry, content)
}

// Whether value holds several documents rather than one.
func isDocumentSequence(value reflect.Value) bool {
	if value.Type() == reflect.TypeOf(bson.Raw{}) {
		return false
	}
	kind := value.Kind()
	return kind == reflect.Array || (kind == reflect.Slice && value.Type() != bytesType)
}

var bytesType = reflect.TypeOf([]byte(nil))

func (encoder *bsonEncoder) Encode(
	engine ContentEngine, writer io.Writer, content interface{},
) error {
	blobEngine := engine.(*BlobEngine)

	value := reflect.Indirect(reflect.ValueOf(content))
	documents := []interface{}{content}
	if value.IsValid() && isDocumentSequence(value) {
		documents = make([]interface{}, value.Len())
		for index := range documents {
			documents[index] = value.Index(index).Interface()
		}
	}

	for index, item := range documents {
		document, err := encoder.document(blobEngine, item)
		if err != nil {
			return xerrors.Errorf("bson document %d: %w", index, err)
		}
		if _, err := writer.Write(document); err != nil {
			return err
		}
	}
	return nil
}

func (encoder *bsonEncoder) Decode(
	engine ContentEngine, reader io.Reader, contentReceiver interface{},
) error {
	blobEngine := engine.(*BlobEngine)

	receiver := reflect.ValueOf(contentReceiver)
	if receiver.Kind() != reflect.Ptr || receiver.IsNil() {
		return xerrors.Errorf("bson receiver must be a non-nil pointer, got %T", contentReceiver)
	}
	target := receiver.Elem()

	if !isDocumentSequence(target) {
		document, err := bson.NewFromIOReader(reader)
		if err != nil {
			return err
		}
		return bson.UnmarshalWithRegistry(blobEngine.bsonRegistry, document, contentReceiver)
	}

	if target.Kind() != reflect.Slice {
		return xerrors.New("bson sequences decode into slices only")
	}
	for {
		document, err := bson.NewFromIOReader(reader)
		if xerrors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return xerrors.Errorf("bson document %d: %w", target.Len(), err)
		}

		element := reflect.New(target.Type().Elem())
		err = bson.UnmarshalWithRegistry(
			blobEngine.bsonRegistry, document, element.Interface(),
		)
		if err != nil {
			return xerrors.Errorf("bson document %d: %w", target.Len(), err)
		}
		target.Set(reflect.Append(target, element.Elem()))
	}
}
