package encoding

import (
	"bytes"
	"github.com/illuscio-dev/blobtools-go/blob"
	"github.com/illuscio-dev/blobtools-go/bloberrors"
	"github.com/illuscio-dev/blobtools-go/mimetype"
	"github.com/rs/zerolog/log"
	"github.com/ugorji/go/codec"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"golang.org/x/xerrors"
	"io"
	"io/ioutil"
	"reflect"
	"strings"
)

// ContentEngine turns structured content into bytes of a mimetype and back. Blobs carry
// their mimetype as their content-type, so EncodeBlob and DecodeBlob need no type
// argument on the way back.
type ContentEngine interface {
	SetEncoder(mimeType mimetype.MimeType, encoder Encoder)
	SetDecoder(mimeType mimetype.MimeType, decoder Decoder)

	HandlesEncode(mimeType mimetype.MimeType) bool
	HandlesDecode(mimeType mimetype.MimeType) bool
	// Whether both an encoder and a decoder are registered for mimeType.
	Handles(mimeType mimetype.MimeType) bool

	// Whether payloads of unknown type are tried against every decoder.
	SniffType() bool

	Decode(
		mimeType mimetype.MimeType, contentReceiver interface{}, reader io.Reader,
	) error
	Encode(mimeType mimetype.MimeType, content interface{}, writer io.Writer) error

	EncodeBlob(mimeType mimetype.MimeType, content interface{}) (*blob.Blob, error)
	DecodeBlob(source *blob.Blob, contentReceiver interface{}) error
}

/*
BlobEngine is the default ContentEngine. Create it with NewContentEngine.

Registered Mimetypes

application/json, application/bson, application/yaml, application/cbor, text/plain and
application/octet-stream.

Blob Fields

A blob.Blob inside encoded content keeps its content-type:

• JSON, YAML and CBOR write it as a base64 data-URL string.

• BSON writes it as a {type, data} sub-document with generic binary data.

JSON (https://godoc.org/github.com/ugorji/go/codec) also renders BSON values: binary
of subtype 0x3 as a UUID string, subtype 0x0 as an application/octet-stream data-URL,
and raw documents as objects.

Unknown Types

When no mimetype is given, strings are text/plain and byte buffers or blobs are
application/octet-stream. Other content encodes as JSON. Decoding other receivers with
no mimetype tries each decoder in registration order when sniffing is enabled, and
fails otherwise.

Encoder and decoder panics are recovered and returned as errors.
*/
type BlobEngine struct {
	encoders map[mimetype.MimeType]Encoder
	decoders map[mimetype.MimeType]Decoder
	// Decoder mimetypes in registration order, for sniffing.
	sniffOrder []mimetype.MimeType
	sniff      bool

	jsonHandle   *codec.JsonHandle
	bsonRegistry *bsoncodec.Registry
	bsonCodecs   []*BsonCodecOpts

	// Builds the blobs returned from EncodeBlob.
	factory *blob.Factory
}

func (engine *BlobEngine) SetEncoder(mimeType mimetype.MimeType, encoder Encoder) {
	engine.encoders[mimeType] = encoder
}

func (engine *BlobEngine) SetDecoder(mimeType mimetype.MimeType, decoder Decoder) {
	if _, replacing := engine.decoders[mimeType]; !replacing {
		engine.sniffOrder = append(engine.sniffOrder, mimeType)
	}
	engine.decoders[mimeType] = decoder
}

func (engine *BlobEngine) SniffType() bool {
	return engine.sniff
}

func (engine *BlobEngine) HandlesEncode(mimeType mimetype.MimeType) bool {
	return engine.encoders[mimeType] != nil
}

func (engine *BlobEngine) HandlesDecode(mimeType mimetype.MimeType) bool {
	return engine.decoders[mimeType] != nil
}

func (engine *BlobEngine) Handles(mimeType mimetype.MimeType) bool {
	return engine.HandlesEncode(mimeType) && engine.HandlesDecode(mimeType)
}

// Runs an encoder or decoder, turning a panic into an error.
func guard(operation string, run func() error) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = xerrors.Errorf("panic during %s: %v", operation, recovered)
		}
	}()
	return run()
}

// The mimetype implied by content when the caller gives none. UNKNOWN when decoding
// into a receiver only sniffing can place.
func impliedType(content interface{}, encoding bool) mimetype.MimeType {
	switch content.(type) {
	case string, *string:
		return mimetype.TEXT
	case []byte, *[]byte, *blob.Blob:
		return mimetype.OCTET
	}
	if encoding {
		return mimetype.JSON
	}
	return mimetype.UNKNOWN
}

func (engine *BlobEngine) Encode(
	mimeType mimetype.MimeType, content interface{}, writer io.Writer,
) error {
	mimeType = mimeType.Or(impliedType(content, true))

	encoder, ok := engine.encoders[mimeType]
	if !ok {
		return xerrors.New("no encoder for " + string(mimeType))
	}

	err := guard("encode", func() error {
		return encoder.Encode(engine, writer, content)
	})
	if err != nil {
		return xerrors.Errorf("encode err: %w", err)
	}
	return nil
}

// Decode reads the whole payload from reader, closing it when it is an io.Closer, and
// decodes it into contentReceiver.
func (engine *BlobEngine) Decode(
	mimeType mimetype.MimeType, contentReceiver interface{}, reader io.Reader,
) error {
	if closer, ok := reader.(io.Closer); ok {
		defer func() {
			_ = closer.Close()
		}()
	}

	payload, err := ioutil.ReadAll(reader)
	if err != nil {
		return xerrors.Errorf("error reading content: %w", err)
	}
	return engine.decodePayload(mimeType, contentReceiver, payload)
}

func (engine *BlobEngine) decodePayload(
	mimeType mimetype.MimeType, contentReceiver interface{}, payload []byte,
) error {
	mimeType = mimeType.Or(impliedType(contentReceiver, false))

	if mimeType == mimetype.UNKNOWN {
		if !engine.sniff {
			return xerrors.New("mimetype is unknown and sniffing is disabled")
		}
		return engine.sniffPayload(contentReceiver, payload)
	}

	decoder, ok := engine.decoders[mimeType]
	if !ok {
		return xerrors.New("no decoder for " + string(mimeType))
	}

	err := guard("decode", func() error {
		return decoder.Decode(engine, bytes.NewReader(payload), contentReceiver)
	})
	if err != nil {
		return xerrors.Errorf("decode err: %w", err)
	}
	return nil
}

// Tries each decoder in registration order until one accepts payload.
func (engine *BlobEngine) sniffPayload(contentReceiver interface{}, payload []byte) error {
	failures := make([]string, 0, len(engine.sniffOrder))

	for _, mimeType := range engine.sniffOrder {
		decoder := engine.decoders[mimeType]
		err := guard("decode", func() error {
			return decoder.Decode(engine, bytes.NewReader(payload), contentReceiver)
		})
		if err == nil {
			log.Debug().Str("type", string(mimeType)).Msg("sniffed content type")
			return nil
		}
		failures = append(failures, string(mimeType)+": "+err.Error())
	}

	return xerrors.Errorf(
		"content matched no decoder (%s)", strings.Join(failures, "; "),
	)
}

// EncodeBlob encodes content as mimeType, or the type implied by content when
// UNKNOWN, into a blob tagged with that type. Failures are bloberrors.EncodingError.
func (engine *BlobEngine) EncodeBlob(
	mimeType mimetype.MimeType, content interface{},
) (*blob.Blob, error) {
	mimeType = mimeType.Or(impliedType(content, true))

	buffer := bytes.Buffer{}
	if err := engine.Encode(mimeType, content, &buffer); err != nil {
		return nil, bloberrors.EncodingError.New(
			"content could not be encoded as "+string(mimeType), err,
		)
	}
	return engine.factory.Create([]interface{}{buffer.Bytes()}, string(mimeType))
}

// DecodeBlob decodes source with the decoder its content-type names. Failures are
// bloberrors.EncodingError.
func (engine *BlobEngine) DecodeBlob(source *blob.Blob, contentReceiver interface{}) error {
	mimeType := mimetype.FromString(source.Type())

	if err := engine.decodePayload(mimeType, contentReceiver, source.Bytes()); err != nil {
		return bloberrors.EncodingError.New(
			"blob content could not be decoded from "+source.Type(), err,
		)
	}
	return nil
}

// JSON handle used by the JSON encoder.
func (engine *BlobEngine) JSONHandle() *codec.JsonHandle {
	return engine.jsonHandle
}

// BSON registry used by the BSON encoder and the JSON bson.Raw extension.
func (engine *BlobEngine) BSONRegistry() *bsoncodec.Registry {
	return engine.bsonRegistry
}

// AddJSONExtensions registers extensions on the JSON handle.
func (engine *BlobEngine) AddJSONExtensions(extensions []*JSONExtensionOpts) error {
	for _, extension := range extensions {
		err := engine.jsonHandle.SetInterfaceExt(
			extension.ValueType, extension.Tag, extension.ExtInterface,
		)
		if err != nil {
			return xerrors.Errorf("error adding json extension for %v: %w",
				extension.ValueType, err,
			)
		}
	}
	return nil
}

// AddBSONCodecs rebuilds the BSON registry with codecs added to those already
// registered.
func (engine *BlobEngine) AddBSONCodecs(codecs []*BsonCodecOpts) error {
	engine.bsonCodecs = append(engine.bsonCodecs, codecs...)

	builder := bsoncodec.NewRegistryBuilder()
	bsoncodec.DefaultValueEncoders{}.RegisterDefaultEncoders(builder)
	bsoncodec.DefaultValueDecoders{}.RegisterDefaultDecoders(builder)
	for _, codecOpts := range engine.bsonCodecs {
		builder.RegisterCodec(codecOpts.ValueType, codecOpts.Codec)
	}
	engine.bsonRegistry = builder.Build()

	// The raw document extension renders through the registry, so it has to see the
	// new codecs.
	err := engine.jsonHandle.SetInterfaceExt(
		reflect.TypeOf(bson.Raw{}), 3, &jsonExtBsonRaw{engine.bsonRegistry},
	)
	if err != nil {
		return xerrors.Errorf("error adding bson raw json extension: %w", err)
	}
	return nil
}

// NewContentEngine returns a BlobEngine with every default mimetype registered.
// factory builds the blobs from EncodeBlob; nil means the native Go constructor.
func NewContentEngine(allowSniff bool, factory *blob.Factory) (*BlobEngine, error) {
	if factory == nil {
		factory = blob.NewFactory(&blob.NativeConstructor{})
	}

	engine := &BlobEngine{
		encoders:   make(map[mimetype.MimeType]Encoder),
		decoders:   make(map[mimetype.MimeType]Decoder),
		sniff:      allowSniff,
		jsonHandle: &codec.JsonHandle{},
		factory:    factory,
	}

	// Registration order is sniffing order: strict formats first.
	defaults := []struct {
		mimeType mimetype.MimeType
		handler  interface {
			Encoder
			Decoder
		}
	}{
		{mimetype.JSON, &jsonEncoder{}},
		{mimetype.BSON, &bsonEncoder{}},
		{mimetype.CBOR, &cborEncoder{}},
		{mimetype.YAML, &yamlEncoder{}},
		{mimetype.TEXT, &textEncoder{}},
		{mimetype.OCTET, &octetEncoder{}},
	}
	for _, registration := range defaults {
		engine.SetEncoder(registration.mimeType, registration.handler)
		engine.SetDecoder(registration.mimeType, registration.handler)
	}

	if err := engine.AddJSONExtensions(defaultJSONExtensions); err != nil {
		return nil, xerrors.Errorf("error adding default json extensions: %w", err)
	}
	if err := engine.AddBSONCodecs(defaultBsonCodecs); err != nil {
		return nil, xerrors.Errorf("error adding default bson codecs: %w", err)
	}

	return engine, nil
}
