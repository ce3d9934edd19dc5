package encoding

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which is
// the preferred method of using multiple asserts in a test.

import (
	"bytes"
	"github.com/illuscio-dev/blobtools-go/blob"
	"github.com/illuscio-dev/blobtools-go/mimetype"
	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"testing"
)

type Attachment struct {
	Name string
	File blob.Blob
}

func testAttachment() *Attachment {
	return &Attachment{
		Name: "notes",
		File: *blob.New([]byte("hello"), "text/plain"),
	}
}

func roundTripAttachment(test *testing.T, mimeType mimetype.MimeType) *Attachment {
	assert := assert.New(test)
	engine := createEngine(test)

	data := testAttachment()
	buffer := bytes.Buffer{}

	err := engine.Encode(mimeType, data, &buffer)
	if err != nil {
		test.Fatal(err)
	}

	test.Log("DUMPED:", buffer.String())

	loaded := &Attachment{}
	err = engine.Decode(mimeType, loaded, &buffer)
	if err != nil {
		test.Fatal(err)
	}

	assert.Equal("notes", loaded.Name)
	assert.True(data.File.Equal(&loaded.File), "blob changed in round trip")
	return loaded
}

func TestJsonBlobRoundTrip(test *testing.T) {
	roundTripAttachment(test, mimetype.JSON)
}

func TestBsonBlobRoundTrip(test *testing.T) {
	roundTripAttachment(test, mimetype.BSON)
}

func TestYamlBlobRoundTrip(test *testing.T) {
	roundTripAttachment(test, mimetype.YAML)
}

func TestCborBlobRoundTrip(test *testing.T) {
	roundTripAttachment(test, mimetype.CBOR)
}

func TestJsonBlobIsDataURL(test *testing.T) {
	engine := createEngine(test)

	buffer := bytes.Buffer{}
	err := engine.Encode(mimetype.JSON, testAttachment(), &buffer)
	if err != nil {
		test.Fatal(err)
	}

	assert.Contains(test, buffer.String(), `"data:text/plain;base64,aGVsbG8="`)
}

func TestYamlBlobIsDataURL(test *testing.T) {
	engine := createEngine(test)

	buffer := bytes.Buffer{}
	err := engine.Encode(mimetype.YAML, testAttachment(), &buffer)
	if err != nil {
		test.Fatal(err)
	}

	assert.Contains(test, buffer.String(), "data:text/plain;base64,aGVsbG8=")
}

func TestBsonBlobIsSubDocument(test *testing.T) {
	assert := assert.New(test)
	engine := createEngine(test)

	buffer := bytes.Buffer{}
	err := engine.Encode(mimetype.BSON, testAttachment(), &buffer)
	if err != nil {
		test.Fatal(err)
	}

	type StoredFile struct {
		Type string
		Data []byte
	}
	type Stored struct {
		File StoredFile
	}

	stored := Stored{}
	err = bson.Unmarshal(buffer.Bytes(), &stored)
	if err != nil {
		test.Fatal(err)
	}

	assert.Equal("text/plain", stored.File.Type)
	assert.Equal([]byte("hello"), stored.File.Data)
}

func TestJsonListRoundTrip(test *testing.T) {
	engine := createEngine(test)

	data := []*Name{
		{
			First: "Harry",
			Last:  "Potter",
		},
		{
			First: "Ron",
			Last:  "Weasley",
		},
	}

	buffer := &bytes.Buffer{}

	err := engine.Encode(mimetype.JSON, &data, buffer)
	if err != nil {
		test.Error(err)
	}

	loaded := make([]*Name, 0)
	err = engine.Decode(mimetype.JSON, &loaded, buffer)
	if err != nil {
		test.Error(err)
	}

	assert.Equal(test, data, loaded)
}

func TestBSONListRoundTrip(test *testing.T) {
	engine := createEngine(test)

	data := []Name{
		{First: "Harry", Last: "Potter"},
		{First: "Ron", Last: "Weasley"},
	}

	buffer := &bytes.Buffer{}
	err := engine.Encode(mimetype.BSON, &data, buffer)
	if err != nil {
		test.Error(err)
	}

	loaded := make([]Name, 0)
	err = engine.Decode(mimetype.BSON, &loaded, buffer)
	if err != nil {
		test.Error(err)
	}

	assert.Equal(test, data, loaded)
}

func TestBSONListIsDocumentSequence(test *testing.T) {
	assert := assert.New(test)
	engine := createEngine(test)

	data := []Name{{First: "Harry"}, {First: "Ron"}}

	buffer := bytes.Buffer{}
	err := engine.Encode(mimetype.BSON, data, &buffer)
	if err != nil {
		test.Fatal(err)
	}

	first, err := bson.MarshalWithRegistry(engine.BSONRegistry(), data[0])
	assert.NoError(err)
	second, err := bson.MarshalWithRegistry(engine.BSONRegistry(), data[1])
	assert.NoError(err)

	assert.Equal([]byte(append(first, second...)), buffer.Bytes())
}

func TestBSONListTruncatedError(test *testing.T) {
	engine := createEngine(test)

	encoded, err := engine.EncodeBlob(mimetype.BSON, []Name{{First: "Harry"}, {First: "Ron"}})
	if err != nil {
		test.Fatal(err)
	}
	truncated := encoded.Slice(0, encoded.Size()-3, encoded.Type())

	loaded := make([]Name, 0)
	err = engine.DecodeBlob(truncated, &loaded)
	assert.Error(test, err)
}

func TestBSONReceiverMustBePointer(test *testing.T) {
	engine := createEngine(test)

	err := engine.Decode(mimetype.BSON, []Name{}, &bytes.Buffer{})
	assert.Error(test, err)
}

func TestBsonUUIDToJson(test *testing.T) {
	engine := createEngine(test)

	uuidValue := uuid.NewV4()
	bsonUUID := primitive.Binary{Subtype: 0x3, Data: uuidValue.Bytes()}

	type Receiver struct {
		Id uuid.UUID
	}

	data := bson.M{"Id": bsonUUID}

	buffer := bytes.Buffer{}
	err := engine.Encode(mimetype.JSON, &data, &buffer)
	if err != nil {
		test.Error(err)
	}

	loaded := Receiver{}
	err = engine.Decode(mimetype.JSON, &loaded, &buffer)
	if err != nil {
		test.Error(err)
	}

	assert.Equal(test, uuidValue, loaded.Id)
}

func TestUUIDToBSON(test *testing.T) {
	engine := createEngine(test)

	type Receiver struct {
		Data uuid.UUID
	}

	data := Receiver{Data: uuid.NewV4()}

	buffer := bytes.Buffer{}
	err := engine.Encode(mimetype.BSON, &data, &buffer)
	if err != nil {
		test.Error(err)
	}

	loaded := Receiver{}
	err = engine.Decode(mimetype.BSON, &loaded, &buffer)
	if err != nil {
		test.Error(err)
	}

	assert.Equal(test, data.Data, loaded.Data)
}

func TestBinBlobBSONToJson(test *testing.T) {
	engine := createEngine(test)

	data := bson.M{"File": primitive.Binary{Subtype: 0x0, Data: []byte("raw")}}

	buffer := bytes.Buffer{}
	err := engine.Encode(mimetype.JSON, &data, &buffer)
	if err != nil {
		test.Fatal(err)
	}

	loaded := Attachment{}
	err = engine.Decode(mimetype.JSON, &loaded, &buffer)
	if err != nil {
		test.Fatal(err)
	}

	assert.Equal(test, []byte("raw"), loaded.File.Bytes())
	assert.Equal(test, string(mimetype.OCTET), loaded.File.Type())
}

func TestBSONRawToJson(test *testing.T) {
	engine := createEngine(test)

	rawBytes, err := bson.Marshal(bson.M{"Name": "notes"})
	if err != nil {
		test.Fatal(err)
	}

	data := map[string]interface{}{"Raw": bson.Raw(rawBytes)}

	buffer := bytes.Buffer{}
	err = engine.Encode(mimetype.JSON, &data, &buffer)
	if err != nil {
		test.Fatal(err)
	}

	assert.Contains(test, buffer.String(), `"Raw":{"Name":"notes"}`)
}

func TestBsonBinNotSupportedError(test *testing.T) {
	engine := createEngine(test)

	data := map[string]interface{}{"Data": primitive.Binary{
		Subtype: 0x80,
		Data:    []byte("data"),
	}}

	err := engine.Encode(mimetype.JSON, &data, &bytes.Buffer{})
	assert.Error(test, err)
}

func TestJsonBlobMalformedDataURLError(test *testing.T) {
	engine := createEngine(test)

	loaded := Attachment{}
	err := engine.Decode(
		mimetype.JSON, &loaded, bytes.NewBufferString(`{"File": "not a data url"}`),
	)
	assert.Error(test, err)
}

func TestTextDecodeNeedsString(test *testing.T) {
	engine := createEngine(test)

	err := engine.Decode(mimetype.TEXT, &Name{}, bytes.NewBufferString("text"))
	assert.EqualError(
		test,
		err,
		"decode err: content receiver must be a string pointer to receive a string",
	)
}
