package blob

import (
	"encoding/base64"
	"github.com/illuscio-dev/blobtools-go/dataurl"
)

// FromDataURL parses a data-URL and builds a blob of its payload tagged with the URL's
// content-type. Malformed URLs fail with bloberrors.MalformedInputError and bad base64
// with the codec's error.
func (factory *Factory) FromDataURL(url string) (*Blob, error) {
	contentType, data, err := dataurl.Parse(url)
	if err != nil {
		return nil, err
	}
	return factory.Create([]interface{}{data}, contentType)
}

// MarshalText renders the blob as a base64 data-URL.
func (blob Blob) MarshalText() ([]byte, error) {
	return []byte(dataurl.Format(
		blob.contentType, base64.StdEncoding.EncodeToString(blob.data),
	)), nil
}

// UnmarshalText replaces the blob with the content of a base64 data-URL.
func (blob *Blob) UnmarshalText(text []byte) error {
	contentType, data, err := dataurl.Parse(string(text))
	if err != nil {
		return err
	}

	blob.data = data
	blob.contentType = contentType
	return nil
}
