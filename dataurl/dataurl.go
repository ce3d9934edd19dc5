/*
Package dataurl formats and parses base64 data-URLs of the form

	data:<content-type>;base64,<standard base64>

The content-type is read from the segment before the first comma, and the payload is
the base64 text after it.
*/
package dataurl

import (
	"github.com/illuscio-dev/blobtools-go/bloberrors"
	"github.com/illuscio-dev/blobtools-go/bytecodec"
	"regexp"
	"strings"
)

const (
	scheme       = "data:"
	base64Marker = ";base64"
)

// Leading segment of a data-URL: the content-type up to the first ";" or ",".
var leadingSegment = regexp.MustCompile(`(?i)^data:([^;,]+)`)

// Header Format writes for a blob with no content-type.
const untypedHeader = scheme + base64Marker

// Format builds a data-URL from a content-type and base64 text.
func Format(contentType string, base64Text string) string {
	return scheme + contentType + base64Marker + "," + base64Text
}

// Whether value looks like a data-URL.
func IsDataURL(value string) bool {
	return len(value) >= len(scheme) && strings.EqualFold(value[:len(scheme)], scheme)
}

/*
Split separates a data-URL into its content-type and base64 text.

A string that does not start with "data:", has no comma, or has an empty content-type
segment fails with bloberrors.MalformedInputError. The one exception is the untyped
header "data:;base64" that Format writes for an empty content-type, which splits into
an empty content-type. Parameters after the content-type are dropped. The base64 text
is not validated.
*/
func Split(url string) (contentType string, base64Text string, err error) {
	comma := strings.IndexByte(url, ',')
	if comma < 0 {
		return "", "", bloberrors.MalformedInputError.New(
			"data-URL has no ',' separating header and payload", nil,
		)
	}

	header := url[:comma]
	if strings.EqualFold(header, untypedHeader) {
		return "", url[comma+1:], nil
	}

	match := leadingSegment.FindStringSubmatch(header)
	if match == nil {
		return "", "", bloberrors.MalformedInputError.New(
			"data-URL has no content-type segment", nil,
		)
	}

	return match[1], url[comma+1:], nil
}

// Parse returns the content-type and decoded payload of a data-URL. Base64 decode
// failures are returned unchanged from the codec.
func Parse(url string) (contentType string, data []byte, err error) {
	contentType, base64Text, err := Split(url)
	if err != nil {
		return "", nil, err
	}

	binary, err := bytecodec.Base64ToBinaryString(base64Text)
	if err != nil {
		return "", nil, err
	}
	return contentType, bytecodec.BinaryStringToBytes(binary), nil
}
