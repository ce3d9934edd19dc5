// Enumeration-like type for content mimetypes.
package mimetype

import (
	"strings"
)

/*
MimeType is used to enumerate the default representation for content encoding types.
Non default MimeTypes can be used by wrapping a custom string:

	MimeType("text/csv")
*/
type MimeType string

const (
	JSON  = MimeType("application/json")
	BSON  = MimeType("application/bson")
	YAML  = MimeType("application/yaml")
	CBOR  = MimeType("application/cbor")
	TEXT  = MimeType("text/plain")
	OCTET = MimeType("application/octet-stream")
	PNG   = MimeType("image/png")
	JPEG  = MimeType("image/jpeg")
	GIF   = MimeType("image/gif")
	WEBP  = MimeType("image/webp")
	BMP   = MimeType("image/bmp")
	TIFF  = MimeType("image/tiff")
	// UNKNOWN is used when the incoming string is blank
	UNKNOWN = MimeType("")
)

// List of default mimeTypes that are encoded to / from objects (as opposed to raw
// text).
var objectMimeTypes = []MimeType{JSON, BSON, YAML, CBOR}

// Image types keyed by the format names returned from image.Decode and by common file
// extensions.
var imageFormats = map[string]MimeType{
	"png":  PNG,
	"jpeg": JPEG,
	"jpg":  JPEG,
	"gif":  GIF,
	"webp": WEBP,
	"bmp":  BMP,
	"tiff": TIFF,
	"tif":  TIFF,
}

// Interface for object used to set headers such as http.Request.Header or
// http.Response.Header
type headerFetcher interface {
	Get(string) string
}

// Extract content type from a message / request header.
func FromHeader(headers headerFetcher) MimeType {
	return FromString(headers.Get("Content-Type"))
}

/*
Convert MimeType from a string. Ignores case and any parameters after ";". If the
MimeType is a default type, multiple formats are respected. For instance, all of the
following will yield "mimetype.JSON":

• "application/json"

• "application/JSON"

• "application/x-json"

• "application/json; charset=utf-8"

• "json"

• "x-json"

Bare image format names ("png", "jpg") yield their image types.
*/
func FromString(incoming string) MimeType {
	if index := strings.IndexByte(incoming, ';'); index >= 0 {
		incoming = incoming[:index]
	}
	incoming = strings.ToLower(strings.TrimSpace(incoming))

	if incoming == "" {
		return UNKNOWN
	}
	if incoming == "text/plain" || incoming == "text" {
		return TEXT
	}
	if imageType, ok := imageFormats[incoming]; ok {
		return imageType
	}

	for _, mimeType := range objectMimeTypes {
		mimeTypeLower := strings.ToLower(string(mimeType))
		mimeTypeLower = strings.Split(mimeTypeLower, "/")[1]
		if strings.HasSuffix(incoming, mimeTypeLower) {
			return mimeType
		}
	}

	return MimeType(incoming)
}

// Returns the image MimeType for a format name as reported by image.Decode, or a file
// extension with or without the leading dot. Returns UNKNOWN for unrecognized formats.
func ForImageFormat(format string) MimeType {
	format = strings.TrimPrefix(strings.ToLower(format), ".")
	if imageType, ok := imageFormats[format]; ok {
		return imageType
	}
	return UNKNOWN
}

// Whether mimeType is an image type.
func (mimeType MimeType) IsImage() bool {
	return strings.HasPrefix(string(mimeType), "image/")
}

// Whether the quality argument of an image encode applies to mimeType.
func (mimeType MimeType) IsLossy() bool {
	return mimeType == JPEG || mimeType == WEBP
}

// Returns mimeType, or fallback if mimeType is UNKNOWN.
func (mimeType MimeType) Or(fallback MimeType) MimeType {
	if mimeType == UNKNOWN {
		return fallback
	}
	return mimeType
}
