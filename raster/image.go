package raster

import (
	"github.com/illuscio-dev/blobtools-go/blob"
	"github.com/illuscio-dev/blobtools-go/mimetype"
	"image"
	"strings"
)

// Cross-origin policies accepted by Load.
const (
	CrossOriginNone           = ""
	CrossOriginAnonymous      = "anonymous"
	CrossOriginUseCredentials = "use-credentials"
)

// Returns the canonical form of a cross-origin policy. Unknown non-empty values are
// treated as CrossOriginAnonymous.
func NormalizeCrossOrigin(policy string) string {
	switch strings.ToLower(strings.TrimSpace(policy)) {
	case CrossOriginNone:
		return CrossOriginNone
	case CrossOriginUseCredentials:
		return CrossOriginUseCredentials
	default:
		return CrossOriginAnonymous
	}
}

// ImageHandle is a loaded image: its natural dimensions and decoded pixels. Only the
// first frame of multi-frame formats is held.
type ImageHandle struct {
	reference   string
	crossOrigin string
	format      mimetype.MimeType
	pixels      image.Image
}

// NewImageHandle is used by Loader implementations to report a decoded image. format is
// the name reported by image.Decode or a file extension.
func NewImageHandle(
	reference string, crossOrigin string, format string, pixels image.Image,
) *ImageHandle {
	return &ImageHandle{
		reference:   reference,
		crossOrigin: crossOrigin,
		format:      mimetype.ForImageFormat(format),
		pixels:      pixels,
	}
}

func (handle *ImageHandle) Reference() string   { return handle.reference }
func (handle *ImageHandle) CrossOrigin() string { return handle.crossOrigin }
func (handle *ImageHandle) Image() image.Image  { return handle.pixels }
func (handle *ImageHandle) Width() int          { return handle.pixels.Bounds().Dx() }
func (handle *ImageHandle) Height() int         { return handle.pixels.Bounds().Dy() }

// Format is the decoded image's content-type, or mimetype.UNKNOWN.
func (handle *ImageHandle) Format() mimetype.MimeType { return handle.format }

// Loader is the host image-loading primitive. It applies crossOrigin before resolution
// starts and signals completion by calling exactly one of onLoad or onError.
type Loader interface {
	Load(
		reference string,
		crossOrigin string,
		onLoad func(*ImageHandle),
		onError func(error),
	)
}

// Surface is a 2D pixel buffer an image is drawn onto.
type Surface interface {
	Width() int
	Height() int
	// Draws img at natural size with its top-left corner at (x, y).
	DrawImage(img *ImageHandle, x int, y int)
	// Serializes the surface synchronously. quality only affects lossy types.
	ToDataURL(contentType string, quality float64) (string, error)
}

// BlobSurface is a Surface with a direct surface-to-blob primitive. callback is called
// once with the encoded blob.
type BlobSurface interface {
	Surface
	ToBlob(callback func(*blob.Blob), contentType string, quality float64)
}

// SurfaceFactory creates host surfaces.
type SurfaceFactory interface {
	NewSurface(width int, height int) Surface
}
