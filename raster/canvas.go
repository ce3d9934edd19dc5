package raster

import (
	"bytes"
	"encoding/base64"
	"github.com/disintegration/gift"
	"github.com/illuscio-dev/blobtools-go/blob"
	"github.com/illuscio-dev/blobtools-go/dataurl"
	"github.com/illuscio-dev/blobtools-go/mimetype"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"math"
)

// DefaultJPEGQuality is used when no valid quality is requested.
const DefaultJPEGQuality = 0.92

type encodeFunc func(writer io.Writer, pixels image.Image, quality float64) error

// Encoders the Go canvas can serialize with. Other types fall back to PNG.
var canvasEncoders = map[mimetype.MimeType]encodeFunc{
	mimetype.PNG: func(writer io.Writer, pixels image.Image, _ float64) error {
		return png.Encode(writer, pixels)
	},
	mimetype.JPEG: func(writer io.Writer, pixels image.Image, quality float64) error {
		return jpeg.Encode(writer, pixels, &jpeg.Options{
			Quality: int(math.Round(quality * 100)),
		})
	},
	mimetype.GIF: func(writer io.Writer, pixels image.Image, _ float64) error {
		return gif.Encode(writer, pixels, nil)
	},
}

// Canvas is the Go host's rendering surface, backed by an *image.RGBA.
type Canvas struct {
	pixels         *image.RGBA
	defaultQuality float64
}

// NewCanvas returns a transparent canvas of the given size.
func NewCanvas(width int, height int) *Canvas {
	return &Canvas{
		pixels:         image.NewRGBA(image.Rect(0, 0, width, height)),
		defaultQuality: DefaultJPEGQuality,
	}
}

func (canvas *Canvas) Width() int  { return canvas.pixels.Rect.Dx() }
func (canvas *Canvas) Height() int { return canvas.pixels.Rect.Dy() }

// Pixels exposes the backing image.
func (canvas *Canvas) Pixels() *image.RGBA {
	return canvas.pixels
}

func (canvas *Canvas) DrawImage(img *ImageHandle, x int, y int) {
	gift.New().DrawAt(canvas.pixels, img.Image(), image.Pt(x, y), gift.CopyOperator)
}

// Returns the quality an encode to outputType runs at: zero for lossless types, the
// canvas default when quality is outside (0, 1].
func (canvas *Canvas) effectiveQuality(outputType mimetype.MimeType, quality float64) float64 {
	if !outputType.IsLossy() {
		return 0
	}
	if quality <= 0 || quality > 1 {
		return canvas.defaultQuality
	}
	return quality
}

// Serializes the canvas, returning the content-type actually produced.
func (canvas *Canvas) encode(
	contentType string, quality float64,
) (mimetype.MimeType, []byte, error) {
	outputType := mimetype.FromString(contentType)
	encoder, ok := canvasEncoders[outputType]
	if !ok {
		outputType = mimetype.PNG
		encoder = canvasEncoders[mimetype.PNG]
	}

	buffer := bytes.Buffer{}
	err := encoder(&buffer, canvas.pixels, canvas.effectiveQuality(outputType, quality))
	if err != nil {
		return "", nil, err
	}
	return outputType, buffer.Bytes(), nil
}

func (canvas *Canvas) ToDataURL(contentType string, quality float64) (string, error) {
	outputType, data, err := canvas.encode(contentType, quality)
	if err != nil {
		return "", err
	}
	return dataurl.Format(
		string(outputType), base64.StdEncoding.EncodeToString(data),
	), nil
}

// ToBlob encodes on its own goroutine and calls callback with the blob, or with nil if
// encoding failed.
func (canvas *Canvas) ToBlob(
	callback func(*blob.Blob), contentType string, quality float64,
) {
	go func() {
		outputType, data, err := canvas.encode(contentType, quality)
		if err != nil {
			callback(nil)
			return
		}
		callback(blob.New(data, string(outputType)))
	}()
}

// Hides ToBlob so only the data-URL path is available.
type dataURLOnlySurface struct {
	Surface
}

// CanvasFactory creates Go canvases.
type CanvasFactory struct {
	// Default quality for lossy encodes.
	DefaultQuality float64
	// When set, created surfaces do not expose ToBlob.
	DisableToBlob bool
}

func (factory *CanvasFactory) NewSurface(width int, height int) Surface {
	canvas := NewCanvas(width, height)
	if factory.DefaultQuality > 0 && factory.DefaultQuality <= 1 {
		canvas.defaultQuality = factory.DefaultQuality
	}
	if factory.DisableToBlob {
		return dataURLOnlySurface{Surface: canvas}
	}
	return canvas
}
