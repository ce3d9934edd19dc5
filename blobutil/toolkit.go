package blobutil

import (
	"github.com/illuscio-dev/blobtools-go/blob"
	"github.com/illuscio-dev/blobtools-go/bloberrors"
	"github.com/illuscio-dev/blobtools-go/bytecodec"
	"github.com/illuscio-dev/blobtools-go/config"
	"github.com/illuscio-dev/blobtools-go/encoding"
	"github.com/illuscio-dev/blobtools-go/future"
	"github.com/illuscio-dev/blobtools-go/host"
	"github.com/illuscio-dev/blobtools-go/logging"
	"github.com/illuscio-dev/blobtools-go/mimetype"
	"github.com/illuscio-dev/blobtools-go/objecturl"
	"github.com/illuscio-dev/blobtools-go/raster"
	"github.com/illuscio-dev/blobtools-go/reader"
	"github.com/rs/zerolog/log"
	"golang.org/x/xerrors"
)

// Toolkit exposes every transcoding operation over one host environment. Create it
// with New, FromConfig or Default.
type Toolkit struct {
	factory  *blob.Factory
	objects  *objecturl.Registry
	reader   *reader.Reader
	pipeline *raster.Pipeline
	engine   *encoding.BlobEngine

	// Whether the environment can load images and render surfaces.
	imaging bool
}

/*
New returns a Toolkit over environment. Capability selection happens here once: the
object-URL provider is picked and cached, and a *raster.GoLoader with no registry of its
own is copied and the copy given the toolkit's registry so "blob:" references resolve.
The environment itself is never modified.

allowSniff lets DecodeBlob try every decoder for blobs with no content-type.
*/
func New(environment *host.Environment, allowSniff bool) (*Toolkit, error) {
	if environment == nil {
		environment = &host.Environment{}
	}

	factory := blob.NewFactory(environment.BlobConstructor, environment.BlobBuilders...)
	objects := objecturl.NewRegistry(
		environment.ObjectURLs, environment.PrefixedObjectURLs...,
	)

	loader := environment.ImageLoader
	if goLoader, ok := loader.(*raster.GoLoader); ok && goLoader.Objects == nil {
		attached := *goLoader
		attached.Objects = objects
		loader = &attached
	}

	engine, err := encoding.NewContentEngine(allowSniff, factory)
	if err != nil {
		return nil, xerrors.Errorf("error creating content engine: %w", err)
	}

	toolkit := &Toolkit{
		factory:  factory,
		objects:  objects,
		pipeline: raster.NewPipeline(loader, environment.Surfaces, factory),
		engine:   engine,
		imaging:  loader != nil && environment.Surfaces != nil,
	}
	if environment.FileReader != nil {
		toolkit.reader = reader.New(environment.FileReader)
	}

	log.Debug().
		Bool("blobRead", toolkit.reader != nil).
		Bool("imaging", toolkit.imaging).
		Msg("toolkit created")

	return toolkit, nil
}

// FromConfig sets up logging from cfg and returns a Toolkit over the Go host
// environment cfg describes.
func FromConfig(cfg config.Config) (*Toolkit, error) {
	logging.Setup(cfg.LogLevel, cfg.LogConsole)
	return New(host.NewGoEnvironment(cfg), cfg.SniffContent)
}

// Default loads the configuration from the environment (and .env) and returns a Toolkit
// over the Go host.
func Default() (*Toolkit, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, xerrors.Errorf("error loading config: %w", err)
	}
	return FromConfig(cfg)
}

// Content engine used by EncodeBlob and DecodeBlob. Use it to register additional
// encoders, JSON extensions or BSON codecs.
func (toolkit *Toolkit) Engine() *encoding.BlobEngine {
	return toolkit.engine
}

func (toolkit *Toolkit) noReader() error {
	return bloberrors.UnsupportedEnvironmentError.New(
		"no blob read capability is available", nil,
	)
}

func (toolkit *Toolkit) noImaging() error {
	return bloberrors.UnsupportedEnvironmentError.New(
		"no image loader or rendering surface is available", nil,
	)
}

// BLOB CONSTRUCTION

// CreateBlob builds a blob from parts. See blob.Factory.Create for accepted parts and
// options.
func (toolkit *Toolkit) CreateBlob(
	parts []interface{}, options interface{},
) (*blob.Blob, error) {
	return toolkit.factory.Create(parts, options)
}

// BinaryStringToArrayBuffer converts a binary-string into its bytes.
func (toolkit *Toolkit) BinaryStringToArrayBuffer(binary string) []byte {
	return bytecodec.BinaryStringToBytes(binary)
}

// ArrayBufferToBinaryString converts bytes into a binary-string.
func (toolkit *Toolkit) ArrayBufferToBinaryString(data []byte) string {
	return bytecodec.BytesToBinaryString(data)
}

// Base64ToBlob decodes standard base64 text into a blob tagged with contentType.
// Malformed text fails with the base64 codec's error.
func (toolkit *Toolkit) Base64ToBlob(text string, contentType string) (*blob.Blob, error) {
	binary, err := bytecodec.Base64ToBinaryString(text)
	if err != nil {
		return nil, err
	}
	return toolkit.BinaryStringToBlob(binary, contentType)
}

// BinaryStringToBlob builds a blob from the bytes of a binary-string.
func (toolkit *Toolkit) BinaryStringToBlob(
	binary string, contentType string,
) (*blob.Blob, error) {
	return toolkit.ArrayBufferToBlob(bytecodec.BinaryStringToBytes(binary), contentType)
}

// ArrayBufferToBlob builds a blob holding a copy of data.
func (toolkit *Toolkit) ArrayBufferToBlob(
	data []byte, contentType string,
) (*blob.Blob, error) {
	return toolkit.factory.Create([]interface{}{data}, contentType)
}

// DataURLToBlob builds a blob from a base64 data-URL, tagged with the URL's
// content-type.
func (toolkit *Toolkit) DataURLToBlob(url string) (*blob.Blob, error) {
	return toolkit.factory.FromDataURL(url)
}

// BLOB READING

// BlobToBase64 reads b as standard base64 text.
func (toolkit *Toolkit) BlobToBase64(b *blob.Blob) *future.Future[string] {
	if toolkit.reader == nil {
		return future.Rejected[string](toolkit.noReader())
	}
	return toolkit.reader.ReadAsBase64(b)
}

// BlobToBinaryString reads b as a binary-string.
func (toolkit *Toolkit) BlobToBinaryString(b *blob.Blob) *future.Future[string] {
	if toolkit.reader == nil {
		return future.Rejected[string](toolkit.noReader())
	}
	return toolkit.reader.ReadAsBinaryString(b)
}

// BlobToArrayBuffer reads the bytes of b.
func (toolkit *Toolkit) BlobToArrayBuffer(b *blob.Blob) *future.Future[[]byte] {
	if toolkit.reader == nil {
		return future.Rejected[[]byte](toolkit.noReader())
	}
	return toolkit.reader.ReadAsArrayBuffer(b)
}

// BlobToDataURL reads b as a base64 data-URL carrying b's content-type.
func (toolkit *Toolkit) BlobToDataURL(b *blob.Blob) *future.Future[string] {
	if toolkit.reader == nil {
		return future.Rejected[string](toolkit.noReader())
	}
	return toolkit.reader.ReadAsDataURL(b)
}

// IMAGES

// ImageRefToDataURL loads an image reference and re-encodes it as a data-URL of
// options.Type (image/png when empty).
func (toolkit *Toolkit) ImageRefToDataURL(
	reference string, options raster.Options,
) *future.Future[string] {
	if !toolkit.imaging {
		return future.Rejected[string](toolkit.noImaging())
	}
	return toolkit.pipeline.ReferenceToDataURL(reference, options)
}

// ImageRefToBlob loads an image reference and re-encodes it as a blob of options.Type
// (image/png when empty).
func (toolkit *Toolkit) ImageRefToBlob(
	reference string, options raster.Options,
) *future.Future[*blob.Blob] {
	if !toolkit.imaging {
		return future.Rejected[*blob.Blob](toolkit.noImaging())
	}
	return toolkit.pipeline.ReferenceToBlob(reference, options)
}

// SurfaceToBlob encodes a rendering surface as a blob of contentType (image/png when
// empty). quality only applies to lossy types.
func (toolkit *Toolkit) SurfaceToBlob(
	surface raster.Surface, contentType string, quality float64,
) *future.Future[*blob.Blob] {
	return toolkit.pipeline.SurfaceToBlob(surface, contentType, quality)
}

// OBJECT URLS

// RegisterObjectURL returns a fresh object-URL handle for b.
func (toolkit *Toolkit) RegisterObjectURL(b *blob.Blob) (string, error) {
	return toolkit.objects.Register(b)
}

// RevokeObjectURL releases handle. Revoking an unknown handle does nothing.
func (toolkit *Toolkit) RevokeObjectURL(handle string) error {
	return toolkit.objects.Revoke(handle)
}

// ResolveObjectURL returns the blob behind a live handle.
func (toolkit *Toolkit) ResolveObjectURL(handle string) (*blob.Blob, bool) {
	return toolkit.objects.Resolve(handle)
}

// STRUCTURED CONTENT

// EncodeBlob encodes content as mimeType into a blob tagged with that type.
func (toolkit *Toolkit) EncodeBlob(
	mimeType mimetype.MimeType, content interface{},
) (*blob.Blob, error) {
	return toolkit.engine.EncodeBlob(mimeType, content)
}

// DecodeBlob decodes b into contentReceiver using the decoder for b's content-type.
func (toolkit *Toolkit) DecodeBlob(b *blob.Blob, contentReceiver interface{}) error {
	return toolkit.engine.DecodeBlob(b, contentReceiver)
}
