package raster

import (
	"github.com/illuscio-dev/blobtools-go/blob"
	"github.com/illuscio-dev/blobtools-go/bloberrors"
	"github.com/illuscio-dev/blobtools-go/future"
	"github.com/illuscio-dev/blobtools-go/mimetype"
	"github.com/rs/zerolog/log"
)

// Options for the reference conversions.
type Options struct {
	// Output content-type. Defaults to image/png.
	Type string
	// Cross-origin policy applied when loading.
	CrossOrigin string
	// Encoder quality in (0, 1] for lossy types. Other values select the host default.
	Quality float64
}

// Returns the output content-type, image/png when unset.
func outputType(contentType string) string {
	if contentType == "" {
		return string(mimetype.PNG)
	}
	return contentType
}

// Pipeline runs load, rasterize and encode against host capabilities.
type Pipeline struct {
	loader   Loader
	surfaces SurfaceFactory
	factory  *blob.Factory
}

// NewPipeline returns a pipeline. factory builds blobs on the data-URL fallback path.
func NewPipeline(loader Loader, surfaces SurfaceFactory, factory *blob.Factory) *Pipeline {
	return &Pipeline{
		loader:   loader,
		surfaces: surfaces,
		factory:  factory,
	}
}

// Load resolves reference into an image. A host load failure rejects the future with
// the host's error.
func (pipeline *Pipeline) Load(
	reference string, crossOrigin string,
) *future.Future[*ImageHandle] {
	result, resolve, reject := future.New[*ImageHandle]()
	pipeline.loader.Load(reference, crossOrigin, resolve, reject)
	return result
}

// Rasterize draws img once onto a new surface of its natural size.
func (pipeline *Pipeline) Rasterize(img *ImageHandle) Surface {
	log.Debug().
		Str("format", string(img.Format())).
		Int("width", img.Width()).
		Int("height", img.Height()).
		Msg("rasterizing image")

	surface := pipeline.surfaces.NewSurface(img.Width(), img.Height())
	surface.DrawImage(img, 0, 0)
	return surface
}

// SurfaceToBlob encodes surface as a blob of contentType (image/png when empty).
func (pipeline *Pipeline) SurfaceToBlob(
	surface Surface, contentType string, quality float64,
) *future.Future[*blob.Blob] {
	contentType = outputType(contentType)

	if blobSurface, ok := surface.(BlobSurface); ok {
		result, resolve, reject := future.New[*blob.Blob]()
		blobSurface.ToBlob(
			func(encoded *blob.Blob) {
				if encoded == nil {
					reject(bloberrors.HostIOFailure.New(
						"surface produced no blob for "+contentType, nil,
					))
					return
				}
				resolve(encoded)
			},
			contentType,
			quality,
		)
		return result
	}

	log.Debug().Str("type", contentType).Msg("surface has no ToBlob, using data-URL")
	url, err := surface.ToDataURL(contentType, quality)
	if err != nil {
		return future.Rejected[*blob.Blob](err)
	}
	encoded, err := pipeline.factory.FromDataURL(url)
	if err != nil {
		return future.Rejected[*blob.Blob](err)
	}
	return future.Resolved(encoded)
}

// ReferenceToDataURL loads reference, rasterizes it and serializes the surface as a
// data-URL.
func (pipeline *Pipeline) ReferenceToDataURL(
	reference string, options Options,
) *future.Future[string] {
	return future.Then(
		pipeline.Load(reference, options.CrossOrigin),
		func(img *ImageHandle) (string, error) {
			surface := pipeline.Rasterize(img)
			return surface.ToDataURL(outputType(options.Type), options.Quality)
		},
	)
}

// ReferenceToBlob loads reference, rasterizes it and encodes the surface as a blob.
func (pipeline *Pipeline) ReferenceToBlob(
	reference string, options Options,
) *future.Future[*blob.Blob] {
	return future.Chain(
		pipeline.Load(reference, options.CrossOrigin),
		func(img *ImageHandle) *future.Future[*blob.Blob] {
			surface := pipeline.Rasterize(img)
			return pipeline.SurfaceToBlob(surface, options.Type, options.Quality)
		},
	)
}
