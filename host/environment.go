/*
Package host gathers the capability providers the transcoding layer runs against.

An Environment is the explicit stand-in for a runtime's global capabilities: blob
construction, the object-URL table, blob reading, image loading and rendering surfaces.
NewGoEnvironment builds one from the native Go implementations, with config switches
that disable individual capabilities to reproduce restricted hosts. Tests can assemble
an Environment from fakes directly.
*/
package host

import (
	"github.com/illuscio-dev/blobtools-go/blob"
	"github.com/illuscio-dev/blobtools-go/config"
	"github.com/illuscio-dev/blobtools-go/objecturl"
	"github.com/illuscio-dev/blobtools-go/raster"
	"github.com/illuscio-dev/blobtools-go/reader"
	"github.com/rs/zerolog/log"
	"net/http"
)

// Environment lists the host capabilities. Nil fields are absent capabilities.
type Environment struct {
	// Canonical blob constructor.
	BlobConstructor blob.Constructor
	// Legacy blob builders, in preference order.
	BlobBuilders []blob.BuilderProvider

	// Canonical object-URL table.
	ObjectURLs objecturl.Provider
	// Prefixed object-URL tables, in preference order.
	PrefixedObjectURLs []objecturl.Provider

	// Blob read primitive. May also implement reader.BinaryStringReader.
	FileReader reader.ArrayBufferReader

	// Image loader. When it is a *raster.GoLoader with no Objects registry, the toolkit
	// loads through a copy of it carrying the toolkit's registry.
	ImageLoader raster.Loader
	// Rendering surfaces.
	Surfaces raster.SurfaceFactory
}

// NewGoEnvironment returns the native Go host configured by cfg.
func NewGoEnvironment(cfg config.Config) *Environment {
	environment := &Environment{
		BlobConstructor: &blob.NativeConstructor{Disabled: cfg.DisableNativeBlob},
		BlobBuilders: []blob.BuilderProvider{
			&blob.BufferBuilderProvider{Disabled: cfg.DisableBlobBuilder},
		},
		FileReader: reader.NewGoHost(!cfg.DisableBinaryStringRead),
		ImageLoader: &raster.GoLoader{
			Client:        http.DefaultClient,
			UserAgent:     cfg.HTTPUserAgent,
			Authorization: cfg.HTTPAuthorization,
			AllowFiles:    cfg.AllowFileRefs,
		},
		Surfaces: &raster.CanvasFactory{
			DefaultQuality: cfg.DefaultJPEGQuality,
			DisableToBlob:  cfg.DisableNativeToBlob,
		},
	}

	objectURLs := objecturl.NewMemoryProvider(cfg.ObjectURLOrigin)
	if cfg.ObjectURLPrefixed {
		environment.PrefixedObjectURLs = []objecturl.Provider{objectURLs}
	} else {
		environment.ObjectURLs = objectURLs
	}

	log.Debug().
		Bool("nativeBlob", !cfg.DisableNativeBlob).
		Bool("blobBuilder", !cfg.DisableBlobBuilder).
		Bool("binaryStringRead", !cfg.DisableBinaryStringRead).
		Bool("nativeToBlob", !cfg.DisableNativeToBlob).
		Bool("prefixedObjectURLs", cfg.ObjectURLPrefixed).
		Msg("go host environment created")

	return environment
}
