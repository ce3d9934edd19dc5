package blob

import (
	"github.com/illuscio-dev/blobtools-go/bloberrors"
	"github.com/rs/zerolog/log"
	"golang.org/x/xerrors"
)

// Options for blob construction.
type Options struct {
	// Content-type tag for the new blob.
	Type string
}

// Constructor is the canonical blob construction capability. An implementation that
// exists but cannot serve the call must return a bloberrors.CapabilityMismatchError so
// the Factory falls back to builders.
type Constructor interface {
	NewBlob(parts []interface{}, contentType string) (*Blob, error)
}

// Builder accumulates parts and finalizes them into a blob.
type Builder interface {
	Append(part interface{}) error
	GetBlob(contentType string) *Blob
}

// BuilderProvider is a legacy blob construction capability.
type BuilderProvider interface {
	// Name used when logging which provider was selected.
	Name() string
	// Whether the host offers this capability.
	Available() bool
	NewBuilder() Builder
}

// Factory constructs blobs through the first usable capability.
type Factory struct {
	constructor Constructor
	builders    []BuilderProvider
}

// NewFactory returns a factory that tries constructor first and then builders in the
// given order. constructor may be nil.
func NewFactory(constructor Constructor, builders ...BuilderProvider) *Factory {
	return &Factory{
		constructor: constructor,
		builders:    builders,
	}
}

// Picks the content-type from the options argument of Create.
func contentTypeFromOptions(options interface{}) (string, error) {
	switch typed := options.(type) {
	case nil:
		return "", nil
	case string:
		return typed, nil
	case Options:
		return typed.Type, nil
	case *Options:
		if typed == nil {
			return "", nil
		}
		return typed.Type, nil
	default:
		return "", bloberrors.PartTypeError.Newf(
			nil, "blob options must be a string or blob.Options, got %T", options,
		)
	}
}

/*
Create builds a blob from parts. Supported parts are []byte, string (written as its
UTF-8 bytes), *Blob and Blob. options is either the content-type as a plain string, an
Options value or pointer, or nil.

The canonical constructor is attempted first. Only a CapabilityMismatchError from it
causes the ranked builder providers to be tried; the first available builder receives
each part in order and is finalized with the content-type.
*/
func (factory *Factory) Create(parts []interface{}, options interface{}) (*Blob, error) {
	contentType, err := contentTypeFromOptions(options)
	if err != nil {
		return nil, err
	}

	if factory.constructor != nil {
		created, err := factory.constructor.NewBlob(parts, contentType)
		if err == nil {
			return created, nil
		}
		if !xerrors.Is(err, bloberrors.CapabilityMismatchError) {
			return nil, err
		}
		log.Debug().Err(err).Msg("blob constructor unusable, trying builders")
	}

	for _, provider := range factory.builders {
		if !provider.Available() {
			continue
		}
		log.Debug().Str("builder", provider.Name()).Msg("building blob")

		builder := provider.NewBuilder()
		for _, part := range parts {
			if err := builder.Append(part); err != nil {
				return nil, err
			}
		}
		return builder.GetBlob(contentType), nil
	}

	return nil, bloberrors.UnsupportedEnvironmentError.New(
		"no blob constructor or builder is available", nil,
	)
}
