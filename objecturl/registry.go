/*
Package objecturl maps ephemeral object-URL handles to blobs.

The Registry is a thin façade over a host Provider. It keeps no bookkeeping of its own:
every handle returned by Register must be released by the caller through Revoke. A
revoked handle never resolves again; a live handle always resolves to the exact blob it
was registered with.
*/
package objecturl

import (
	"github.com/illuscio-dev/blobtools-go/blob"
	"github.com/illuscio-dev/blobtools-go/bloberrors"
	"github.com/rs/zerolog/log"
)

// Provider is a host object-URL table.
type Provider interface {
	// Registers b and returns a handle no other registration has received.
	CreateObjectURL(b *blob.Blob) string
	// Releases handle. Unknown or already released handles are ignored.
	RevokeObjectURL(handle string)
	// Returns the blob registered under handle, if it is live.
	ResolveObjectURL(handle string) (*blob.Blob, bool)
}

// Registry selects the canonical provider if present, otherwise the first prefixed
// provider. The choice is made once when the registry is created.
type Registry struct {
	provider Provider
}

// NewRegistry returns a registry over canonical, or over the first non-nil prefixed
// provider when canonical is nil.
func NewRegistry(canonical Provider, prefixed ...Provider) *Registry {
	registry := &Registry{provider: canonical}
	if canonical != nil {
		return registry
	}
	for _, candidate := range prefixed {
		if candidate != nil {
			log.Debug().Msg("using prefixed object-URL provider")
			registry.provider = candidate
			break
		}
	}
	return registry
}

func (registry *Registry) selected() (Provider, error) {
	if registry.provider == nil {
		return nil, bloberrors.UnsupportedEnvironmentError.New(
			"no object-URL provider is available", nil,
		)
	}
	return registry.provider, nil
}

// Register returns a fresh handle for b.
func (registry *Registry) Register(b *blob.Blob) (string, error) {
	provider, err := registry.selected()
	if err != nil {
		return "", err
	}
	return provider.CreateObjectURL(b), nil
}

// Revoke releases handle. Behavior for unknown handles is the provider's.
func (registry *Registry) Revoke(handle string) error {
	provider, err := registry.selected()
	if err != nil {
		return err
	}
	provider.RevokeObjectURL(handle)
	return nil
}

// Resolve returns the blob behind a live handle.
func (registry *Registry) Resolve(handle string) (*blob.Blob, bool) {
	provider, err := registry.selected()
	if err != nil {
		return nil, false
	}
	return provider.ResolveObjectURL(handle)
}
