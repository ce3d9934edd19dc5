package objecturl

import (
	"github.com/illuscio-dev/blobtools-go/blob"
	"github.com/rs/zerolog/log"
	uuid "github.com/satori/go.uuid"
	"strings"
	"sync"
)

// Scheme of handles created by MemoryProvider.
const Scheme = "blob:"

// MemoryProvider is the Go host's in-process object-URL table.
type MemoryProvider struct {
	mu     sync.RWMutex
	data   map[string]*blob.Blob
	origin string
}

// NewMemoryProvider returns an empty table whose handles look like
// "blob:<origin>/<uuid>". origin may be empty.
func NewMemoryProvider(origin string) *MemoryProvider {
	return &MemoryProvider{
		data:   make(map[string]*blob.Blob),
		origin: strings.TrimSuffix(origin, "/"),
	}
}

func (provider *MemoryProvider) CreateObjectURL(b *blob.Blob) string {
	handle := Scheme + provider.origin + "/" + uuid.NewV4().String()

	provider.mu.Lock()
	provider.data[handle] = b
	provider.mu.Unlock()

	log.Debug().Str("handle", handle).Int("bytes", b.Size()).Msg("object-URL created")
	return handle
}

func (provider *MemoryProvider) RevokeObjectURL(handle string) {
	provider.mu.Lock()
	_, ok := provider.data[handle]
	if ok {
		delete(provider.data, handle)
	}
	provider.mu.Unlock()

	if ok {
		log.Debug().Str("handle", handle).Msg("object-URL revoked")
	}
}

func (provider *MemoryProvider) ResolveObjectURL(handle string) (*blob.Blob, bool) {
	provider.mu.RLock()
	b, ok := provider.data[handle]
	provider.mu.RUnlock()
	return b, ok
}

// Number of live handles.
func (provider *MemoryProvider) Len() int {
	provider.mu.RLock()
	defer provider.mu.RUnlock()
	return len(provider.data)
}
