package hydrate

import (
	"github.com/rehydrate-io/rehydrate/lib/storage"
	"github.com/rs/zerolog"
)

// Option configures a Hydrator during construction.
type Option func(*Hydrator)

// WithStorage injects the storage backend explicitly instead of resolving
// the process-wide default.
//
// Usage:
//
//	h, err := hydrate.New(store, hydrate.WithStorage(memstore.New()))
func WithStorage(s storage.Storage) Option {
	return func(h *Hydrator) {
		h.storage = s
	}
}

// WithLogger sets the diagnostic logger. Hydration and persistence failures
// are reported through it at warn level; the default logger discards
// everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(h *Hydrator) {
		h.logger = logger
	}
}

// WithPrefix overrides the storage token prefix, taking precedence over the
// store's StoragePrefix method and the type-name default.
func WithPrefix(prefix string) Option {
	return func(h *Hydrator) {
		h.prefix = prefix
	}
}

// WithID overrides the storage token id, taking precedence over the store's
// StorageID method.
func WithID(id string) Option {
	return func(h *Hydrator) {
		h.id = id
	}
}
