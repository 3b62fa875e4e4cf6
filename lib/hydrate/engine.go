package hydrate

import (
	"sync/atomic"

	"github.com/rehydrate-io/rehydrate/lib/snapshot"
	"github.com/rehydrate-io/rehydrate/lib/storage"
	"github.com/rs/zerolog"
)

// Hydrator binds one store instance to a storage backend. Create it with
// New; its zero value is not usable.
type Hydrator struct {
	store       Store
	storage     storage.Storage
	logger      zerolog.Logger
	prefix, id  string
	token       string
	queue       *persistQueue
	unsubscribe func()
	detached    atomic.Bool
}

// New hydrates store and attaches the persistence lifecycle to it.
//
// The storage backend is taken from WithStorage or, failing that, the
// process-wide default; storage.ErrNotConfigured is the only error New
// returns, since a missing backend is a setup bug. Everything else —
// read failures, undecodable records, FromJSON rejections — is logged and
// treated as "no prior state": the store keeps its in-memory defaults and
// persistence still attaches.
//
// The initial load completes before New returns; subsequent writes are
// asynchronous.
func New(store Store, opts ...Option) (*Hydrator, error) {
	h := &Hydrator{
		store:  store,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}

	if h.storage == nil {
		def, err := storage.Default()
		if err != nil {
			return nil, err
		}
		h.storage = def
	}
	h.token = resolveToken(store, h.prefix, h.id)

	h.load()

	h.queue = newPersistQueue(h.storage, h.token, h.logger)
	h.unsubscribe = store.Subscribe(h.onChange)
	return h, nil
}

// Token returns the storage token this hydrator persists under.
func (h *Hydrator) Token() string {
	return h.token
}

// load reads prior state and applies it to the store. Failures on this path
// never propagate: the store simply starts from its in-memory defaults.
func (h *Hydrator) load() {
	record, err := h.storage.Read(h.token)
	if err != nil {
		h.logger.Warn().Err(err).Str("token", h.token).Msg("hydration read failed, starting from defaults")
		return
	}
	if record == nil {
		return
	}
	if err := h.store.FromJSON(snapshot.Decode(record)); err != nil {
		h.logger.Warn().Err(err).Str("token", h.token).Msg("store rejected persisted record, starting from defaults")
		return
	}
	hydrationsTotal.Inc()
}

// onChange is the single listener attached to the store. It runs on the
// mutating code path, so everything past encoding is handed to the queue.
func (h *Hydrator) onChange() {
	record, ok := h.store.ToJSON()
	if !ok {
		return
	}
	encoded, err := snapshot.Encode(record)
	if err != nil {
		encodeFailuresTotal.Inc()
		h.logger.Warn().Err(err).Str("token", h.token).Msg("state not persisted, encoding failed")
		return
	}
	// Encode always yields a string-keyed mapping for a mapping input.
	out, ok := encoded.(map[string]any)
	if !ok {
		out = map[string]any{}
	}
	h.queue.push(persistJob{record: out})
}

// Clear removes the store's persisted record. The deletion is routed
// through the persist queue and awaited, so it cannot be overtaken by an
// earlier queued write. In-memory state and the change subscription are
// untouched; the next mutation re-creates the record. Idempotent.
func (h *Hydrator) Clear() error {
	done := make(chan error, 1)
	if !h.queue.push(persistJob{clear: true, done: done}) {
		// Queue already closed by Detach; delete directly.
		return h.storage.Delete(h.token)
	}
	return <-done
}

// Detach ends the persistence lifecycle: the change subscription is
// removed and the writer goroutine drains the queue and exits. Further
// store mutations are no longer persisted. Safe to call more than once.
func (h *Hydrator) Detach() {
	if !h.detached.CompareAndSwap(false, true) {
		return
	}
	h.unsubscribe()
	h.queue.close()
}
