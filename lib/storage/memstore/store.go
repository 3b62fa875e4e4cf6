package memstore

import (
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rehydrate-io/rehydrate/lib/storage"
)

// storeImpl implements storage.Storage with a sharded concurrent map.
type storeImpl struct {
	records *xsync.MapOf[string, map[string]any]
}

// New creates a new empty in-memory storage backend.
func New() storage.Storage {
	return &storeImpl{
		records: xsync.NewMapOf[string, map[string]any](),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see storage/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Read(token string) (map[string]any, error) {
	record, ok := s.records.Load(token)
	if !ok {
		return nil, nil
	}
	return storage.CloneRecord(record), nil
}

func (s *storeImpl) Write(token string, record map[string]any) error {
	s.records.Store(token, storage.CloneRecord(record))
	return nil
}

func (s *storeImpl) Delete(token string) error {
	s.records.Delete(token)
	return nil
}
