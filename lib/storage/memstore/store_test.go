package memstore

import (
	"testing"

	"github.com/rehydrate-io/rehydrate/lib/storage"
	"github.com/rehydrate-io/rehydrate/lib/storage/storagetest"
)

func TestMemStore(t *testing.T) {
	storagetest.Run(t, "Memory", func(t *testing.T) storage.Storage {
		return New()
	})
}
