package storagetest

import (
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/rehydrate-io/rehydrate/lib/storage"
)

// Factory creates a fresh, empty backend for one subtest.
type Factory func(t *testing.T) storage.Storage

// Run runs the conformance test suite for a storage.Storage implementation.
func Run(t *testing.T, name string, factory Factory) {
	t.Run(name, func(t *testing.T) {
		t.Run("ReadMissing", func(t *testing.T) {
			testReadMissing(t, factory(t))
		})

		t.Run("WriteRead", func(t *testing.T) {
			testWriteRead(t, factory(t))
		})

		t.Run("Overwrite", func(t *testing.T) {
			testOverwrite(t, factory(t))
		})

		t.Run("Delete", func(t *testing.T) {
			testDelete(t, factory(t))
		})

		t.Run("DeleteIdempotent", func(t *testing.T) {
			testDeleteIdempotent(t, factory(t))
		})

		t.Run("RecordIsolation", func(t *testing.T) {
			testRecordIsolation(t, factory(t))
		})

		t.Run("ConcurrentTokens", func(t *testing.T) {
			testConcurrentTokens(t, factory(t))
		})
	})
}

// testRecord builds a nested record exercising every snapshot value shape.
func testRecord() map[string]any {
	return map[string]any{
		"count":   float64(5),
		"name":    "counter",
		"enabled": true,
		"tags":    []any{"a", "b"},
		"nested": map[string]any{
			"threshold": 0.5,
			"empty":     []any{},
		},
		"none": nil,
	}
}

func testReadMissing(t *testing.T, s storage.Storage) {
	record, err := s.Read("missing")
	if err != nil {
		t.Fatalf("Read of missing token failed: %v", err)
	}
	if record != nil {
		t.Errorf("Read of missing token returned %v, want nil", record)
	}
}

func testWriteRead(t *testing.T, s storage.Storage) {
	want := testRecord()
	if err := s.Write("token", want); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	got, err := s.Read("token")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got  %#v\n want %#v", got, want)
	}
}

func testOverwrite(t *testing.T, s storage.Storage) {
	if err := s.Write("token", map[string]any{"count": float64(5)}); err != nil {
		t.Fatalf("first Write failed: %v", err)
	}
	if err := s.Write("token", map[string]any{"count": float64(6)}); err != nil {
		t.Fatalf("second Write failed: %v", err)
	}
	got, err := s.Read("token")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got["count"] != float64(6) {
		t.Errorf("count = %v after overwrite, want 6", got["count"])
	}
}

func testDelete(t *testing.T, s storage.Storage) {
	if err := s.Write("token", testRecord()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := s.Delete("token"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	record, err := s.Read("token")
	if err != nil {
		t.Fatalf("Read after Delete failed: %v", err)
	}
	if record != nil {
		t.Errorf("Read after Delete returned %v, want nil", record)
	}
}

func testDeleteIdempotent(t *testing.T, s storage.Storage) {
	if err := s.Delete("never-written"); err != nil {
		t.Errorf("Delete of missing token failed: %v", err)
	}
	if err := s.Write("token", testRecord()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := s.Delete("token"); err != nil {
		t.Fatalf("first Delete failed: %v", err)
	}
	if err := s.Delete("token"); err != nil {
		t.Errorf("second Delete failed: %v", err)
	}
}

func testRecordIsolation(t *testing.T, s storage.Storage) {
	record := map[string]any{
		"count": float64(5),
		"tags":  []any{"a"},
	}
	if err := s.Write("token", record); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	// Mutating the caller's record after the write must not leak through.
	record["count"] = float64(99)
	record["tags"].([]any)[0] = "mutated"

	got, err := s.Read("token")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got["count"] != float64(5) {
		t.Errorf("stored record aliased the written map: count = %v", got["count"])
	}

	// Mutating a returned record must not affect a later read.
	got["count"] = float64(42)
	again, err := s.Read("token")
	if err != nil {
		t.Fatalf("second Read failed: %v", err)
	}
	if again["count"] != float64(5) {
		t.Errorf("stored record aliased a returned map: count = %v", again["count"])
	}
}

func testConcurrentTokens(t *testing.T, s storage.Storage) {
	const tokens = 16
	const writes = 25

	var wg sync.WaitGroup
	for i := 0; i < tokens; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			token := fmt.Sprintf("token-%d", i)
			for n := 0; n < writes; n++ {
				if err := s.Write(token, map[string]any{"n": float64(n)}); err != nil {
					t.Errorf("Write(%s) failed: %v", token, err)
					return
				}
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < tokens; i++ {
		token := fmt.Sprintf("token-%d", i)
		got, err := s.Read(token)
		if err != nil {
			t.Fatalf("Read(%s) failed: %v", token, err)
		}
		if got == nil || got["n"] != float64(writes-1) {
			t.Errorf("Read(%s) = %v, want n=%d", token, got, writes-1)
		}
	}
}
