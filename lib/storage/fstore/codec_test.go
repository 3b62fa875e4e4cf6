package fstore

import (
	"bytes"
	"reflect"
	"testing"
)

// testCodecs is a map of codec name to factory function
func testCodecs(t *testing.T) map[string]Codec {
	encrypted, err := NewEncryptedCodec(NewJSONCodec(), bytes.Repeat([]byte{0x13}, 32))
	if err != nil {
		t.Fatalf("NewEncryptedCodec failed: %v", err)
	}
	return map[string]Codec{
		"JSON":      NewJSONCodec(),
		"GOB":       NewGOBCodec(),
		"Encrypted": encrypted,
	}
}

// testRecords creates a set of records with different value shapes
func testRecords() []map[string]any {
	return []map[string]any{
		// Empty record
		{},

		// Flat atomics
		{
			"count": float64(5),
			"name":  "counter",
			"on":    true,
		},

		// Nil entry
		{
			"present": float64(1),
			"absent":  nil,
		},

		// Nested containers
		{
			"tags": []any{"a", "b", nil},
			"inner": map[string]any{
				"ratio": 0.25,
				"deep":  []any{map[string]any{"x": float64(1)}},
			},
		},
	}
}

// TestCodecRoundTrip tests that records survive marshal and unmarshal intact
func TestCodecRoundTrip(t *testing.T) {
	records := testRecords()

	for name, codec := range testCodecs(t) {
		t.Run(name, func(t *testing.T) {
			for i, record := range records {
				b, err := codec.Marshal(record)
				if err != nil {
					t.Errorf("Failed to marshal record %d: %v", i, err)
					continue
				}
				got, err := codec.Unmarshal(b)
				if err != nil {
					t.Errorf("Failed to unmarshal record %d: %v", i, err)
					continue
				}
				if !reflect.DeepEqual(got, record) {
					t.Errorf("Record %d mismatch:\n got  %#v\n want %#v", i, got, record)
				}
			}
		})
	}
}

// TestCodecNames tests the diagnostic names
func TestCodecNames(t *testing.T) {
	if got := NewJSONCodec().Name(); got != "json" {
		t.Errorf("JSON codec name = %q", got)
	}
	if got := NewGOBCodec().Name(); got != "gob" {
		t.Errorf("GOB codec name = %q", got)
	}
	encrypted, err := NewEncryptedCodec(NewGOBCodec(), bytes.Repeat([]byte{1}, 32))
	if err != nil {
		t.Fatalf("NewEncryptedCodec failed: %v", err)
	}
	if got := encrypted.Name(); got != "gob+xchacha20" {
		t.Errorf("encrypted codec name = %q", got)
	}
}

// TestEncryptedCodecRejectsBadKey tests key validation
func TestEncryptedCodecRejectsBadKey(t *testing.T) {
	if _, err := NewEncryptedCodec(NewJSONCodec(), []byte("short")); err == nil {
		t.Error("NewEncryptedCodec accepted a 5-byte key")
	}
}

// TestEncryptedCodecDetectsTampering tests ciphertext integrity
func TestEncryptedCodecDetectsTampering(t *testing.T) {
	codec, err := NewEncryptedCodec(NewJSONCodec(), bytes.Repeat([]byte{0x13}, 32))
	if err != nil {
		t.Fatalf("NewEncryptedCodec failed: %v", err)
	}
	b, err := codec.Marshal(map[string]any{"count": float64(5)})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	b[len(b)-1] ^= 0xff
	if _, err := codec.Unmarshal(b); err == nil {
		t.Error("Unmarshal accepted tampered ciphertext")
	}

	if _, err := codec.Unmarshal([]byte("tiny")); err == nil {
		t.Error("Unmarshal accepted input shorter than the nonce")
	}
}
