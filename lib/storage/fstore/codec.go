package fstore

import (
	"bytes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/gob"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// Codec converts one record to bytes and back. Implementations must be
// symmetric and safe for concurrent use.
type Codec interface {
	// Marshal serializes a record into a byte array
	Marshal(record map[string]any) ([]byte, error)
	// Unmarshal deserializes a byte array into a record
	Unmarshal(b []byte) (map[string]any, error)
	// Name returns the codec identifier used for diagnostics
	Name() string
}

// --------------------------------------------------------------------------
// JSON Codec
// --------------------------------------------------------------------------

// NewJSONCodec creates a new codec using indented json encoding. This is the
// default for file storage since the record files stay human-inspectable.
func NewJSONCodec() Codec {
	return &jsonCodecImpl{}
}

type jsonCodecImpl struct{}

func (c *jsonCodecImpl) Marshal(record map[string]any) ([]byte, error) {
	return json.MarshalIndent(record, "", "  ")
}

func (c *jsonCodecImpl) Unmarshal(b []byte) (map[string]any, error) {
	var record map[string]any
	if err := json.Unmarshal(b, &record); err != nil {
		return nil, err
	}
	return record, nil
}

func (c *jsonCodecImpl) Name() string { return "json" }

// --------------------------------------------------------------------------
// GOB Codec
// --------------------------------------------------------------------------

// gobNil stands in for nil record entries, which gob refuses to encode.
type gobNil struct{}

func init() {
	// Concrete types that may appear inside a record's interface slots.
	gob.Register(map[string]any{})
	gob.Register([]any{})
	gob.Register(gobNil{})
}

// NewGOBCodec creates a new codec using gob encoding. More compact than JSON
// but not human-readable.
func NewGOBCodec() Codec {
	return &gobCodecImpl{}
}

type gobCodecImpl struct{}

func (c *gobCodecImpl) Marshal(record map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(swapNils(record, true).(map[string]any)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *gobCodecImpl) Unmarshal(b []byte) (map[string]any, error) {
	var record map[string]any
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&record); err != nil {
		return nil, err
	}
	return swapNils(record, false).(map[string]any), nil
}

// swapNils rebuilds a record with nil entries replaced by the gobNil
// sentinel (encode=true) or the sentinel replaced by nil again (encode=false).
func swapNils(v any, encode bool) any {
	switch x := v.(type) {
	case nil:
		if encode {
			return gobNil{}
		}
		return nil
	case gobNil:
		if !encode {
			return nil
		}
		return x
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, ev := range x {
			out[k] = swapNils(ev, encode)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, ev := range x {
			out[i] = swapNils(ev, encode)
		}
		return out
	default:
		return v
	}
}

func (c *gobCodecImpl) Name() string { return "gob" }

// --------------------------------------------------------------------------
// Encrypted Codec
// --------------------------------------------------------------------------

// NewEncryptedCodec wraps inner so that every marshaled record is sealed
// with XChaCha20-Poly1305 under key. The key must be exactly 32 bytes. Each
// Marshal draws a fresh random nonce and prepends it to the ciphertext.
func NewEncryptedCodec(inner Codec, key []byte) (Codec, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("fstore: invalid encryption key: %w", err)
	}
	return &encryptedCodecImpl{inner: inner, aead: aead}, nil
}

type encryptedCodecImpl struct {
	inner Codec
	aead  cipher.AEAD
}

func (c *encryptedCodecImpl) Marshal(record map[string]any) ([]byte, error) {
	plaintext, err := c.inner.Marshal(record)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return c.aead.Seal(nonce, nonce, plaintext, nil), nil
}

func (c *encryptedCodecImpl) Unmarshal(b []byte) (map[string]any, error) {
	size := c.aead.NonceSize()
	if len(b) < size {
		return nil, fmt.Errorf("fstore: sealed record shorter than nonce (%d bytes)", len(b))
	}
	plaintext, err := c.aead.Open(nil, b[:size], b[size:], nil)
	if err != nil {
		return nil, fmt.Errorf("fstore: unseal record: %w", err)
	}
	return c.inner.Unmarshal(plaintext)
}

func (c *encryptedCodecImpl) Name() string { return c.inner.Name() + "+xchacha20" }
