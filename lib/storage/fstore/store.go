package fstore

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
)

const (
	// recordExt is the extension of every record file in the directory.
	recordExt = ".state"
	// tmpExt marks an in-flight replacement that has not been renamed yet.
	tmpExt = ".tmp"
)

// Store implements storage.Storage with one record file per token.
type Store struct {
	dir   string
	codec Codec
	locks *xsync.MapOf[string, *sync.Mutex]
}

// Options configures the Store behavior during initialization.
type Options struct {
	Codec Codec // Record codec (nil = indented JSON)
}

// DefaultOptions returns the default file storage options.
func DefaultOptions() *Options {
	return &Options{
		Codec: NewJSONCodec(),
	}
}

// New creates a file-backed storage rooted at dir, creating the directory if
// needed. Pass nil opts for the defaults.
func New(dir string, opts *Options) (*Store, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	codec := opts.Codec
	if codec == nil {
		codec = NewJSONCodec()
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("fstore: create storage dir: %w", err)
	}
	return &Store{
		dir:   dir,
		codec: codec,
		locks: xsync.NewMapOf[string, *sync.Mutex](),
	}, nil
}

// path returns the record file for a token. Tokens are percent-encoded so
// arbitrary strings (incl. path separators) map to a flat file name.
func (s *Store) path(token string) string {
	return filepath.Join(s.dir, url.PathEscape(token)+recordExt)
}

// lock returns the mutex serializing replacement of one token's file.
func (s *Store) lock(token string) *sync.Mutex {
	mu, _ := s.locks.LoadOrCompute(token, func() *sync.Mutex {
		return &sync.Mutex{}
	})
	return mu
}

// --------------------------------------------------------------------------
// Interface Methods (docu see storage/interface.go)
// --------------------------------------------------------------------------

func (s *Store) Read(token string) (map[string]any, error) {
	b, err := os.ReadFile(s.path(token))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.codec.Unmarshal(b)
}

func (s *Store) Write(token string, record map[string]any) error {
	b, err := s.codec.Marshal(record)
	if err != nil {
		return err
	}

	mu := s.lock(token)
	mu.Lock()
	defer mu.Unlock()

	path := s.path(token)
	tmp := path + tmpExt
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (s *Store) Delete(token string) error {
	mu := s.lock(token)
	mu.Lock()
	defer mu.Unlock()

	err := os.Remove(s.path(token))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// --------------------------------------------------------------------------
// Directory Inspection
// --------------------------------------------------------------------------

// Tokens lists the tokens that currently have a record file, in directory
// order. Used by the CLI to inspect a storage directory out-of-process.
func (s *Store) Tokens() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	tokens := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, recordExt) {
			continue
		}
		token, err := url.PathUnescape(strings.TrimSuffix(name, recordExt))
		if err != nil {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens, nil
}
