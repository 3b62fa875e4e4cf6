package storage

import (
	"errors"
	"sync/atomic"
)

// ErrNotConfigured is returned by Default when no process-wide backend has
// been installed with SetDefault.
var ErrNotConfigured = errors.New("storage: no default storage configured")

// defaultRef boxes the installed backend so a nil interface and "never set"
// stay distinguishable inside the atomic pointer.
type defaultRef struct {
	s Storage
}

var defaultStorage atomic.Pointer[defaultRef]

// SetDefault installs s as the process-wide default backend. Passing nil
// uninstalls the current default. Intended to be called once at process
// start, before any store is constructed; it is nevertheless safe to swap at
// runtime, and hydrators resolve the default exactly once at construction.
func SetDefault(s Storage) {
	if s == nil {
		defaultStorage.Store(nil)
		return
	}
	defaultStorage.Store(&defaultRef{s: s})
}

// Default returns the process-wide backend, or ErrNotConfigured when none is
// installed.
func Default() (Storage, error) {
	ref := defaultStorage.Load()
	if ref == nil {
		return nil, ErrNotConfigured
	}
	return ref.s, nil
}
