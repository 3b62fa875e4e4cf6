// Package memstore provides an in-memory implementation of the
// storage.Storage interface backed by a concurrent map. Records are deep
// copied on both write and read, so callers can never observe or mutate
// stored state through a shared reference.
//
// The backend is primarily useful in tests and for applications that want
// hydration semantics without durability (for example, process-lifetime
// state shared between stores).
package memstore
