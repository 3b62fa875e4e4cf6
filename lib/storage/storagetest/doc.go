// Package storagetest provides a reusable conformance test suite for
// storage.Storage implementations. Backend packages call Run from their own
// test files so every implementation is held to the same contract: missing
// records read as nil, writes overwrite, deletes are idempotent, and returned
// records never alias stored state.
package storagetest
