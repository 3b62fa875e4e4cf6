// Package fstore provides a file-backed implementation of the
// storage.Storage interface. Each token is persisted as one file under a
// root directory; writes go through a temp file followed by an atomic
// rename, so a crash mid-write never leaves a torn record behind.
//
// The package focuses on:
//   - Crash-safe replacement of one record file per token
//   - A pluggable record codec (JSON by default, gob as an alternative)
//   - Optional at-rest encryption as a codec decorator
//
// Key Components:
//
//   - Store: The backend itself. Tokens are percent-encoded into file names,
//     so arbitrary token strings (including path separators) are safe. A
//     per-token mutex serializes replacement of the same file; writes to
//     different tokens proceed independently.
//
//   - Codec Interface: Converts one record to bytes and back. NewJSONCodec
//     produces human-inspectable indented JSON; NewGOBCodec produces a
//     compact binary form. Both are symmetric: Unmarshal(Marshal(r))
//     reproduces an equivalent record.
//
//   - Encrypted Codec: NewEncryptedCodec wraps any inner codec and seals its
//     output with XChaCha20-Poly1305 under a caller-supplied 32-byte key.
//     The nonce is generated per write and prepended to the ciphertext.
//
// Note on same-token concurrency: like every backend, fstore does not
// arbitrate two hydrators persisting the same token. The per-token mutex
// only guarantees that concurrent replacements do not corrupt the file; the
// surviving content is last-write-wins.
package fstore
