// Package storage defines the durable key-value port the hydration engine
// persists store records through, together with the process-wide default
// instance the engine falls back to when no backend is injected explicitly.
//
// The package focuses on:
//   - A minimal Storage interface (Read, Write, Delete by token)
//   - Record deep-copy helpers shared by the backends
//   - A swappable process-wide default resolved at hydration time
//
// Key Components:
//
//   - Storage Interface: One record per token, overwritten on every write,
//     removed on delete. Read reports "no record" as a nil record with a nil
//     error; Delete is idempotent. Implementations must be safe for
//     concurrent use by many hydrators; they are not required to arbitrate
//     two hydrators writing the same token.
//
//   - Default Instance: SetDefault installs a single process-wide backend,
//     usually once at process start. Default returns ErrNotConfigured while
//     no backend is installed; this is the only storage condition the engine
//     surfaces to its caller, since it indicates a setup error rather than a
//     transient storage failure.
//
// Implementations:
//
//	The module ships two backends:
//
//	- In-memory (memstore): A concurrent map of tokens to records, suitable
//	  for tests and ephemeral use.
//	  Available in "github.com/rehydrate-io/rehydrate/lib/storage/memstore".
//
//	- File-backed (fstore): One file per token under a root directory, with
//	  atomic replacement, a pluggable record codec, and optional at-rest
//	  encryption.
//	  Available in "github.com/rehydrate-io/rehydrate/lib/storage/fstore".
//
//	The conformance suite in
//	"github.com/rehydrate-io/rehydrate/lib/storage/storagetest" runs the
//	shared contract tests against any implementation.
package storage
