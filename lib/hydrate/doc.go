// Package hydrate binds a reactive store's lifecycle to durable storage:
// prior state is restored when the store is constructed, and every
// subsequent change is encoded and written back, best effort, without ever
// failing the mutation that triggered it.
//
// The package focuses on:
//   - Load-on-construct hydration through the snapshot codec
//   - Ordered, fire-and-forget persistence of change notifications
//   - A principled lifecycle end (Detach) and explicit record removal (Clear)
//
// Key Components:
//
//   - Store Interface: The contract an application store implements. ToJSON
//     produces the serializable state (or reports "skip this cycle"),
//     FromJSON applies a previously persisted record, and Subscribe is the
//     change-notification point the engine attaches one listener to.
//     Optional StoragePrefix and StorageID methods disambiguate instances;
//     the prefix defaults to the store's type name and the id to "". The
//     storage token is prefix + id and must stay stable for the lifetime of
//     the instance — the engine derives it once and never re-reads.
//
//   - Hydrator: One per store instance, created with New. Construction
//     resolves a storage backend (injected option or process default),
//     synchronously loads and applies prior state, then subscribes. Every
//     hydration or persistence failure is logged and swallowed; the only
//     error New surfaces is storage.ErrNotConfigured, a setup bug.
//
// Write Ordering:
//
//	Each hydrator owns an unbounded persist queue drained by a single writer
//	goroutine, so writes for one store are both issued and completed in
//	notification order and a slow backend can never block the mutating
//	code path. Clear is routed through the same queue and awaited, so a
//	clear cannot be overtaken by an earlier queued write. No ordering is
//	arbitrated between two hydrators sharing a token; keeping tokens unique
//	per independently-persisted instance is the application's job.
package hydrate
