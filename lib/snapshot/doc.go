// Package snapshot converts arbitrary in-memory values into JSON-safe
// snapshot values and back. It is the codec the hydration engine runs every
// store record through before handing it to a storage backend.
//
// The package focuses on:
//   - A three-tier value classification (atomic, builtin complex, custom-encodable)
//   - Reference-cycle detection scoped to a single Encode call
//   - A total, never-failing Decode for values read back from storage
//
// Key Components:
//
//   - Encode: Reduces a value to nil, bool, string, a finite number, a
//     sequence of snapshot values, or a string-keyed mapping of snapshot
//     values. Values that cannot be reduced fail with UnsupportedValueError.
//
//   - Decode: The reverse coercion. It walks mappings and sequences, coerces
//     keys to strings, and forces the top level into a string-keyed mapping.
//     Decode never fails; unexpected shapes degrade to an empty mapping.
//
//   - Encodable: The capability interface for opaque domain types (dates,
//     value objects) that want to participate in encoding by supplying their
//     own intermediate representation. Exactly one level of delegation is
//     honored per value: the intermediate result must reduce through the
//     atomic and builtin tiers on its own.
//
// Cycle Detection:
//
//	Each top-level Encode call owns a private set of identities for the
//	complex values currently on the traversal stack. The set is passed
//	explicitly through the recursion, so concurrent encodes of unrelated
//	object graphs never interfere. A value whose identity is already on the
//	active stack is a cycle; cycles are always reported as an
//	UnsupportedValueError whose cause is a CyclicValueError.
//
// A value appearing twice in *different* branches of one graph is not a
// cycle: identities are popped when a value's subtree is finished.
package snapshot
