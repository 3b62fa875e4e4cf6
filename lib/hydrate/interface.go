package hydrate

import "reflect"

// --------------------------------------------------------------------------
// Store Contract
// --------------------------------------------------------------------------

// Store is the contract an application store implements to be hydrated.
type Store interface {
	// ToJSON returns the store's serializable state. Returning false skips
	// the current persistence cycle entirely (no write, no deletion).
	// ToJSON must not fail for supported application state.
	ToJSON() (map[string]any, bool)
	// FromJSON applies a previously persisted record. It must tolerate a
	// partially-shaped record from an older schema version; the engine does
	// not version or migrate records.
	FromJSON(record map[string]any) error
	// Subscribe registers fn to run after every state change and returns
	// the function that removes the registration. The engine attaches
	// exactly one listener per hydrator.
	Subscribe(fn func()) (unsubscribe func())
}

// Prefixed is implemented by stores that override the storage token prefix.
// Without it the prefix is the store's type name.
type Prefixed interface {
	StoragePrefix() string
}

// Identified is implemented by stores that persist multiple instances of
// one type independently. Without it the id is "".
type Identified interface {
	StorageID() string
}

// --------------------------------------------------------------------------
// Token Derivation
// --------------------------------------------------------------------------

// resolveToken derives the storage token for a store, honoring explicit
// option overrides first, then the optional identity interfaces, then the
// defaults.
func resolveToken(s Store, prefix, id string) string {
	if prefix == "" {
		if p, ok := s.(Prefixed); ok {
			prefix = p.StoragePrefix()
		}
	}
	if prefix == "" {
		prefix = typeName(s)
	}
	if id == "" {
		if i, ok := s.(Identified); ok {
			id = i.StorageID()
		}
	}
	return prefix + id
}

// typeName returns the store's unqualified type name, dereferencing
// pointers so *Counter and Counter share the prefix "Counter".
func typeName(s Store) string {
	t := reflect.TypeOf(s)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "Store"
	}
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}
