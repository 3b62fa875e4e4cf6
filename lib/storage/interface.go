package storage

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// Storage is the durable key-value port the hydration engine writes store
// records through. One record exists per token; writes overwrite it, Delete
// removes it.
type Storage interface {
	// Read returns the record stored under token. A missing record is
	// reported as (nil, nil); an error means the backend could not answer.
	Read(token string) (map[string]any, error)
	// Write stores record under token, replacing any previous record.
	Write(token string, record map[string]any) error
	// Delete removes the record stored under token. Deleting a token that
	// has no record is not an error.
	Delete(token string) error
}

// --------------------------------------------------------------------------
// Record Helpers
// --------------------------------------------------------------------------

// CloneRecord returns a deep copy of record, covering the nested mappings
// and sequences a snapshot record is built from. Backends use it so callers
// can never alias stored state. A nil record clones to nil.
func CloneRecord(record map[string]any) map[string]any {
	if record == nil {
		return nil
	}
	out := make(map[string]any, len(record))
	for k, v := range record {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return CloneRecord(x)
	case []any:
		out := make([]any, len(x))
		for i, ev := range x {
			out[i] = cloneValue(ev)
		}
		return out
	default:
		// Atomic snapshot values are immutable and share freely.
		return v
	}
}
