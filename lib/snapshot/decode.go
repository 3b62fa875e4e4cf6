package snapshot

import "reflect"

// Decode coerces a value read back from storage into a string-keyed mapping.
// It is total: mappings and sequences are walked recursively, map keys are
// coerced to strings (entries with uncoercible keys are dropped), atomic
// values pass through unchanged, and a non-mapping top level yields an empty
// mapping.
func Decode(v any) map[string]any {
	if m, ok := decodeValue(v).(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// decodeValue walks one value. Unlike Encode it never fails and needs no
// cycle bookkeeping: storage backends hand back acyclic data.
func decodeValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, ev := range x {
			out[k] = decodeValue(ev)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, ev := range x {
			out[i] = decodeValue(ev)
		}
		return out
	case nil:
		return nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key, ok := coerceKey(iter.Key().Interface())
			if !ok {
				continue
			}
			out[key] = decodeValue(iter.Value().Interface())
		}
		return out
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = decodeValue(rv.Index(i).Interface())
		}
		return out
	}

	return v
}
