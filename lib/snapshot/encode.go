package snapshot

import (
	"errors"
	"math"
	"reflect"
	"strconv"
)

// Encode converts v into a JSON-safe snapshot value: nil, bool, string, a
// finite number, a []any of snapshot values, or a map[string]any of snapshot
// values. Atomic values and empty sequences are returned unchanged; all other
// complex values are rebuilt.
//
// Values that cannot be represented fail with *UnsupportedValueError. When a
// reference cycle caused the failure, the error's cause is a
// *CyclicValueError; *CyclicValueError never escapes unwrapped.
//
// Thread-safety: Encode is safe to call concurrently. The cycle-detection
// state lives on the call stack of each invocation.
func Encode(v any) (any, error) {
	out, err := encodeValue(v, make(seenSet))
	if err != nil {
		var cyc *CyclicValueError
		var uns *UnsupportedValueError
		if errors.As(err, &cyc) && !errors.As(err, &uns) {
			err = &UnsupportedValueError{Value: cyc.Value, Cause: cyc}
		}
		return nil, err
	}
	return out, nil
}

// --------------------------------------------------------------------------
// Traversal State
// --------------------------------------------------------------------------

// seenSet holds the identities of the complex values on the active traversal
// stack. It is threaded explicitly through the recursion so its scope is the
// single top-level Encode call that created it.
type seenSet map[uintptr]struct{}

// enter records an identity, returning false if it is already on the stack.
func (s seenSet) enter(id uintptr) bool {
	if _, ok := s[id]; ok {
		return false
	}
	s[id] = struct{}{}
	return true
}

// leave removes an identity when its subtree is fully encoded.
func (s seenSet) leave(id uintptr) {
	delete(s, id)
}

// identity returns a stable referent address for values that can participate
// in a reference cycle. Value-shaped types (structs, atomics) cannot alias
// themselves and carry no identity.
func identity(v any) (uintptr, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		id := rv.Pointer()
		return id, id != 0
	default:
		return 0, false
	}
}

// --------------------------------------------------------------------------
// Classification
// --------------------------------------------------------------------------

// encodeValue runs the full three-tier classification: atomic, builtin
// complex, then the Encodable capability with exactly one level of delegation.
func encodeValue(v any, seen seenSet) (any, error) {
	out, handled, err := encodeBuiltin(v, seen)
	if handled || err != nil {
		return out, err
	}

	enc, ok := v.(Encodable)
	if !ok {
		return nil, &UnsupportedValueError{Value: v}
	}

	if id, hasID := identity(v); hasID {
		if !seen.enter(id) {
			return nil, &UnsupportedValueError{Value: v, Cause: &CyclicValueError{Value: v}}
		}
		defer seen.leave(id)
	}

	intermediate, err := enc.ToSnapshot()
	if err != nil {
		return nil, &UnsupportedValueError{Value: v, Cause: err}
	}

	// The intermediate value must reduce through tiers 1 and 2 on its own;
	// a second Encodable hop is not honored.
	out, handled, err = encodeBuiltin(intermediate, seen)
	if err != nil {
		return nil, &UnsupportedValueError{Value: v, Cause: err}
	}
	if !handled {
		return nil, &UnsupportedValueError{Value: v}
	}
	return out, nil
}

// encodeBuiltin covers the atomic and builtin-complex tiers. The handled
// return value reports whether v was classified at all; when it is false the
// caller falls through to the Encodable tier.
func encodeBuiltin(v any, seen seenSet) (out any, handled bool, err error) {
	// Tier 1: atomic values pass through untouched. Non-finite floats are
	// deliberately not atomic and fall through to the unsupported path.
	switch x := v.(type) {
	case nil:
		return nil, true, nil
	case bool, string:
		return x, true, nil
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return x, true, nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, false, nil
		}
		return x, true, nil
	case float32:
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, false, nil
		}
		return x, true, nil
	}

	// Named kinds (type MyFlag bool, type Level int, ...) reduce by kind.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v, true, nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, false, nil
		}
		return v, true, nil
	case reflect.Slice, reflect.Array:
		out, err := encodeSequence(rv, seen)
		return out, true, err
	case reflect.Map:
		out, err := encodeMapping(rv, seen)
		return out, true, err
	}

	return nil, false, nil
}

// encodeSequence encodes a slice or array element by element. An empty
// sequence is returned unchanged.
func encodeSequence(rv reflect.Value, seen seenSet) (any, error) {
	if rv.Len() == 0 {
		return rv.Interface(), nil
	}
	if rv.Kind() == reflect.Slice {
		id := rv.Pointer()
		if !seen.enter(id) {
			return nil, &CyclicValueError{Value: rv.Interface()}
		}
		defer seen.leave(id)
	}
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		ev, err := encodeValue(rv.Index(i).Interface(), seen)
		if err != nil {
			return nil, err
		}
		out[i] = ev
	}
	return out, nil
}

// encodeMapping encodes a map value by value, coercing every key to a string.
// Entries whose key cannot be coerced are silently dropped.
func encodeMapping(rv reflect.Value, seen seenSet) (any, error) {
	if rv.IsNil() || rv.Len() == 0 {
		return map[string]any{}, nil
	}
	id := rv.Pointer()
	if !seen.enter(id) {
		return nil, &CyclicValueError{Value: rv.Interface()}
	}
	defer seen.leave(id)

	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key, ok := coerceKey(iter.Key().Interface())
		if !ok {
			continue
		}
		ev, err := encodeValue(iter.Value().Interface(), seen)
		if err != nil {
			return nil, err
		}
		out[key] = ev
	}
	return out, nil
}

// coerceKey turns a map key into a string. Strings pass through, Stringers
// are formatted, numeric and bool kinds use their canonical text form, and
// everything else reports false.
func coerceKey(k any) (string, bool) {
	switch x := k.(type) {
	case string:
		return x, true
	case interface{ String() string }:
		return x.String(), true
	}
	rv := reflect.ValueOf(k)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64), true
	}
	return "", false
}
