package snapshot

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"
)

// --------------------------------------------------------------------------
// Test Types
// --------------------------------------------------------------------------

// date is a custom-encodable value type with a string snapshot form.
type date struct {
	year, month, day int
}

func (d date) ToSnapshot() (any, error) {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day), nil
}

// brokenDate fails its own conversion.
type brokenDate struct{}

func (brokenDate) ToSnapshot() (any, error) {
	return nil, errors.New("conversion exploded")
}

// nestedEncodable returns another Encodable, which Encode must not honor.
type nestedEncodable struct{}

func (nestedEncodable) ToSnapshot() (any, error) {
	return date{2024, 1, 1}, nil
}

// selfRef is a pointer-shaped Encodable that encodes through itself.
type selfRef struct {
	other *selfRef
}

func (s *selfRef) ToSnapshot() (any, error) {
	return map[string]any{"other": s.other}, nil
}

// --------------------------------------------------------------------------
// Atomic Tier
// --------------------------------------------------------------------------

func TestEncodeAtomics(t *testing.T) {
	values := []any{nil, true, false, "text", "", 5, int64(-3), uint8(200), 0.5, float32(1.5)}

	for _, v := range values {
		got, err := Encode(v)
		if err != nil {
			t.Errorf("Encode(%v) failed: %v", v, err)
			continue
		}
		if got != v {
			t.Errorf("Encode(%v) = %v, want the value unchanged", v, got)
		}
	}
}

func TestEncodeNamedKinds(t *testing.T) {
	type level int
	type flag bool

	for _, v := range []any{level(3), flag(true)} {
		got, err := Encode(v)
		if err != nil {
			t.Errorf("Encode(%v) failed: %v", v, err)
			continue
		}
		if got != v {
			t.Errorf("Encode(%v) = %v, want the value unchanged", v, got)
		}
	}
}

func TestEncodeNonFiniteNumbers(t *testing.T) {
	for _, v := range []any{math.Inf(1), math.Inf(-1), math.NaN(), float32(float64(math.Inf(1)))} {
		_, err := Encode(v)
		var uns *UnsupportedValueError
		if !errors.As(err, &uns) {
			t.Errorf("Encode(%v) err = %v, want UnsupportedValueError", v, err)
		}
	}
}

// --------------------------------------------------------------------------
// Builtin Complex Tier
// --------------------------------------------------------------------------

func TestEncodeNested(t *testing.T) {
	in := map[string]any{
		"count": 5,
		"tags":  []any{"a", "b"},
		"inner": map[string]any{"ratio": 0.25},
		"none":  nil,
	}
	got, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := map[string]any{
		"count": 5,
		"tags":  []any{"a", "b"},
		"inner": map[string]any{"ratio": 0.25},
		"none":  nil,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Encode mismatch:\n got  %#v\n want %#v", got, want)
	}
}

func TestEncodeEmptySequenceUnchanged(t *testing.T) {
	in := []string{}
	got, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if _, ok := got.([]string); !ok {
		t.Errorf("Encode of empty sequence returned %T, want the original []string", got)
	}
}

func TestEncodeTypedSequence(t *testing.T) {
	got, err := Encode([]int{1, 2, 3})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !reflect.DeepEqual(got, []any{1, 2, 3}) {
		t.Errorf("Encode([]int{1,2,3}) = %#v, want []any{1, 2, 3}", got)
	}
}

func TestEncodeKeyCoercion(t *testing.T) {
	got, err := Encode(map[int]string{1: "a", 2: "b"})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := map[string]any{"1": "a", "2": "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Encode(map[int]string) = %#v, want %#v", got, want)
	}
}

func TestEncodeDropsUncoercibleKeys(t *testing.T) {
	type pair struct{ a, b int }
	in := map[any]string{
		"keep":       "a",
		pair{1, 2}:   "dropped",
		3:            "b",
		[2]int{1, 2}: "dropped too",
	}
	got, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := map[string]any{"keep": "a", "3": "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Encode mismatch:\n got  %#v\n want %#v", got, want)
	}
}

func TestEncodeSharedValueIsNotACycle(t *testing.T) {
	shared := map[string]any{"x": 1}
	in := map[string]any{"a": shared, "b": shared, "c": []any{shared}}
	if _, err := Encode(in); err != nil {
		t.Errorf("Encode of diamond-shaped graph failed: %v", err)
	}
}

// --------------------------------------------------------------------------
// Custom-Encodable Tier
// --------------------------------------------------------------------------

func TestEncodeCustom(t *testing.T) {
	got, err := Encode(date{2024, 3, 9})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if got != "2024-03-09" {
		t.Errorf("Encode(date) = %v, want \"2024-03-09\"", got)
	}
}

func TestEncodeCustomInsideMapping(t *testing.T) {
	got, err := Encode(map[string]any{"when": date{2024, 3, 9}})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := map[string]any{"when": "2024-03-09"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Encode mismatch:\n got  %#v\n want %#v", got, want)
	}
}

func TestEncodeCustomConversionFailure(t *testing.T) {
	_, err := Encode(brokenDate{})
	var uns *UnsupportedValueError
	if !errors.As(err, &uns) {
		t.Fatalf("Encode(brokenDate) err = %v, want UnsupportedValueError", err)
	}
	if uns.Cause == nil || uns.Cause.Error() != "conversion exploded" {
		t.Errorf("cause = %v, want the conversion's own failure", uns.Cause)
	}
}

func TestEncodeSingleLevelDelegation(t *testing.T) {
	// The intermediate value is itself Encodable; the second hop must not
	// be honored and the value ends up unsupported.
	_, err := Encode(nestedEncodable{})
	var uns *UnsupportedValueError
	if !errors.As(err, &uns) {
		t.Errorf("Encode(nestedEncodable) err = %v, want UnsupportedValueError", err)
	}
}

func TestEncodeCustomChildrenFullyClassified(t *testing.T) {
	// Children of the intermediate mapping get the full classification,
	// including their own custom tier.
	in := map[string]any{"wrapped": []any{date{2020, 1, 2}}}
	got, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := map[string]any{"wrapped": []any{"2020-01-02"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Encode mismatch:\n got  %#v\n want %#v", got, want)
	}
}

func TestEncodeUnsupportedValue(t *testing.T) {
	_, err := Encode(make(chan int))
	var uns *UnsupportedValueError
	if !errors.As(err, &uns) {
		t.Errorf("Encode(chan) err = %v, want UnsupportedValueError", err)
	}
}

// --------------------------------------------------------------------------
// Cycle Detection
// --------------------------------------------------------------------------

func TestEncodeDirectCycle(t *testing.T) {
	m := map[string]any{}
	m["self"] = m

	_, err := Encode(m)
	var uns *UnsupportedValueError
	if !errors.As(err, &uns) {
		t.Fatalf("Encode of self-referencing map err = %v, want UnsupportedValueError", err)
	}
	var cyc *CyclicValueError
	if !errors.As(err, &cyc) {
		t.Errorf("cause chain of %v does not contain CyclicValueError", err)
	}
}

func TestEncodeTransitiveCycle(t *testing.T) {
	m := map[string]any{}
	m["list"] = []any{map[string]any{"back": m}}

	_, err := Encode(m)
	var cyc *CyclicValueError
	if !errors.As(err, &cyc) {
		t.Errorf("Encode of transitive cycle err = %v, want a cyclic cause", err)
	}
}

func TestEncodeCycleThroughEncodable(t *testing.T) {
	a := &selfRef{}
	a.other = a

	_, err := Encode(a)
	var uns *UnsupportedValueError
	if !errors.As(err, &uns) {
		t.Fatalf("Encode of cyclic Encodable err = %v, want UnsupportedValueError", err)
	}
	var cyc *CyclicValueError
	if !errors.As(err, &cyc) {
		t.Errorf("cause chain of %v does not contain CyclicValueError", err)
	}
}

func TestEncodeLeavesNoResidualState(t *testing.T) {
	// A failed encode must not poison a later encode of the same value.
	m := map[string]any{"ok": 1}
	bad := map[string]any{"m": m, "inf": math.Inf(1)}
	if _, err := Encode(bad); err == nil {
		t.Fatal("Encode of map with Inf leaf unexpectedly succeeded")
	}
	if _, err := Encode(m); err != nil {
		t.Errorf("Encode after prior failure failed: %v", err)
	}
}
