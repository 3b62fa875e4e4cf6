package snapshot

import "fmt"

// --------------------------------------------------------------------------
// Capability Interface
// --------------------------------------------------------------------------

// Encodable is implemented by values that supply their own snapshot form.
// ToSnapshot must return a value that reduces through the atomic and builtin
// tiers of Encode (nil, bool, string, finite number, sequence, or mapping);
// returning another Encodable is not honored.
type Encodable interface {
	ToSnapshot() (any, error)
}

// --------------------------------------------------------------------------
// Custom Error Types
// --------------------------------------------------------------------------

// CyclicValueError reports a complex value encountered twice on the active
// traversal stack of one Encode call. It is always wrapped in an
// UnsupportedValueError before Encode returns.
type CyclicValueError struct {
	Value any // The value whose identity completed the cycle
}

// Error implements the error interface.
func (e *CyclicValueError) Error() string {
	return fmt.Sprintf("snapshot: cyclic reference through value of type %T", e.Value)
}

// UnsupportedValueError reports a value that could not be reduced to a
// snapshot: no custom conversion exists, the custom conversion failed, or a
// cycle was detected. Cause carries the underlying failure when there is one.
type UnsupportedValueError struct {
	Value any   // The offending value
	Cause error // Underlying cause, nil when the value is simply unclassifiable
}

// Error implements the error interface.
func (e *UnsupportedValueError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("snapshot: unsupported value of type %T: %v", e.Value, e.Cause)
	}
	return fmt.Sprintf("snapshot: unsupported value of type %T", e.Value)
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *UnsupportedValueError) Unwrap() error {
	return e.Cause
}
