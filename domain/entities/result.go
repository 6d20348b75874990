package entities

// Result carries exactly one of a success value or an error payload, never
// both and never neither once constructed through Ok or Err. It replaces
// exceptions-as-control-flow for fallible conversions crossing the ABI.
type Result[V, E any] struct {
	value V
	err   E
	ok    bool
}

// Ok constructs a success Result.
func Ok[V, E any](value V) Result[V, E] {
	return Result[V, E]{value: value, ok: true}
}

// Err constructs an error Result.
func Err[V, E any](err E) Result[V, E] {
	return Result[V, E]{err: err}
}

// IsOk reports whether the success variant is populated.
func (r Result[V, E]) IsOk() bool { return r.ok }

// IsError reports whether the error variant is populated.
func (r Result[V, E]) IsError() bool { return !r.ok }

// Value returns the success payload. Accessing it on an error-constructed
// Result is an InvariantViolationError.
func (r Result[V, E]) Value() (V, error) {
	if !r.ok {
		var zero V
		return zero, &InvariantViolationError{Accessor: "value", Variant: "error"}
	}
	return r.value, nil
}

// Err returns the error payload. Accessing it on a value-constructed Result
// is an InvariantViolationError.
func (r Result[V, E]) Err() (E, error) {
	if r.ok {
		var zero E
		return zero, &InvariantViolationError{Accessor: "error", Variant: "value"}
	}
	return r.err, nil
}
