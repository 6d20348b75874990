package entities

import "fmt"

// The errors in this file classify contract violations at the value layer.
// All of them are programming errors from the caller's point of view:
// callers are expected to validate preconditions (key presence, hex parity,
// width fit) before converting. They support inspection via errors.As().

// OverflowError reports a fixed-width conversion that cannot represent the
// buffer without loss.
type OverflowError struct {
	Op    string // "to_u32", "to_i32", "to_u64"
	Width int    // Target width in bytes
	Len   int    // Length of the offending buffer
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("%s overflow: %d-byte buffer does not fit in %d bytes", e.Op, e.Len, e.Width)
}

// MalformedInputError reports input that cannot be decoded at all, such as
// an odd-length hex string.
type MalformedInputError struct {
	Encoding string // "hex", "base58"
	Input    string
	Reason   string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed %s input %q: %s", e.Encoding, e.Input, e.Reason)
}

// MissingKeyError reports a typed getter invoked on an absent attribute.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("missing attribute: %q", e.Key)
}

// TypeMismatchError reports a coercion whose requested kind does not match
// the stored tag.
type TypeMismatchError struct {
	Key  string // Attribute key, empty when coercing a bare Value
	Want ValueKind
	Got  ValueKind
}

func (e *TypeMismatchError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("attribute %q holds %s, not %s", e.Key, e.Got, e.Want)
	}
	return fmt.Sprintf("value holds %s, not %s", e.Got, e.Want)
}

// InvariantViolationError reports a Result accessor invoked on the wrong
// variant.
type InvariantViolationError struct {
	Accessor string // "value" or "error"
	Variant  string // variant actually present
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("result holds %s variant, %s accessor is invalid", e.Variant, e.Accessor)
}
