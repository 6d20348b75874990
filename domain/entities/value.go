package entities

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// ValueKind is the runtime tag of a Value.
type ValueKind uint8

const (
	ValueKindString ValueKind = iota
	ValueKindInt32
	ValueKindBigInt
	ValueKindBytes
	ValueKindBool
	ValueKindBigDecimal
	ValueKindArray
	ValueKindNull
)

// String returns the wire name of the kind.
func (k ValueKind) String() string {
	switch k {
	case ValueKindString:
		return "string"
	case ValueKindInt32:
		return "int32"
	case ValueKindBigInt:
		return "bigint"
	case ValueKindBytes:
		return "bytes"
	case ValueKindBool:
		return "bool"
	case ValueKindBigDecimal:
		return "bigdecimal"
	case ValueKindArray:
		return "array"
	case ValueKindNull:
		return "null"
	default:
		return "unknown"
	}
}

// Value is a tagged dynamic value: one of the primitive kinds above plus a
// runtime tag identifying which. Coercions are tag-checked and return a
// TypeMismatchError rather than reinterpreting the payload.
type Value struct {
	kind ValueKind
	data any
}

// NullValue returns the null-tagged Value.
func NullValue() Value { return Value{kind: ValueKindNull} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{kind: ValueKindString, data: s} }

// Int32Value wraps a signed 32-bit integer.
func Int32Value(x int32) Value { return Value{kind: ValueKindInt32, data: x} }

// BigIntValue wraps an arbitrary-precision integer. A nil pointer is
// normalized to zero so the payload is never absent behind a non-null tag.
func BigIntValue(x *big.Int) Value {
	if x == nil {
		x = new(big.Int)
	}
	return Value{kind: ValueKindBigInt, data: x}
}

// BytesValue wraps a byte buffer.
func BytesValue(b Bytes) Value { return Value{kind: ValueKindBytes, data: b} }

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{kind: ValueKindBool, data: b} }

// BigDecimalValue wraps an arbitrary-precision decimal.
func BigDecimalValue(d decimal.Decimal) Value { return Value{kind: ValueKindBigDecimal, data: d} }

// ArrayValue wraps an ordered list of Values.
func ArrayValue(vs []Value) Value { return Value{kind: ValueKindArray, data: vs} }

// Kind returns the runtime tag.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether the value carries the null tag.
func (v Value) IsNull() bool { return v.kind == ValueKindNull }

// AsString coerces to string.
func (v Value) AsString() (string, error) {
	if v.kind != ValueKindString {
		return "", &TypeMismatchError{Want: ValueKindString, Got: v.kind}
	}
	return v.data.(string), nil
}

// AsInt32 coerces to int32.
func (v Value) AsInt32() (int32, error) {
	if v.kind != ValueKindInt32 {
		return 0, &TypeMismatchError{Want: ValueKindInt32, Got: v.kind}
	}
	return v.data.(int32), nil
}

// AsBigInt coerces to *big.Int. The returned pointer is the stored payload;
// callers that mutate it see the mutation reflected in the Value.
func (v Value) AsBigInt() (*big.Int, error) {
	if v.kind != ValueKindBigInt {
		return nil, &TypeMismatchError{Want: ValueKindBigInt, Got: v.kind}
	}
	return v.data.(*big.Int), nil
}

// AsBytes coerces to Bytes.
func (v Value) AsBytes() (Bytes, error) {
	if v.kind != ValueKindBytes {
		return nil, &TypeMismatchError{Want: ValueKindBytes, Got: v.kind}
	}
	return v.data.(Bytes), nil
}

// AsBool coerces to bool.
func (v Value) AsBool() (bool, error) {
	if v.kind != ValueKindBool {
		return false, &TypeMismatchError{Want: ValueKindBool, Got: v.kind}
	}
	return v.data.(bool), nil
}

// AsBigDecimal coerces to decimal.Decimal.
func (v Value) AsBigDecimal() (decimal.Decimal, error) {
	if v.kind != ValueKindBigDecimal {
		return decimal.Decimal{}, &TypeMismatchError{Want: ValueKindBigDecimal, Got: v.kind}
	}
	return v.data.(decimal.Decimal), nil
}

// AsArray coerces to []Value.
func (v Value) AsArray() ([]Value, error) {
	if v.kind != ValueKindArray {
		return nil, &TypeMismatchError{Want: ValueKindArray, Got: v.kind}
	}
	return v.data.([]Value), nil
}
