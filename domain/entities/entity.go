package entities

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
)

// Entity is an insertion-ordered record of named attributes holding tagged
// Values. Hosts create entities empty, mappings populate them through the
// typed setters, and typed getters read them back with tag checking.
type Entity struct {
	TypedMap[string, Value]
}

// NewEntity creates an empty entity.
func NewEntity() *Entity {
	return &Entity{}
}

// Unset overwrites the attribute with a null-tagged Value. The entry stays
// in the sequence so iteration order is stable across unset/set cycles.
func (e *Entity) Unset(key string) {
	e.Set(key, NullValue())
}

// Merge applies each source's entries onto e in argument order: every
// source overwrites in turn, so the last source wins for any shared key and
// e's original value survives only for keys no source carries. e is mutated
// in place and returned.
func (e *Entity) Merge(sources ...*Entity) *Entity {
	for _, src := range sources {
		if src == nil {
			continue
		}
		for _, entry := range src.Entries() {
			e.Set(entry.Key, entry.Value)
		}
	}
	return e
}

// SetString stores a string attribute.
func (e *Entity) SetString(key, v string) { e.Set(key, StringValue(v)) }

// SetI32 stores a signed 32-bit integer attribute.
func (e *Entity) SetI32(key string, v int32) { e.Set(key, Int32Value(v)) }

// SetBigInt stores an arbitrary-precision integer attribute.
func (e *Entity) SetBigInt(key string, v *big.Int) { e.Set(key, BigIntValue(v)) }

// SetBytes stores a byte-buffer attribute.
func (e *Entity) SetBytes(key string, v Bytes) { e.Set(key, BytesValue(v)) }

// SetBool stores a boolean attribute.
func (e *Entity) SetBool(key string, v bool) { e.Set(key, BoolValue(v)) }

// SetBigDecimal stores an arbitrary-precision decimal attribute.
func (e *Entity) SetBigDecimal(key string, v decimal.Decimal) { e.Set(key, BigDecimalValue(v)) }

// mustGet fetches the value for key or reports a MissingKeyError.
func (e *Entity) mustGet(key string) (Value, error) {
	v, ok := e.Get(key)
	if !ok {
		return Value{}, &MissingKeyError{Key: key}
	}
	return v, nil
}

// GetString fetches a string attribute. Absent keys are a MissingKeyError,
// any other stored tag a TypeMismatchError.
func (e *Entity) GetString(key string) (string, error) {
	v, err := e.mustGet(key)
	if err != nil {
		return "", err
	}
	s, err := v.AsString()
	return s, withKey(err, key)
}

// GetI32 fetches a signed 32-bit integer attribute.
func (e *Entity) GetI32(key string) (int32, error) {
	v, err := e.mustGet(key)
	if err != nil {
		return 0, err
	}
	x, err := v.AsInt32()
	return x, withKey(err, key)
}

// GetBigInt fetches an arbitrary-precision integer attribute.
func (e *Entity) GetBigInt(key string) (*big.Int, error) {
	v, err := e.mustGet(key)
	if err != nil {
		return nil, err
	}
	x, err := v.AsBigInt()
	return x, withKey(err, key)
}

// GetBytes fetches a byte-buffer attribute.
func (e *Entity) GetBytes(key string) (Bytes, error) {
	v, err := e.mustGet(key)
	if err != nil {
		return nil, err
	}
	b, err := v.AsBytes()
	return b, withKey(err, key)
}

// GetBool fetches a boolean attribute.
func (e *Entity) GetBool(key string) (bool, error) {
	v, err := e.mustGet(key)
	if err != nil {
		return false, err
	}
	b, err := v.AsBool()
	return b, withKey(err, key)
}

// GetBigDecimal fetches an arbitrary-precision decimal attribute.
func (e *Entity) GetBigDecimal(key string) (decimal.Decimal, error) {
	v, err := e.mustGet(key)
	if err != nil {
		return decimal.Decimal{}, err
	}
	d, err := v.AsBigDecimal()
	return d, withKey(err, key)
}

// withKey stamps the attribute key onto a coercion error so the message
// names the attribute, not just the tags.
func withKey(err error, key string) error {
	if err == nil {
		return nil
	}
	var tm *TypeMismatchError
	if errors.As(err, &tm) {
		return &TypeMismatchError{Key: key, Want: tm.Want, Got: tm.Got}
	}
	return err
}
