// Package wireformat defines the JSON wire structures exchanged between the
// indexing host and guest mappings. These types are the ABI contract and
// must stay backward compatible.
package wireformat

import (
	"fmt"
	"math/big"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lumenindex/mapping-sdk/domain/entities"
)

// ContextWireFormat carries context.Context metadata across the boundary.
type ContextWireFormat struct {
	Deadline  *time.Time `json:"deadline,omitempty"`
	TimeoutMs int64      `json:"timeout_ms,omitempty"`
	RequestID string     `json:"request_id,omitempty"` // For log correlation
	Canceled  bool       `json:"canceled,omitempty"`
}

// ValueWire is the wire form of a tagged value. Kind selects which payload
// field is meaningful; big integers and decimals travel as decimal strings,
// byte buffers as 0x-prefixed hex.
type ValueWire struct {
	Kind       string      `json:"kind"`
	String     *string     `json:"string,omitempty"`
	Int32      *int32      `json:"int32,omitempty"`
	BigInt     string      `json:"bigint,omitempty"`
	Bytes      string      `json:"bytes,omitempty"`
	Bool       *bool       `json:"bool,omitempty"`
	BigDecimal string      `json:"bigdecimal,omitempty"`
	Array      []ValueWire `json:"array,omitempty"`
}

// AttributeWire is a single named attribute of an entity.
type AttributeWire struct {
	Key   string    `json:"key"`
	Value ValueWire `json:"value"`
}

// EntityWire is the wire form of an entity. Attributes are a list, not an
// object, so insertion order survives the JSON round trip.
type EntityWire struct {
	Attributes []AttributeWire `json:"attributes"`
}

// StoreGetRequestWire asks the host store for an entity by type and id.
type StoreGetRequestWire struct {
	Context    ContextWireFormat `json:"context"`
	EntityType string            `json:"entity_type"`
	ID         string            `json:"id"`
}

// StoreGetResponseWire is the host's answer to a get. Found=false with a
// nil Error means the entity simply does not exist.
type StoreGetResponseWire struct {
	Found  bool         `json:"found"`
	Entity *EntityWire  `json:"entity,omitempty"`
	Error  *ErrorDetail `json:"error,omitempty"`
}

// StoreSetRequestWire writes an entity into the host store.
type StoreSetRequestWire struct {
	Context    ContextWireFormat `json:"context"`
	EntityType string            `json:"entity_type"`
	ID         string            `json:"id"`
	Entity     EntityWire        `json:"entity"`
}

// StoreSetResponseWire acknowledges a set.
type StoreSetResponseWire struct {
	Error *ErrorDetail `json:"error,omitempty"`
}

// StoreRemoveRequestWire deletes an entity from the host store.
type StoreRemoveRequestWire struct {
	Context    ContextWireFormat `json:"context"`
	EntityType string            `json:"entity_type"`
	ID         string            `json:"id"`
}

// StoreRemoveResponseWire acknowledges a remove.
type StoreRemoveResponseWire struct {
	Removed bool         `json:"removed"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// LogMessageWire carries a guest log record to the host.
type LogMessageWire struct {
	Context   ContextWireFormat `json:"context"`
	Level     string            `json:"level"`
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	Attrs     []LogAttrWire     `json:"attrs,omitempty"`
}

// LogAttrWire is a single structured log attribute.
type LogAttrWire struct {
	Key   string `json:"key"`
	Type  string `json:"type"`  // "string", "int64", "bool", "float64", "time", "error", "any"
	Value string `json:"value"` // String representation of the value
}

// ErrorDetail provides structured error information, consistent across host
// and guest. Types: "overflow", "malformed_input", "missing_key",
// "type_mismatch", "invariant", "store", "wire_format", "internal".
type ErrorDetail struct {
	Message string       `json:"message"`
	Type    string       `json:"type"`
	Code    string       `json:"code,omitempty"`
	Wrapped *ErrorDetail `json:"wrapped,omitempty"`
}

// Error implements the error interface for ErrorDetail.
func (e *ErrorDetail) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if e.Type != "" && e.Type != "internal" {
		msg = fmt.Sprintf("%s: %s", e.Type, msg)
	}
	if e.Code != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.Code)
	}
	if e.Wrapped != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Wrapped.Error())
	}
	return msg
}

// EncodeValue converts a tagged value to its wire form.
func EncodeValue(v entities.Value) ValueWire {
	wire := ValueWire{Kind: v.Kind().String()}
	switch v.Kind() {
	case entities.ValueKindString:
		s, _ := v.AsString()
		wire.String = &s
	case entities.ValueKindInt32:
		x, _ := v.AsInt32()
		wire.Int32 = &x
	case entities.ValueKindBigInt:
		bi, _ := v.AsBigInt()
		wire.BigInt = bi.String()
	case entities.ValueKindBytes:
		b, _ := v.AsBytes()
		wire.Bytes = b.ToHexString()
	case entities.ValueKindBool:
		b, _ := v.AsBool()
		wire.Bool = &b
	case entities.ValueKindBigDecimal:
		d, _ := v.AsBigDecimal()
		wire.BigDecimal = d.String()
	case entities.ValueKindArray:
		vs, _ := v.AsArray()
		wire.Array = make([]ValueWire, len(vs))
		for i, inner := range vs {
			wire.Array[i] = EncodeValue(inner)
		}
	case entities.ValueKindNull:
		// Tag only.
	}
	return wire
}

// DecodeValue converts a wire value back to a tagged value.
func DecodeValue(w ValueWire) (entities.Value, error) {
	switch w.Kind {
	case "string":
		if w.String == nil {
			return entities.Value{}, missingPayload(w.Kind)
		}
		return entities.StringValue(*w.String), nil
	case "int32":
		if w.Int32 == nil {
			return entities.Value{}, missingPayload(w.Kind)
		}
		return entities.Int32Value(*w.Int32), nil
	case "bigint":
		bi, ok := new(big.Int).SetString(w.BigInt, 10)
		if !ok {
			return entities.Value{}, &ErrorDetail{
				Message: fmt.Sprintf("invalid bigint payload %q", w.BigInt),
				Type:    "wire_format",
				Code:    "bigint",
			}
		}
		return entities.BigIntValue(bi), nil
	case "bytes":
		b, err := entities.ByteArrayFromHexString(w.Bytes)
		if err != nil {
			return entities.Value{}, &ErrorDetail{
				Message: err.Error(),
				Type:    "wire_format",
				Code:    "bytes",
			}
		}
		return entities.BytesValue(b), nil
	case "bool":
		if w.Bool == nil {
			return entities.Value{}, missingPayload(w.Kind)
		}
		return entities.BoolValue(*w.Bool), nil
	case "bigdecimal":
		d, err := decimal.NewFromString(w.BigDecimal)
		if err != nil {
			return entities.Value{}, &ErrorDetail{
				Message: err.Error(),
				Type:    "wire_format",
				Code:    "bigdecimal",
			}
		}
		return entities.BigDecimalValue(d), nil
	case "array":
		vs := make([]entities.Value, len(w.Array))
		for i, inner := range w.Array {
			v, err := DecodeValue(inner)
			if err != nil {
				return entities.Value{}, err
			}
			vs[i] = v
		}
		return entities.ArrayValue(vs), nil
	case "null":
		return entities.NullValue(), nil
	default:
		return entities.Value{}, &ErrorDetail{
			Message: fmt.Sprintf("unknown value kind %q", w.Kind),
			Type:    "wire_format",
			Code:    "kind",
		}
	}
}

// EncodeEntity converts an entity to its wire form, preserving attribute
// order.
func EncodeEntity(e *entities.Entity) EntityWire {
	if e == nil {
		return EntityWire{}
	}
	wire := EntityWire{Attributes: make([]AttributeWire, 0, e.Len())}
	for _, entry := range e.Entries() {
		wire.Attributes = append(wire.Attributes, AttributeWire{
			Key:   entry.Key,
			Value: EncodeValue(entry.Value),
		})
	}
	return wire
}

// DecodeEntity converts a wire entity back, replaying attributes in wire
// order so later duplicates overwrite earlier ones exactly as Set would.
func DecodeEntity(w EntityWire) (*entities.Entity, error) {
	e := entities.NewEntity()
	for _, attr := range w.Attributes {
		v, err := DecodeValue(attr.Value)
		if err != nil {
			return nil, err
		}
		e.Set(attr.Key, v)
	}
	return e, nil
}

func missingPayload(kind string) *ErrorDetail {
	return &ErrorDetail{
		Message: fmt.Sprintf("missing payload for kind %q", kind),
		Type:    "wire_format",
		Code:    kind,
	}
}
