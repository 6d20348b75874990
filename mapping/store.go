//go:build wasip1

// Package mapping is the guest-side SDK for mapping modules. It wraps the
// index_host imports so handler code works with entities and never touches
// linear memory directly.
package mapping

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lumenindex/mapping-sdk/domain/entities"
	"github.com/lumenindex/mapping-sdk/internal/abi"
	"github.com/lumenindex/mapping-sdk/wireformat"
)

//go:wasmimport index_host store_get
func hostStoreGet(packed uint64) uint64

//go:wasmimport index_host store_set
func hostStoreSet(packed uint64) uint64

//go:wasmimport index_host store_remove
func hostStoreRemove(packed uint64) uint64

// Get loads the entity stored under (entityType, id). The second return is
// false when the entity does not exist.
func Get(ctx context.Context, entityType, id string) (*entities.Entity, bool, error) {
	req := wireformat.StoreGetRequestWire{
		Context:    wireContext(ctx),
		EntityType: entityType,
		ID:         id,
	}

	var resp wireformat.StoreGetResponseWire
	if err := roundTrip(hostStoreGet, req, &resp); err != nil {
		return nil, false, err
	}
	if resp.Error != nil {
		return nil, false, resp.Error
	}
	if !resp.Found || resp.Entity == nil {
		return nil, false, nil
	}

	e, err := wireformat.DecodeEntity(*resp.Entity)
	if err != nil {
		return nil, false, err
	}
	return e, true, nil
}

// Set writes the entity under (entityType, id), replacing any previous
// version.
func Set(ctx context.Context, entityType, id string, e *entities.Entity) error {
	req := wireformat.StoreSetRequestWire{
		Context:    wireContext(ctx),
		EntityType: entityType,
		ID:         id,
		Entity:     wireformat.EncodeEntity(e),
	}

	var resp wireformat.StoreSetResponseWire
	if err := roundTrip(hostStoreSet, req, &resp); err != nil {
		return err
	}
	if resp.Error != nil {
		return resp.Error
	}
	return nil
}

// Remove deletes the entity under (entityType, id) and reports whether it
// existed.
func Remove(ctx context.Context, entityType, id string) (bool, error) {
	req := wireformat.StoreRemoveRequestWire{
		Context:    wireContext(ctx),
		EntityType: entityType,
		ID:         id,
	}

	var resp wireformat.StoreRemoveResponseWire
	if err := roundTrip(hostStoreRemove, req, &resp); err != nil {
		return false, err
	}
	if resp.Error != nil {
		return false, resp.Error
	}
	return resp.Removed, nil
}

// roundTrip marshals a request, hands it to a host function, and
// unmarshals the response. Request memory is unpinned after the call;
// response memory after decoding.
func roundTrip(call func(uint64) uint64, req, resp any) error {
	raw, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal host request: %w", err)
	}

	reqPacked := abi.PtrFromBytes(raw)
	respPacked := call(reqPacked)
	abi.ReleasePacked(reqPacked)

	if respPacked == 0 {
		return fmt.Errorf("host returned no response")
	}
	out := abi.BytesFromPtr(respPacked)
	abi.ReleasePacked(respPacked)

	if err := json.Unmarshal(out, resp); err != nil {
		return fmt.Errorf("failed to unmarshal host response: %w", err)
	}
	return nil
}

// wireContext extracts the deadline and request id for propagation to the
// host.
func wireContext(ctx context.Context) wireformat.ContextWireFormat {
	wire := wireformat.ContextWireFormat{
		Canceled: ctx.Err() != nil,
	}
	if deadline, ok := ctx.Deadline(); ok {
		wire.Deadline = &deadline
		wire.TimeoutMs = time.Until(deadline).Milliseconds()
	}
	if id, ok := RequestIDFromContext(ctx); ok {
		wire.RequestID = id
	}
	return wire
}

type requestIDKey struct{}

// WithRequestID stamps a correlation id onto the context; it travels with
// every host call and log record.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the correlation id, if any.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok
}
