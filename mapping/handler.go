//go:build wasip1

package mapping

import (
	"context"
	"encoding/json"

	"github.com/lumenindex/mapping-sdk/domain/entities"
	"github.com/lumenindex/mapping-sdk/internal/abi"
	"github.com/lumenindex/mapping-sdk/wireformat"
)

// HandlerFunc processes one event entity delivered by the host.
type HandlerFunc func(ctx context.Context, event *entities.Entity) error

// HandleEvent adapts a HandlerFunc to the raw export ABI: it decodes the
// packed event entity, runs the handler, and encodes any failure as an
// ErrorDetail for the host. Mapping modules call it from their exports:
//
//	//go:wasmexport handle_transfer
//	func handleTransfer(packed uint64) uint64 {
//	    return mapping.HandleEvent(packed, applyTransfer)
//	}
//
// A panicking handler is reported to the host instead of trapping the
// module, and all pinned buffers are released so the instance stays usable
// for the next event.
func HandleEvent(packed uint64, handler HandlerFunc) (result uint64) {
	defer func() {
		if r := recover(); r != nil {
			abi.ReleaseAll()
			result = errorResult(&wireformat.ErrorDetail{
				Message: panicMessage(r),
				Type:    "internal",
				Code:    "panic",
			})
		}
	}()

	raw := abi.BytesFromPtr(packed)
	abi.ReleasePacked(packed)

	var wire wireformat.EntityWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return errorResult(&wireformat.ErrorDetail{
			Message: err.Error(),
			Type:    "wire_format",
			Code:    "event",
		})
	}
	event, err := wireformat.DecodeEntity(wire)
	if err != nil {
		return errorResult(&wireformat.ErrorDetail{
			Message: err.Error(),
			Type:    "wire_format",
			Code:    "event",
		})
	}

	if err := handler(context.Background(), event); err != nil {
		if detail, ok := err.(*wireformat.ErrorDetail); ok {
			return errorResult(detail)
		}
		return errorResult(&wireformat.ErrorDetail{
			Message: err.Error(),
			Type:    "internal",
		})
	}
	return 0
}

// errorResult encodes an ErrorDetail into pinned memory for the host. The
// host copies it out; the pin is released on the next ReleaseAll.
func errorResult(detail *wireformat.ErrorDetail) uint64 {
	raw, err := json.Marshal(detail)
	if err != nil {
		return 0
	}
	return abi.PtrFromBytes(raw)
}

func panicMessage(r any) string {
	if err, ok := r.(error); ok {
		return err.Error()
	}
	if s, ok := r.(string); ok {
		return s
	}
	return "handler panicked"
}
