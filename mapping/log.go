//go:build wasip1

package mapping

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/lumenindex/mapping-sdk/internal/abi"
	"github.com/lumenindex/mapping-sdk/wireformat"
)

//go:wasmimport index_host log_message
func hostLogMessage(packed uint64)

// LogHandler is a slog.Handler that ships records to the host through the
// log_message import. The host applies its own level filtering, so every
// record is forwarded.
type LogHandler struct {
	attrs []slog.Attr
}

// NewLogHandler creates a handler for slog.New.
func NewLogHandler() *LogHandler {
	return &LogHandler{}
}

// Enabled reports whether the handler handles records at the given level.
func (h *LogHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

// Handle serializes the record and hands it to the host.
func (h *LogHandler) Handle(ctx context.Context, record slog.Record) error {
	msg := wireformat.LogMessageWire{
		Context:   wireContext(ctx),
		Level:     record.Level.String(),
		Message:   record.Message,
		Timestamp: record.Time,
	}
	for _, attr := range h.attrs {
		msg.Attrs = append(msg.Attrs, toLogAttrWire(attr))
	}
	record.Attrs(func(attr slog.Attr) bool {
		msg.Attrs = append(msg.Attrs, toLogAttrWire(attr))
		return true
	})

	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	packed := abi.PtrFromBytes(raw)
	hostLogMessage(packed)
	abi.ReleasePacked(packed)
	return nil
}

// WithAttrs returns a handler that includes the given attributes on every
// record.
func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &LogHandler{attrs: merged}
}

// WithGroup returns a handler with the group name prefixed onto attribute
// keys.
func (h *LogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	prefixed := make([]slog.Attr, len(h.attrs))
	for i, attr := range h.attrs {
		prefixed[i] = slog.Attr{Key: name + "." + attr.Key, Value: attr.Value}
	}
	return &LogHandler{attrs: prefixed}
}

// toLogAttrWire flattens a slog attribute to its wire form.
func toLogAttrWire(attr slog.Attr) wireformat.LogAttrWire {
	wire := wireformat.LogAttrWire{Key: attr.Key}
	attr.Value = attr.Value.Resolve()

	switch attr.Value.Kind() {
	case slog.KindString:
		wire.Type = "string"
		wire.Value = attr.Value.String()
	case slog.KindInt64:
		wire.Type = "int64"
		wire.Value = fmt.Sprintf("%d", attr.Value.Int64())
	case slog.KindUint64:
		wire.Type = "uint64"
		wire.Value = fmt.Sprintf("%d", attr.Value.Uint64())
	case slog.KindBool:
		wire.Type = "bool"
		wire.Value = fmt.Sprintf("%t", attr.Value.Bool())
	case slog.KindFloat64:
		wire.Type = "float64"
		wire.Value = fmt.Sprintf("%g", attr.Value.Float64())
	case slog.KindTime:
		wire.Type = "time"
		wire.Value = attr.Value.Time().Format(time.RFC3339Nano)
	case slog.KindDuration:
		wire.Type = "duration"
		wire.Value = attr.Value.Duration().String()
	case slog.KindAny:
		v := attr.Value.Any()
		if err, ok := v.(error); ok {
			wire.Type = "error"
			wire.Value = err.Error()
			break
		}
		if raw, err := json.Marshal(v); err == nil {
			wire.Type = "json"
			wire.Value = string(raw)
			break
		}
		wire.Type = "any"
		wire.Value = fmt.Sprintf("%v", v)
	default:
		wire.Type = "any"
		wire.Value = fmt.Sprintf("%v", attr.Value.Any())
	}
	return wire
}

func init() {
	slog.SetDefault(slog.New(NewLogHandler()))
}
