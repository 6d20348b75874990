package hostfuncs

import (
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/lumenindex/mapping-sdk/wireformat"
)

// LogSink forwards guest log records to a host zap logger. Guest levels
// arrive as slog level strings and map onto the closest zap level.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a sink writing to the given logger. A nil logger
// discards records.
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger.Named("mapping")}
}

// Handle writes one guest log record.
func (s *LogSink) Handle(msg wireformat.LogMessageWire) {
	fields := make([]zap.Field, 0, len(msg.Attrs)+1)
	if msg.Context.RequestID != "" {
		fields = append(fields, zap.String("request_id", msg.Context.RequestID))
	}
	for _, attr := range msg.Attrs {
		fields = append(fields, attrField(attr))
	}

	switch msg.Level {
	case "DEBUG":
		s.logger.Debug(msg.Message, fields...)
	case "WARN":
		s.logger.Warn(msg.Message, fields...)
	case "ERROR":
		s.logger.Error(msg.Message, fields...)
	default:
		s.logger.Info(msg.Message, fields...)
	}
}

// attrField converts one wire attribute to a zap field of the matching
// type. Values that fail to parse as their declared type fall back to the
// raw string so the record is never dropped.
func attrField(attr wireformat.LogAttrWire) zap.Field {
	switch attr.Type {
	case "int64":
		if v, err := strconv.ParseInt(attr.Value, 10, 64); err == nil {
			return zap.Int64(attr.Key, v)
		}
	case "uint64":
		if v, err := strconv.ParseUint(attr.Value, 10, 64); err == nil {
			return zap.Uint64(attr.Key, v)
		}
	case "bool":
		if v, err := strconv.ParseBool(attr.Value); err == nil {
			return zap.Bool(attr.Key, v)
		}
	case "float64":
		if v, err := strconv.ParseFloat(attr.Value, 64); err == nil {
			return zap.Float64(attr.Key, v)
		}
	case "time":
		if v, err := time.Parse(time.RFC3339Nano, attr.Value); err == nil {
			return zap.Time(attr.Key, v)
		}
	case "duration":
		if v, err := time.ParseDuration(attr.Value); err == nil {
			return zap.Duration(attr.Key, v)
		}
	}
	return zap.String(attr.Key, attr.Value)
}
