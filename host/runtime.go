package host

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	"github.com/lumenindex/mapping-sdk/domain/entities"
	"github.com/lumenindex/mapping-sdk/domain/ports"
	"github.com/lumenindex/mapping-sdk/hostfuncs"
	"github.com/lumenindex/mapping-sdk/internal/abi"
	"github.com/lumenindex/mapping-sdk/wireformat"
)

// HostModuleName is the import namespace guest mappings link against.
const HostModuleName = "index_host"

// Runtime owns a wazero runtime with the index_host module registered. One
// Runtime can instantiate many mapping modules sharing the same store.
type Runtime struct {
	wasm      wazero.Runtime
	store     *hostfuncs.Store
	sink      *hostfuncs.LogSink
	validator ports.EntityValidator
	logger    *zap.Logger
}

// RuntimeOption configures a Runtime.
type RuntimeOption func(*Runtime)

// WithLogger sets the host logger. Defaults to zap.NewNop().
func WithLogger(logger *zap.Logger) RuntimeOption {
	return func(r *Runtime) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithStore sets the entity store served to mappings.
func WithStore(store *hostfuncs.Store) RuntimeOption {
	return func(r *Runtime) {
		if store != nil {
			r.store = store
		}
	}
}

// WithValidator sets the validator applied to every store_set. Without a
// validator all writes are accepted.
func WithValidator(v ports.EntityValidator) RuntimeOption {
	return func(r *Runtime) {
		r.validator = v
	}
}

// NewRuntime creates a Runtime, instantiates WASI, and registers the
// index_host host module.
func NewRuntime(ctx context.Context, opts ...RuntimeOption) (*Runtime, error) {
	r := &Runtime{
		wasm:   wazero.NewRuntime(ctx),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.store == nil {
		r.store = hostfuncs.NewStore(hostfuncs.WithStoreLogger(r.logger))
	}
	r.sink = hostfuncs.NewLogSink(r.logger)

	wasi_snapshot_preview1.MustInstantiate(ctx, r.wasm)

	_, err := r.wasm.NewHostModuleBuilder(HostModuleName).
		NewFunctionBuilder().WithFunc(r.storeGet).Export("store_get").
		NewFunctionBuilder().WithFunc(r.storeSet).Export("store_set").
		NewFunctionBuilder().WithFunc(r.storeRemove).Export("store_remove").
		NewFunctionBuilder().WithFunc(r.logMessage).Export("log_message").
		Instantiate(ctx)
	if err != nil {
		_ = r.wasm.Close(ctx)
		return nil, fmt.Errorf("failed to instantiate %s module: %w", HostModuleName, err)
	}

	return r, nil
}

// Store returns the entity store shared by all mappings of this runtime.
func (r *Runtime) Store() *hostfuncs.Store {
	return r.store
}

// Close releases the underlying wazero runtime and every mapping it
// instantiated.
func (r *Runtime) Close(ctx context.Context) error {
	return r.wasm.Close(ctx)
}

// Instantiate compiles and instantiates a mapping module. The manifest,
// when given, restricts which exports Invoke will call.
func (r *Runtime) Instantiate(ctx context.Context, wasmBytes []byte, manifest *entities.Manifest) (*Mapping, error) {
	compiled, err := r.wasm.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to compile mapping module: %w", err)
	}

	// Mappings are reactor modules (built with -buildmode=c-shared), so
	// initialization runs through _initialize, never _start.
	cfg := wazero.NewModuleConfig().WithStartFunctions("_initialize")
	if manifest != nil {
		cfg = cfg.WithName(manifest.Name)
	}

	mod, err := r.wasm.InstantiateModule(ctx, compiled, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate mapping module: %w", err)
	}

	name := ""
	if manifest != nil {
		name = manifest.Name
	}
	r.logger.Info("mapping instantiated", zap.String("name", name))

	return &Mapping{runtime: r, mod: mod, manifest: manifest}, nil
}

// Mapping is one instantiated guest module.
type Mapping struct {
	runtime  *Runtime
	mod      api.Module
	manifest *entities.Manifest
}

// Close releases the guest instance.
func (m *Mapping) Close(ctx context.Context) error {
	return m.mod.Close(ctx)
}

// Invoke encodes the event entity, copies it into guest memory, and calls
// the named export. A nonzero return from the guest is decoded as an
// ErrorDetail.
func (m *Mapping) Invoke(ctx context.Context, export string, event *entities.Entity) error {
	if m.manifest != nil && !m.handlerDeclared(export) {
		return fmt.Errorf("export %q is not declared in manifest %s", export, m.manifest.Name)
	}

	fn := m.mod.ExportedFunction(export)
	if fn == nil {
		return fmt.Errorf("mapping has no export %q", export)
	}

	payload, err := json.Marshal(wireformat.EncodeEntity(event))
	if err != nil {
		return fmt.Errorf("failed to encode event entity: %w", err)
	}

	packed, err := m.writeToGuest(ctx, payload)
	if err != nil {
		return err
	}

	results, err := fn.Call(ctx, packed)
	if err != nil {
		return fmt.Errorf("handler %q trapped: %w", export, err)
	}

	if len(results) == 0 || results[0] == 0 {
		return nil
	}

	raw, ok := m.readFromGuest(results[0])
	if !ok {
		return fmt.Errorf("handler %q returned an unreadable error payload", export)
	}
	var detail wireformat.ErrorDetail
	if err := json.Unmarshal(raw, &detail); err != nil {
		return fmt.Errorf("handler %q failed with undecodable error: %w", export, err)
	}
	return fmt.Errorf("handler %q failed: %w", export, &detail)
}

func (m *Mapping) handlerDeclared(export string) bool {
	for _, h := range m.manifest.Handlers {
		if h.Export == export {
			return true
		}
	}
	return false
}

// writeToGuest allocates guest memory through the mapping's allocate
// export, copies data into it, and returns the packed pointer/length. The
// guest owns the allocation and unpins it after decoding.
func (m *Mapping) writeToGuest(ctx context.Context, data []byte) (uint64, error) {
	if len(data) == 0 {
		return 0, nil
	}

	alloc := m.mod.ExportedFunction("allocate")
	if alloc == nil {
		return 0, fmt.Errorf("mapping has no allocate export")
	}

	results, err := alloc.Call(ctx, uint64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("guest allocate failed: %w", err)
	}
	ptr := uint32(results[0])
	if ptr == 0 {
		return 0, fmt.Errorf("guest allocate returned null for %d bytes", len(data))
	}

	if !m.mod.Memory().Write(ptr, data) {
		return 0, fmt.Errorf("guest memory write out of range: ptr=%d len=%d", ptr, len(data))
	}
	return abi.PackPtrLen(ptr, uint32(len(data))), nil
}

// readFromGuest copies the region named by a packed pointer/length out of
// guest memory.
func (m *Mapping) readFromGuest(packed uint64) ([]byte, bool) {
	if packed == 0 {
		return nil, true
	}
	ptr, length := abi.UnpackPtrLen(packed)
	return m.mod.Memory().Read(ptr, length)
}

// Host function implementations. Each reads a JSON request from guest
// memory, answers from the store, and writes the JSON response back into
// guest memory via the guest's allocate export.

func (r *Runtime) storeGet(ctx context.Context, mod api.Module, packed uint64) uint64 {
	var req wireformat.StoreGetRequestWire
	if detail := readRequest(mod, packed, &req); detail != nil {
		return writeResponse(ctx, mod, wireformat.StoreGetResponseWire{Error: detail})
	}

	e, ok := r.store.Get(req.EntityType, req.ID)
	resp := wireformat.StoreGetResponseWire{Found: ok}
	if ok {
		wire := wireformat.EncodeEntity(e)
		resp.Entity = &wire
	}
	return writeResponse(ctx, mod, resp)
}

func (r *Runtime) storeSet(ctx context.Context, mod api.Module, packed uint64) uint64 {
	var req wireformat.StoreSetRequestWire
	if detail := readRequest(mod, packed, &req); detail != nil {
		return writeResponse(ctx, mod, wireformat.StoreSetResponseWire{Error: detail})
	}

	e, err := wireformat.DecodeEntity(req.Entity)
	if err != nil {
		return writeResponse(ctx, mod, wireformat.StoreSetResponseWire{Error: &wireformat.ErrorDetail{
			Message: err.Error(),
			Type:    "wire_format",
			Code:    "entity",
		}})
	}

	if r.validator != nil {
		result, err := r.validator.Validate(req.EntityType, e)
		if err != nil {
			return writeResponse(ctx, mod, wireformat.StoreSetResponseWire{Error: &wireformat.ErrorDetail{
				Message: err.Error(),
				Type:    "internal",
				Code:    "validator",
			}})
		}
		if !result.Valid {
			return writeResponse(ctx, mod, wireformat.StoreSetResponseWire{Error: validationDetail(req.EntityType, result)})
		}
	}

	r.store.Set(req.EntityType, req.ID, e)
	return writeResponse(ctx, mod, wireformat.StoreSetResponseWire{})
}

func (r *Runtime) storeRemove(ctx context.Context, mod api.Module, packed uint64) uint64 {
	var req wireformat.StoreRemoveRequestWire
	if detail := readRequest(mod, packed, &req); detail != nil {
		return writeResponse(ctx, mod, wireformat.StoreRemoveResponseWire{Error: detail})
	}

	removed := r.store.Remove(req.EntityType, req.ID)
	return writeResponse(ctx, mod, wireformat.StoreRemoveResponseWire{Removed: removed})
}

func (r *Runtime) logMessage(ctx context.Context, mod api.Module, packed uint64) {
	var msg wireformat.LogMessageWire
	if detail := readRequest(mod, packed, &msg); detail != nil {
		r.logger.Warn("dropping undecodable guest log record", zap.String("reason", detail.Message))
		return
	}
	r.sink.Handle(msg)
}

// readRequest reads and unmarshals a guest request. A nil return means
// success.
func readRequest(mod api.Module, packed uint64, out any) *wireformat.ErrorDetail {
	if packed == 0 {
		return &wireformat.ErrorDetail{Message: "empty request", Type: "wire_format", Code: "request"}
	}
	ptr, length := abi.UnpackPtrLen(packed)
	raw, ok := mod.Memory().Read(ptr, length)
	if !ok {
		return &wireformat.ErrorDetail{
			Message: fmt.Sprintf("request out of memory range: ptr=%d len=%d", ptr, length),
			Type:    "wire_format",
			Code:    "request",
		}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &wireformat.ErrorDetail{Message: err.Error(), Type: "wire_format", Code: "request"}
	}
	return nil
}

// writeResponse marshals a response and hands it to the guest through its
// allocate export. A zero return tells the guest no response was written;
// responses are designed so that zero is never a valid success payload.
func writeResponse(ctx context.Context, mod api.Module, resp any) uint64 {
	raw, err := json.Marshal(resp)
	if err != nil {
		return 0
	}

	alloc := mod.ExportedFunction("allocate")
	if alloc == nil {
		return 0
	}
	results, err := alloc.Call(ctx, uint64(len(raw)))
	if err != nil || len(results) == 0 {
		return 0
	}
	ptr := uint32(results[0])
	if ptr == 0 || !mod.Memory().Write(ptr, raw) {
		return 0
	}
	return abi.PackPtrLen(ptr, uint32(len(raw)))
}

func validationDetail(entityType string, result *entities.ValidationResult) *wireformat.ErrorDetail {
	detail := &wireformat.ErrorDetail{
		Message: fmt.Sprintf("entity of type %s rejected", entityType),
		Type:    "store",
		Code:    "validation",
	}
	// Chain the individual failures so the guest sees all of them.
	cur := detail
	for _, ve := range result.Errors {
		cur.Wrapped = &wireformat.ErrorDetail{
			Message: fmt.Sprintf("%s: %s", ve.Field, ve.Message),
			Type:    "validation",
		}
		cur = cur.Wrapped
	}
	return detail
}
