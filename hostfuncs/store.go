// Package hostfuncs provides pure-Go implementations of the host functions
// the runtime exposes to guest mappings. Nothing here depends on a WASM
// runtime, so the same implementations back unit tests and the wazero host
// module alike.
package hostfuncs

import (
	"sync"

	"go.uber.org/zap"

	"github.com/lumenindex/mapping-sdk/domain/entities"
)

// Store is the in-memory entity store backing store_get/store_set/
// store_remove. Entities are keyed by (type, id). The guest layer is
// single-threaded, but one store may serve several mapping instances, so
// access is mutex-guarded.
type Store struct {
	mu     sync.RWMutex
	byType map[string]map[string]*entities.Entity
	logger *zap.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStoreLogger sets the logger. Defaults to zap.NewNop().
func WithStoreLogger(logger *zap.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		byType: make(map[string]map[string]*entities.Entity),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the entity stored under (entityType, id), or ok=false.
func (s *Store) Get(entityType, id string) (*entities.Entity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.byType[entityType][id]
	return e, ok
}

// Set stores the entity under (entityType, id), replacing any previous
// version wholesale. Partial updates are expressed by the mapping itself
// via Entity.Merge before calling Set.
func (s *Store) Set(entityType, id string, e *entities.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, ok := s.byType[entityType]
	if !ok {
		ids = make(map[string]*entities.Entity)
		s.byType[entityType] = ids
	}
	ids[id] = e

	s.logger.Debug("store set",
		zap.String("entity_type", entityType),
		zap.String("id", id),
		zap.Int("attributes", e.Len()),
	)
}

// Remove deletes the entity under (entityType, id) and reports whether it
// existed.
func (s *Store) Remove(entityType, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, ok := s.byType[entityType]
	if !ok {
		return false
	}
	if _, ok := ids[id]; !ok {
		return false
	}
	delete(ids, id)

	s.logger.Debug("store remove",
		zap.String("entity_type", entityType),
		zap.String("id", id),
	)
	return true
}

// Len returns the total number of stored entities across all types.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, ids := range s.byType {
		n += len(ids)
	}
	return n
}

// Types returns the entity type names with at least one stored entity.
func (s *Store) Types() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var types []string
	for name, ids := range s.byType {
		if len(ids) > 0 {
			types = append(types, name)
		}
	}
	return types
}
