package entities

// TypedMapEntry is a single key/value pair of a TypedMap. Key uniqueness is
// enforced by TypedMap.Set, not by the entry itself.
type TypedMapEntry[K comparable, V any] struct {
	Key   K
	Value V
}

// TypedMap is a mutable association list: entries keep their insertion
// order and lookups are linear scans where the first matching key wins.
// The deterministic ordering is load-bearing for mappings, which replay the
// same event stream on every host; N stays small enough that hashing never
// pays for itself.
//
// There is no removal operation at this layer. Entity simulates removal by
// overwriting with a null-tagged Value.
type TypedMap[K comparable, V any] struct {
	entries []TypedMapEntry[K, V]
}

// NewTypedMap creates an empty TypedMap.
func NewTypedMap[K comparable, V any]() *TypedMap[K, V] {
	return &TypedMap[K, V]{}
}

// Set updates the first entry with an equal key in place, or appends a new
// entry when the key is absent. After Set there is at most one entry per
// distinct key.
func (m *TypedMap[K, V]) Set(key K, value V) {
	for i := range m.entries {
		if m.entries[i].Key == key {
			m.entries[i].Value = value
			return
		}
	}
	m.entries = append(m.entries, TypedMapEntry[K, V]{Key: key, Value: value})
}

// Get returns the value for key, or ok=false when the key is absent.
func (m *TypedMap[K, V]) Get(key K) (V, bool) {
	for i := range m.entries {
		if m.entries[i].Key == key {
			return m.entries[i].Value, true
		}
	}
	var zero V
	return zero, false
}

// GetEntry returns a pointer to the first entry with an equal key, or
// ok=false when the key is absent. The pointer stays valid until the next
// Set that grows the map.
func (m *TypedMap[K, V]) GetEntry(key K) (*TypedMapEntry[K, V], bool) {
	for i := range m.entries {
		if m.entries[i].Key == key {
			return &m.entries[i], true
		}
	}
	return nil, false
}

// IsSet reports whether an entry with the given key exists.
func (m *TypedMap[K, V]) IsSet(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// Len returns the number of entries.
func (m *TypedMap[K, V]) Len() int {
	return len(m.entries)
}

// Entries returns the entries in insertion order. The slice aliases the
// map's storage; callers must not grow it.
func (m *TypedMap[K, V]) Entries() []TypedMapEntry[K, V] {
	return m.entries
}
