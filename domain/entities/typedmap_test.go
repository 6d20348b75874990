package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lumenindex/mapping-sdk/domain/entities"
)

func TestTypedMapSetOverwritesInPlace(t *testing.T) {
	m := entities.NewTypedMap[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("a", 3)

	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, 2, m.Len(), "overwrite must not grow the map")
}

func TestTypedMapInsertionOrder(t *testing.T) {
	m := entities.NewTypedMap[string, int]()
	keys := []string{"z", "a", "m", "b"}
	for i, k := range keys {
		m.Set(k, i)
	}
	// Overwriting does not move the entry.
	m.Set("z", 99)

	var got []string
	for _, e := range m.Entries() {
		got = append(got, e.Key)
	}
	assert.Equal(t, keys, got)
}

func TestTypedMapMiss(t *testing.T) {
	m := entities.NewTypedMap[string, string]()
	m.Set("present", "x")

	v, ok := m.Get("absent")
	assert.False(t, ok)
	assert.Empty(t, v)
	assert.False(t, m.IsSet("absent"))
	assert.True(t, m.IsSet("present"))

	_, ok = m.GetEntry("absent")
	assert.False(t, ok)
}

func TestTypedMapGetEntryAllowsInPlaceUpdate(t *testing.T) {
	m := entities.NewTypedMap[int, string]()
	m.Set(7, "old")

	e, ok := m.GetEntry(7)
	assert.True(t, ok)
	e.Value = "new"

	v, _ := m.Get(7)
	assert.Equal(t, "new", v)
}
