package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenindex/mapping-sdk/domain/entities"
	"github.com/lumenindex/mapping-sdk/host/registry"
)

func TestRegistryRegisterAndLookup(t *testing.T) {
	reg := registry.NewRegistry()

	def := entities.EntityDef{
		Attributes: []entities.AttributeDef{{Key: "symbol", Kind: "string"}},
	}
	require.NoError(t, reg.Register("Token", def))

	got, ok := reg.Lookup("Token")
	require.True(t, ok)
	assert.Equal(t, def, got)

	_, ok = reg.Lookup("Account")
	assert.False(t, ok)
}

func TestRegistryRejectsDuplicatesAndEmptyNames(t *testing.T) {
	reg := registry.NewRegistry()

	require.NoError(t, reg.Register("Token", entities.EntityDef{}))
	assert.Error(t, reg.Register("Token", entities.EntityDef{}))
	assert.Error(t, reg.Register("", entities.EntityDef{}))
}

func TestRegistryStrictMode(t *testing.T) {
	assert.True(t, registry.NewRegistry().Strict(), "strict by default")
	assert.False(t, registry.NewRegistry(registry.WithStrictMode(false)).Strict())
}
