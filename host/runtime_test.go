package host_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenindex/mapping-sdk/domain/entities"
	"github.com/lumenindex/mapping-sdk/host"
	"github.com/lumenindex/mapping-sdk/hostfuncs"
)

// emptyModule is the smallest valid WASM binary: magic and version only.
var emptyModule = []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}

func TestRuntimeLifecycle(t *testing.T) {
	ctx := context.Background()

	store := hostfuncs.NewStore()
	rt, err := host.NewRuntime(ctx, host.WithStore(store))
	require.NoError(t, err)
	defer func() { require.NoError(t, rt.Close(ctx)) }()

	assert.Same(t, store, rt.Store())
}

func TestRuntimeRejectsInvalidModule(t *testing.T) {
	ctx := context.Background()

	rt, err := host.NewRuntime(ctx)
	require.NoError(t, err)
	defer rt.Close(ctx)

	_, err = rt.Instantiate(ctx, []byte("not a wasm module"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to compile")
}

func TestMappingInvokeChecksExports(t *testing.T) {
	ctx := context.Background()

	rt, err := host.NewRuntime(ctx)
	require.NoError(t, err)
	defer rt.Close(ctx)

	t.Run("undeclared handler", func(t *testing.T) {
		manifest := &entities.Manifest{
			Name:     "guarded",
			Version:  "1.0.0",
			Handlers: []entities.HandlerDef{{Export: "handle_transfer"}},
		}
		m, err := rt.Instantiate(ctx, emptyModule, manifest)
		require.NoError(t, err)
		defer m.Close(ctx)

		err = m.Invoke(ctx, "handle_other", entities.NewEntity())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not declared in manifest")
	})

	t.Run("missing export", func(t *testing.T) {
		m, err := rt.Instantiate(ctx, emptyModule, nil)
		require.NoError(t, err)
		defer m.Close(ctx)

		err = m.Invoke(ctx, "handle_transfer", entities.NewEntity())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no export")
	})
}
