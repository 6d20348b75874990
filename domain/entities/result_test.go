package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenindex/mapping-sdk/domain/entities"
)

func TestResultOk(t *testing.T) {
	r := entities.Ok[int, string](42)

	assert.True(t, r.IsOk())
	assert.False(t, r.IsError())

	v, err := r.Value()
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	_, err = r.Err()
	var violation *entities.InvariantViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "error", violation.Accessor)
}

func TestResultErr(t *testing.T) {
	r := entities.Err[int]("boom")

	assert.False(t, r.IsOk())
	assert.True(t, r.IsError())

	e, err := r.Err()
	require.NoError(t, err)
	assert.Equal(t, "boom", e)

	_, err = r.Value()
	var violation *entities.InvariantViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "value", violation.Accessor)
}

func TestResultWrapsConversionOutcome(t *testing.T) {
	toU32 := func(a entities.ByteArray) entities.Result[uint32, error] {
		x, err := a.ToU32()
		if err != nil {
			return entities.Err[uint32](err)
		}
		return entities.Ok[uint32, error](x)
	}

	ok := toU32(entities.ByteArrayFromI32(256))
	require.True(t, ok.IsOk())
	v, err := ok.Value()
	require.NoError(t, err)
	assert.Equal(t, uint32(256), v)

	bad := toU32(entities.ByteArray{0, 0, 0, 0, 1})
	require.True(t, bad.IsError())
	inner, err := bad.Err()
	require.NoError(t, err)
	var overflow *entities.OverflowError
	assert.ErrorAs(t, inner, &overflow)
}
