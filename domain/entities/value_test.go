package entities_test

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenindex/mapping-sdk/domain/entities"
)

func TestValueKinds(t *testing.T) {
	tests := []struct {
		name string
		v    entities.Value
		kind entities.ValueKind
	}{
		{"string", entities.StringValue("s"), entities.ValueKindString},
		{"int32", entities.Int32Value(7), entities.ValueKindInt32},
		{"bigint", entities.BigIntValue(big.NewInt(1)), entities.ValueKindBigInt},
		{"bytes", entities.BytesValue(entities.Bytes{1}), entities.ValueKindBytes},
		{"bool", entities.BoolValue(true), entities.ValueKindBool},
		{"bigdecimal", entities.BigDecimalValue(decimal.New(1, -2)), entities.ValueKindBigDecimal},
		{"array", entities.ArrayValue([]entities.Value{entities.NullValue()}), entities.ValueKindArray},
		{"null", entities.NullValue(), entities.ValueKindNull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.v.Kind())
			assert.Equal(t, tt.kind == entities.ValueKindNull, tt.v.IsNull())
		})
	}
}

func TestValueCoercions(t *testing.T) {
	s, err := entities.StringValue("hello").AsString()
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	x, err := entities.Int32Value(-5).AsInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(-5), x)

	b, err := entities.BoolValue(true).AsBool()
	require.NoError(t, err)
	assert.True(t, b)

	bi, err := entities.BigIntValue(big.NewInt(1 << 40)).AsBigInt()
	require.NoError(t, err)
	assert.Zero(t, bi.Cmp(big.NewInt(1<<40)))

	d, err := entities.BigDecimalValue(decimal.RequireFromString("1.25")).AsBigDecimal()
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("1.25")))

	raw, err := entities.BytesValue(entities.Bytes{0xAB}).AsBytes()
	require.NoError(t, err)
	assert.Equal(t, entities.Bytes{0xAB}, raw)

	arr, err := entities.ArrayValue([]entities.Value{entities.Int32Value(1)}).AsArray()
	require.NoError(t, err)
	require.Len(t, arr, 1)
}

func TestValueCoercionMismatch(t *testing.T) {
	_, err := entities.StringValue("x").AsInt32()
	var mismatch *entities.TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, entities.ValueKindInt32, mismatch.Want)
	assert.Equal(t, entities.ValueKindString, mismatch.Got)

	_, err = entities.NullValue().AsString()
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, entities.ValueKindNull, mismatch.Got)
}

func TestBigIntValueNormalizesNil(t *testing.T) {
	bi, err := entities.BigIntValue(nil).AsBigInt()
	require.NoError(t, err)
	require.NotNil(t, bi)
	assert.Zero(t, bi.Sign())
}
