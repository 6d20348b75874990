package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenindex/mapping-sdk/domain/entities"
)

func TestByteArrayFromI32(t *testing.T) {
	tests := []struct {
		name string
		in   int32
		want entities.ByteArray
	}{
		{"zero", 0, entities.ByteArray{0, 0, 0, 0}},
		{"one", 1, entities.ByteArray{1, 0, 0, 0}},
		{"byte order", 0x01020304, entities.ByteArray{0x04, 0x03, 0x02, 0x01}},
		{"minus one", -1, entities.ByteArray{0xFF, 0xFF, 0xFF, 0xFF}},
		{"min int32", -2147483648, entities.ByteArray{0x00, 0x00, 0x00, 0x80}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, entities.ByteArrayFromI32(tt.in))
		})
	}
}

func TestByteArrayI32RoundTrip(t *testing.T) {
	for _, x := range []int32{0, 1, -1, 256, -256, 2147483647, -2147483648, 42} {
		got, err := entities.ByteArrayFromI32(x).ToI32()
		require.NoError(t, err)
		assert.Equal(t, x, got)
	}
}

func TestEmptyByteArrayIsFourZeroBytes(t *testing.T) {
	// The 4-byte zero encoding is deliberate; callers depend on the length.
	assert.Equal(t, entities.ByteArray{0, 0, 0, 0}, entities.EmptyByteArray())
}

func TestByteArrayFromHexString(t *testing.T) {
	t.Run("with prefix", func(t *testing.T) {
		a, err := entities.ByteArrayFromHexString("0xff00")
		require.NoError(t, err)
		assert.Equal(t, entities.ByteArray{0xFF, 0x00}, a)
	})

	t.Run("without prefix", func(t *testing.T) {
		a, err := entities.ByteArrayFromHexString("deadbeef")
		require.NoError(t, err)
		assert.Equal(t, entities.ByteArray{0xDE, 0xAD, 0xBE, 0xEF}, a)
	})

	t.Run("odd digit count", func(t *testing.T) {
		_, err := entities.ByteArrayFromHexString("0xfff")
		var malformed *entities.MalformedInputError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, "hex", malformed.Encoding)
	})

	t.Run("invalid digit", func(t *testing.T) {
		_, err := entities.ByteArrayFromHexString("0xzz")
		var malformed *entities.MalformedInputError
		require.ErrorAs(t, err, &malformed)
	})
}

func TestByteArrayHexRoundTrip(t *testing.T) {
	for _, h := range []string{"0xff00", "0x", "0x00", "0xdeadbeef"} {
		a, err := entities.ByteArrayFromHexString(h)
		require.NoError(t, err)
		assert.Equal(t, h, a.ToHexString())
	}
}

func TestByteArrayToU32(t *testing.T) {
	t.Run("exact width", func(t *testing.T) {
		x, err := entities.ByteArrayFromI32(256).ToU32()
		require.NoError(t, err)
		assert.Equal(t, uint32(256), x)
	})

	t.Run("short buffer zero extends", func(t *testing.T) {
		x, err := entities.ByteArray{0x05}.ToU32()
		require.NoError(t, err)
		assert.Equal(t, uint32(5), x)
	})

	t.Run("empty buffer", func(t *testing.T) {
		x, err := entities.ByteArray{}.ToU32()
		require.NoError(t, err)
		assert.Equal(t, uint32(0), x)
	})

	t.Run("trailing zeros accepted", func(t *testing.T) {
		x, err := entities.ByteArray{0x01, 0, 0, 0, 0, 0}.ToU32()
		require.NoError(t, err)
		assert.Equal(t, uint32(1), x)
	})

	t.Run("nonzero high byte overflows", func(t *testing.T) {
		_, err := entities.ByteArray{0, 0, 0, 0, 1}.ToU32()
		var overflow *entities.OverflowError
		require.ErrorAs(t, err, &overflow)
		assert.Equal(t, 4, overflow.Width)
	})
}

func TestByteArrayToI32(t *testing.T) {
	t.Run("sign extension from short buffer", func(t *testing.T) {
		// 0x80 alone reads as -128, not 128.
		x, err := entities.ByteArray{0x80}.ToI32()
		require.NoError(t, err)
		assert.Equal(t, int32(-128), x)
	})

	t.Run("positive short buffer", func(t *testing.T) {
		x, err := entities.ByteArray{0x7F}.ToI32()
		require.NoError(t, err)
		assert.Equal(t, int32(127), x)
	})

	t.Run("long negative buffer with 0xFF padding", func(t *testing.T) {
		x, err := entities.ByteArray{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}.ToI32()
		require.NoError(t, err)
		assert.Equal(t, int32(-1), x)
	})

	t.Run("long positive buffer with zero padding", func(t *testing.T) {
		x, err := entities.ByteArray{0x2A, 0, 0, 0, 0}.ToI32()
		require.NoError(t, err)
		assert.Equal(t, int32(42), x)
	})

	t.Run("padding mismatch overflows", func(t *testing.T) {
		// Last byte says negative, so bytes past index 3 must be 0xFF.
		_, err := entities.ByteArray{0, 0, 0, 0, 0x00, 0xFF}.ToI32()
		var overflow *entities.OverflowError
		require.ErrorAs(t, err, &overflow)
	})

	t.Run("truncation equivalence", func(t *testing.T) {
		long, err := entities.ByteArray{0x04, 0x03, 0x02, 0x01, 0, 0}.ToI32()
		require.NoError(t, err)
		short, err := entities.ByteArray{0x04, 0x03, 0x02, 0x01}.ToI32()
		require.NoError(t, err)
		assert.Equal(t, short, long)
	})
}

func TestByteArrayToU64(t *testing.T) {
	x, err := entities.ByteArrayFromU64(1 << 40).ToU64()
	require.NoError(t, err)
	assert.Equal(t, uint64(1)<<40, x)

	_, err = entities.ByteArray{0, 0, 0, 0, 0, 0, 0, 0, 1}.ToU64()
	var overflow *entities.OverflowError
	require.ErrorAs(t, err, &overflow)
}

func TestByteArrayEqual(t *testing.T) {
	a := entities.ByteArray{1, 2, 3}
	assert.True(t, a.Equal(entities.ByteArray{1, 2, 3}))
	assert.False(t, a.Equal(entities.ByteArray{1, 2}))
	assert.False(t, a.Equal(entities.ByteArray{1, 2, 4}))
	assert.True(t, entities.ByteArray(nil).Equal(entities.ByteArray{}))
}

func TestByteArrayConcat(t *testing.T) {
	a := entities.ByteArray{1, 2}
	b := entities.ByteArray{3}
	assert.Equal(t, entities.ByteArray{1, 2, 3}, a.Concat(b))
	// Operands untouched.
	assert.Equal(t, entities.ByteArray{1, 2}, a)
}

func TestByteArrayBase58RoundTrip(t *testing.T) {
	a := entities.ByteArray{0x00, 0x01, 0x02}
	decoded, err := entities.ByteArrayFromBase58(a.ToBase58())
	require.NoError(t, err)
	assert.True(t, a.Equal(decoded))

	_, err = entities.ByteArrayFromBase58("0OIl")
	var malformed *entities.MalformedInputError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "base58", malformed.Encoding)
}

func TestByteArrayUTF8(t *testing.T) {
	a := entities.ByteArrayFromUTF8("héllo")
	assert.Equal(t, len([]byte("héllo")), len(a))
	assert.Equal(t, "héllo", a.ToUTF8())
}
