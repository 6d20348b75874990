// Package entities provides the core value types of the mapping SDK:
// byte-array primitives, the insertion-ordered TypedMap, the tagged Value
// union, Entity, and Result. These are the types that cross the WASM ABI
// boundary between the indexing host and guest mappings.
package entities

import (
	"encoding/hex"
	"strings"

	"github.com/mr-tron/base58"
)

// ByteArray is an ordered sequence of bytes with a fixed little-endian
// integer interpretation: byte 0 is least significant. The bytes carry no
// intrinsic sign; signedness is chosen by the caller at conversion time.
type ByteArray []byte

// Bytes is the canonical dynamically-sized buffer type. It shares
// ByteArray's representation; the distinct name marks intended usage, not a
// structural difference.
type Bytes = ByteArray

// ByteArrayFromI32 encodes a signed 32-bit integer as 4 little-endian bytes.
func ByteArrayFromI32(x int32) ByteArray {
	u := uint32(x)
	return ByteArray{byte(u), byte(u >> 8), byte(u >> 16), byte(u >> 24)}
}

// ByteArrayFromU32 encodes an unsigned 32-bit integer as 4 little-endian bytes.
func ByteArrayFromU32(x uint32) ByteArray {
	return ByteArray{byte(x), byte(x >> 8), byte(x >> 16), byte(x >> 24)}
}

// ByteArrayFromU64 encodes an unsigned 64-bit integer as 8 little-endian bytes.
func ByteArrayFromU64(x uint64) ByteArray {
	out := make(ByteArray, 8)
	for i := range out {
		out[i] = byte(x >> (8 * i))
	}
	return out
}

// EmptyByteArray returns the 4-byte encoding of zero, not a zero-length
// buffer. Downstream stores key on the 4-byte form, so the length is part
// of the contract.
func EmptyByteArray() ByteArray {
	return ByteArrayFromI32(0)
}

// ByteArrayFromHexString decodes a hex string with an optional 0x prefix.
// Byte i corresponds to hex digits 2i..2i+1. An odd number of digits is a
// MalformedInputError.
func ByteArrayFromHexString(s string) (ByteArray, error) {
	digits := strings.TrimPrefix(s, "0x")
	if len(digits)%2 != 0 {
		return nil, &MalformedInputError{Encoding: "hex", Input: s, Reason: "odd number of digits"}
	}
	out, err := hex.DecodeString(digits)
	if err != nil {
		return nil, &MalformedInputError{Encoding: "hex", Input: s, Reason: err.Error()}
	}
	return out, nil
}

// ByteArrayFromUTF8 encodes text as UTF-8 bytes with no terminator.
func ByteArrayFromUTF8(s string) ByteArray {
	return ByteArray(s)
}

// ByteArrayFromBase58 decodes a base58 (Bitcoin alphabet) string.
func ByteArrayFromBase58(s string) (ByteArray, error) {
	out, err := base58.Decode(s)
	if err != nil {
		return nil, &MalformedInputError{Encoding: "base58", Input: s, Reason: err.Error()}
	}
	return out, nil
}

// ToHexString returns the 0x-prefixed lowercase hex form. Round-trips with
// ByteArrayFromHexString.
func (a ByteArray) ToHexString() string {
	return "0x" + hex.EncodeToString(a)
}

// ToBase58 returns the base58 (Bitcoin alphabet) form.
func (a ByteArray) ToBase58() string {
	return base58.Encode(a)
}

// ToUTF8 interprets the buffer as UTF-8 text.
func (a ByteArray) ToUTF8() string {
	return string(a)
}

// String implements fmt.Stringer as the hex form.
func (a ByteArray) String() string {
	return a.ToHexString()
}

// ToU32 interprets the buffer as a little-endian unsigned 32-bit integer.
// Buffers shorter than 4 bytes are zero-extended; any nonzero byte at index
// 4 or above is an OverflowError.
func (a ByteArray) ToU32() (uint32, error) {
	for i := 4; i < len(a); i++ {
		if a[i] != 0 {
			return 0, &OverflowError{Op: "to_u32", Width: 4, Len: len(a)}
		}
	}
	var x uint32
	for i := 0; i < len(a) && i < 4; i++ {
		x |= uint32(a[i]) << (8 * i)
	}
	return x, nil
}

// ToU64 interprets the buffer as a little-endian unsigned 64-bit integer
// under the same zero-extension rules as ToU32.
func (a ByteArray) ToU64() (uint64, error) {
	for i := 8; i < len(a); i++ {
		if a[i] != 0 {
			return 0, &OverflowError{Op: "to_u64", Width: 8, Len: len(a)}
		}
	}
	var x uint64
	for i := 0; i < len(a) && i < 8; i++ {
		x |= uint64(a[i]) << (8 * i)
	}
	return x, nil
}

// ToI32 interprets the buffer as a little-endian two's-complement 32-bit
// integer. The sign is taken from the high bit of the last byte; buffers
// shorter than 4 bytes are sign-extended with 0xFF or 0x00 accordingly.
// Bytes at index 4 and above must equal the padding value, otherwise the
// value does not fit and an OverflowError is returned.
func (a ByteArray) ToI32() (int32, error) {
	var pad byte
	if len(a) > 0 && a[len(a)-1]&0x80 != 0 {
		pad = 0xFF
	}
	for i := 4; i < len(a); i++ {
		if a[i] != pad {
			return 0, &OverflowError{Op: "to_i32", Width: 4, Len: len(a)}
		}
	}
	var x uint32
	for i := 0; i < 4; i++ {
		b := pad
		if i < len(a) {
			b = a[i]
		}
		x |= uint32(b) << (8 * i)
	}
	return int32(x), nil
}

// Equal reports whether both buffers have the same length and identical
// bytes at every index.
func (a ByteArray) Equal(other ByteArray) bool {
	if len(a) != len(other) {
		return false
	}
	for i := range a {
		if a[i] != other[i] {
			return false
		}
	}
	return true
}

// Concat returns a new buffer holding a followed by other.
func (a ByteArray) Concat(other ByteArray) ByteArray {
	out := make(ByteArray, 0, len(a)+len(other))
	out = append(out, a...)
	out = append(out, other...)
	return out
}
