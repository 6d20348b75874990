// Package abi implements the pointer/length convention shared by host and
// guest: a single uint64 with the linear-memory pointer in the high 32 bits
// and the byte length in the low 32 bits.
package abi

import "fmt"

// PackPtrLen packs a pointer and length into one uint64. A null pointer
// with a nonzero length is a corrupted ABI state and panics; this is the
// one place the SDK aborts instead of returning an error.
func PackPtrLen(ptr, length uint32) uint64 {
	if ptr == 0 && length > 0 {
		panic(fmt.Sprintf("abi: null pointer packed with length %d", length))
	}
	return uint64(ptr)<<32 | uint64(length)
}

// UnpackPtrLen splits a packed uint64 back into pointer and length. Panics
// under the same corruption condition as PackPtrLen.
func UnpackPtrLen(packed uint64) (ptr, length uint32) {
	ptr = uint32(packed >> 32)
	length = uint32(packed)
	if ptr == 0 && length > 0 {
		panic(fmt.Sprintf("abi: null pointer unpacked with length %d", length))
	}
	return ptr, length
}
