//go:build wasip1

package abi

import (
	"sync"
	"unsafe"
)

// pinned keeps references to every buffer handed to the host so the Go GC
// does not move or collect them while the host still holds the pointer.
var pinned = struct {
	sync.Mutex
	bufs map[uint32][]byte
}{bufs: make(map[uint32][]byte)}

// allocate reserves guest linear memory the host can write into. The
// buffer stays pinned until deallocate or ReleaseAll.
//
//go:wasmexport allocate
func allocate(size uint32) uint32 {
	if size == 0 {
		return 0
	}
	buf := make([]byte, size)
	ptr := uint32(uintptr(unsafe.Pointer(&buf[0])))

	pinned.Lock()
	pinned.bufs[ptr] = buf
	pinned.Unlock()

	return ptr
}

// deallocate unpins a buffer, returning it to the GC.
//
//go:wasmexport deallocate
func deallocate(ptr uint32, size uint32) {
	pinned.Lock()
	delete(pinned.bufs, ptr)
	pinned.Unlock()
}

// ReleaseAll unpins every tracked buffer. Called during panic recovery and
// module shutdown so aborted invocations do not leak pins.
func ReleaseAll() {
	pinned.Lock()
	clear(pinned.bufs)
	pinned.Unlock()
}

// PtrFromBytes copies data into freshly allocated, pinned guest memory and
// returns the packed pointer/length for handing to the host.
func PtrFromBytes(data []byte) uint64 {
	if len(data) == 0 {
		return 0
	}
	size := uint32(len(data))
	ptr := allocate(size)
	dst := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ptr))), size)
	copy(dst, data)
	return PackPtrLen(ptr, size)
}

// BytesFromPtr copies the region named by a packed pointer/length out of
// linear memory. The caller owns the returned slice.
func BytesFromPtr(packed uint64) []byte {
	ptr, length := UnpackPtrLen(packed)
	if ptr == 0 || length == 0 {
		return nil
	}
	src := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ptr))), length)
	out := make([]byte, length)
	copy(out, src)
	return out
}

// ReleasePacked unpins the buffer named by a packed pointer/length once the
// host is done with it.
func ReleasePacked(packed uint64) {
	ptr, length := UnpackPtrLen(packed)
	if ptr != 0 && length > 0 {
		deallocate(ptr, length)
	}
}
