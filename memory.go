package vector

import (
	"fmt"
	"unsafe"
)

// maxAllocBytes bounds a single storage request: 2GiB on 32-bit platforms,
// 128TiB on 64-bit ones.
const maxAllocBytes = 1 << (31 + (^uintptr(0)>>63)*16)

// memory hands out raw slot storage for a Vector. Slots returned by alloc
// hold zero values and are treated as uninitialized by the vector.
type memory[T any] interface {
	alloc(n int) ([]T, error)
	free(buf []T)
}

// heapMemory allocates slot storage from the Go heap.
type heapMemory[T any] struct{}

func (heapMemory[T]) alloc(n int) ([]T, error) {
	if err := checkAlloc[T](n); err != nil {
		return nil, err
	}
	return make([]T, n), nil
}

// free wipes the buffer so retired slots do not pin anything for the GC.
func (heapMemory[T]) free(buf []T) {
	clear(buf)
}

// checkAlloc rejects requests the heap could never satisfy before make
// gets a chance to panic on them.
func checkAlloc[T any](n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative slot count %d", ErrAllocation, n)
	}
	size := max(Sizeof[T](), 1)
	if uintptr(n) > maxAllocBytes/size {
		return fmt.Errorf("%w: %d slots of %d bytes", ErrAllocation, n, size)
	}
	return nil
}

// Sizeof returns the size in bytes of one slot of T.
func Sizeof[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}
