// Package vector provides a growable contiguous array with explicit control
// over element construction, destruction and storage reallocation.
//
// Every reallocation is all-or-nothing: live elements are relocated into the
// new storage one by one, and if any relocation fails the new storage is
// discarded and the vector is left exactly as it was.
package vector

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"
)

// GrowthFactor is the multiplier applied to the capacity when an append
// finds the storage full.
const GrowthFactor = 2

// Vector is a growable array of T. Slots [0, Len()) hold live elements,
// slots [Len(), Cap()) are raw storage that is never read.
//
// A Vector exclusively owns its storage and is not safe for concurrent use.
type Vector[T any] struct {
	buf  []T // len(buf) is the capacity
	size int
	mem  memory[T]
	opts options[T]
}

// New creates an empty Vector without storage.
func New[T any](ops ...Option[T]) *Vector[T] {
	opts := newOptions(ops)
	return &Vector[T]{mem: opts.memory, opts: opts}
}

// NewSized creates a Vector holding n default-constructed elements, with
// capacity exactly n.
func NewSized[T any](n int, ops ...Option[T]) (*Vector[T], error) {
	v := New(ops...)
	if err := v.populate(n, "construct", func(int) (T, error) {
		return v.opts.construct()
	}); err != nil {
		return nil, err
	}
	return v, nil
}

// NewFilled creates a Vector holding n copies of value, with capacity
// exactly n.
func NewFilled[T any](n int, value T, ops ...Option[T]) (*Vector[T], error) {
	v := New(ops...)
	if err := v.populate(n, "copy", func(int) (T, error) {
		return v.opts.copy(value)
	}); err != nil {
		return nil, err
	}
	return v, nil
}

// Clone returns an independent copy of v built with v's copier. The copy's
// capacity equals v.Len().
func (v *Vector[T]) Clone() (*Vector[T], error) {
	c := v.sibling()
	if err := c.copyFrom(v); err != nil {
		return nil, err
	}
	return c, nil
}

// Take moves the contents of v into a new Vector in constant time and
// leaves v empty, without storage.
func (v *Vector[T]) Take() *Vector[T] {
	t := v.sibling()
	t.buf, t.size, t.mem = v.detach()
	return t
}

// Release destroys every live element and frees the storage. The vector is
// empty afterwards and may be reused.
func (v *Vector[T]) Release() {
	if nil == v.buf {
		return
	}
	capacity := len(v.buf)
	v.destroyRange(v.buf[:v.size])
	v.mem.free(v.buf)
	v.buf, v.size, v.mem = nil, 0, v.opts.memory
	v.opts.logger.Debug("vector released", zap.Int("capacity", capacity))
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int {
	return v.size
}

// Cap returns the number of allocated slots.
func (v *Vector[T]) Cap() int {
	return len(v.buf)
}

// Empty reports whether the vector holds no elements.
func (v *Vector[T]) Empty() bool {
	return 0 == v.size
}

// Reserve ensures the capacity is at least n. It is a no-op when n does not
// exceed the current capacity; otherwise the capacity becomes exactly n.
// On failure the vector is unchanged.
func (v *Vector[T]) Reserve(n int) error {
	if n <= len(v.buf) {
		return nil
	}
	return v.reallocate(n)
}

// ShrinkToFit reallocates the storage to exactly Len() slots, freeing it
// entirely when the vector is empty. On failure the vector is unchanged.
func (v *Vector[T]) ShrinkToFit() error {
	if v.size == len(v.buf) {
		return nil
	}
	return v.reallocate(v.size)
}

// Resize changes the length to n, destroying trailing elements or
// default-constructing new ones. If constructing a new element fails, the
// elements constructed by this call are destroyed and the length is kept;
// any capacity growth is retained.
func (v *Vector[T]) Resize(n int) error {
	return v.resize(n, "construct", v.opts.construct)
}

// ResizeFill is like Resize but new elements are copies of value.
func (v *Vector[T]) ResizeFill(n int, value T) error {
	return v.resize(n, "copy", func() (T, error) {
		return v.opts.copy(value)
	})
}

// Append copies value to the end of the vector, growing the storage by
// GrowthFactor when it is full. If the copy fails the length is unchanged;
// growth that already happened is kept.
func (v *Vector[T]) Append(value T) error {
	if err := v.reserveOne(); err != nil {
		return err
	}
	elem, err := v.opts.copy(value)
	if err != nil {
		return elementError("copy", v.size, err)
	}
	v.buf[v.size] = elem
	v.size++
	return nil
}

// AppendMove moves *value to the end of the vector. On success *value is
// reset to the zero value, since the vector now owns the element.
//
// When value points at one of v's own live elements, that element stays
// where it is and a copy of it is appended instead.
func (v *Vector[T]) AppendMove(value *T) error {
	if v.holds(value) {
		elem, err := v.opts.copy(*value)
		if err != nil {
			return elementError("copy", v.size, err)
		}
		return v.push(elem)
	}

	// move before growing, value may not survive a reallocation otherwise
	elem, err := v.opts.move(value)
	if err != nil {
		return elementError("move", v.size, err)
	}
	if err = v.push(elem); err != nil {
		return err
	}
	var zero T
	*value = zero
	return nil
}

// push stores an already built element in the first raw slot.
func (v *Vector[T]) push(elem T) error {
	if err := v.reserveOne(); err != nil {
		return err
	}
	v.buf[v.size] = elem
	v.size++
	return nil
}

// holds reports whether p points into the live slots of v.
func (v *Vector[T]) holds(p *T) bool {
	size := Sizeof[T]()
	if 0 == v.size || 0 == size {
		return false
	}
	base := uintptr(unsafe.Pointer(&v.buf[0]))
	addr := uintptr(unsafe.Pointer(p))
	return addr >= base && addr < base+uintptr(v.size)*size
}

// Emplace constructs a new element directly in the first raw slot.
//
// Unlike Append, Emplace gives only a weak guarantee: when construct fails
// the length is unchanged but the slot keeps whatever construct wrote to it,
// and no destructor runs for it.
func (v *Vector[T]) Emplace(construct func(slot *T) error) error {
	if err := v.reserveOne(); err != nil {
		return err
	}
	if err := construct(&v.buf[v.size]); err != nil {
		return elementError("emplace", v.size, err)
	}
	v.size++
	return nil
}

// PopBack destroys the last element. It panics if the vector is empty.
func (v *Vector[T]) PopBack() {
	last := &v.buf[v.size-1]
	v.opts.destroy(last)
	var zero T
	*last = zero
	v.size--
}

// Clear destroys every live element. The capacity is unchanged.
func (v *Vector[T]) Clear() {
	v.destroyRange(v.buf[:v.size])
	v.size = 0
}

// At returns the element at index, or ErrOutOfRange.
func (v *Vector[T]) At(index int) (T, error) {
	if index < 0 || index >= v.size {
		var zero T
		return zero, outOfRange(index, v.size)
	}
	return v.buf[index], nil
}

// Set replaces the element at index, or returns ErrOutOfRange.
func (v *Vector[T]) Set(index int, value T) error {
	if index < 0 || index >= v.size {
		return outOfRange(index, v.size)
	}
	v.buf[index] = value
	return nil
}

// Get returns the element at index without checking it against Len().
// Indexes in [Len(), Cap()) read raw storage; anything else panics.
func (v *Vector[T]) Get(index int) T {
	return v.buf[index]
}

// Ptr returns a pointer to the slot at index without checking it against
// Len(). The pointer is invalidated by any call that reallocates.
func (v *Vector[T]) Ptr(index int) *T {
	return &v.buf[index]
}

// Front returns the first element. It panics if the vector has no storage.
func (v *Vector[T]) Front() T {
	return v.buf[0]
}

// Back returns the last element. It panics if the vector is empty.
func (v *Vector[T]) Back() T {
	return v.buf[v.size-1]
}

// Data returns the live elements as a slice sharing the vector's storage.
// The slice is invalidated by any call that reallocates.
func (v *Vector[T]) Data() []T {
	return v.buf[:v.size:len(v.buf)]
}

// Swap exchanges the contents of v and other.
func (v *Vector[T]) Swap(other *Vector[T]) {
	v.buf, other.buf = other.buf, v.buf
	v.size, other.size = other.size, v.size
	v.mem, other.mem = other.mem, v.mem
}

// Assign replaces the contents of v with copies of other's elements. If any
// copy fails v is unchanged.
func (v *Vector[T]) Assign(other *Vector[T]) error {
	if v == other {
		return nil
	}
	tmp := v.sibling()
	if err := tmp.copyFrom(other); err != nil {
		return err
	}
	v.Swap(tmp)
	tmp.Release()
	return nil
}

// MoveFrom replaces the contents of v with other's storage and leaves other
// empty. The previous elements of v are destroyed.
func (v *Vector[T]) MoveFrom(other *Vector[T]) {
	if v == other {
		return
	}
	tmp := v.sibling()
	tmp.buf, tmp.size, tmp.mem = other.detach()
	v.Swap(tmp)
	tmp.Release()
}

func (v *Vector[T]) String() string {
	return fmt.Sprint(v.Data())
}

// sibling returns an empty vector sharing v's configuration.
func (v *Vector[T]) sibling() *Vector[T] {
	return &Vector[T]{mem: v.opts.memory, opts: v.opts}
}

// detach hands out v's storage and resets v to the empty state.
func (v *Vector[T]) detach() ([]T, int, memory[T]) {
	buf, size, mem := v.buf, v.size, v.mem
	v.buf, v.size, v.mem = nil, 0, v.opts.memory
	return buf, size, mem
}

func (v *Vector[T]) copyFrom(src *Vector[T]) error {
	return v.populate(src.size, "copy", func(i int) (T, error) {
		return v.opts.copy(src.buf[i])
	})
}

// populate allocates exactly n slots for an empty vector and builds every
// one of them. On failure the slots built so far are destroyed and the
// storage is freed before the error is returned.
func (v *Vector[T]) populate(n int, op string, build func(i int) (T, error)) error {
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}
	if 0 == n {
		return nil
	}
	buf, err := v.mem.alloc(n)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		elem, err := build(i)
		if err != nil {
			v.destroyRange(buf[:i])
			v.mem.free(buf)
			v.opts.logger.Debug("vector construction rolled back",
				zap.String("op", op),
				zap.Int("index", i),
				zap.Int("size", n),
				zap.Error(err))
			return elementError(op, i, err)
		}
		buf[i] = elem
	}
	v.buf, v.size = buf, n
	return nil
}

func (v *Vector[T]) resize(n int, op string, build func() (T, error)) error {
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}
	if n <= v.size {
		v.destroyRange(v.buf[n:v.size])
		v.size = n
		return nil
	}
	if err := v.Reserve(n); err != nil {
		return err
	}
	for i := v.size; i < n; i++ {
		elem, err := build()
		if err != nil {
			v.destroyRange(v.buf[v.size:i])
			return elementError(op, i, err)
		}
		v.buf[i] = elem
	}
	v.size = n
	return nil
}

// reserveOne makes room for one more element.
func (v *Vector[T]) reserveOne() error {
	if v.size < len(v.buf) {
		return nil
	}
	return v.reallocate(max(1, len(v.buf)) * GrowthFactor)
}

// reallocate relocates the live elements into storage of exactly newCap
// slots. The old storage is not touched until every element has been
// relocated, so a failure leaves the vector exactly as it was.
func (v *Vector[T]) reallocate(newCap int) error {
	if 0 == newCap {
		v.Release()
		return nil
	}

	oldCap := len(v.buf)
	buf, err := v.mem.alloc(newCap)
	if err != nil {
		v.opts.logger.Debug("vector allocation failed",
			zap.Int("capacity", oldCap),
			zap.Int("requested", newCap),
			zap.Error(err))
		return err
	}

	for i := 0; i < v.size; i++ {
		elem, err := v.opts.move(&v.buf[i])
		if err != nil {
			// relocated copies are not owners, drop them without destroying
			v.mem.free(buf)
			v.opts.logger.Debug("vector reallocation rolled back",
				zap.Int("index", i),
				zap.Int("size", v.size),
				zap.Int("capacity", oldCap),
				zap.Int("requested", newCap),
				zap.Error(err))
			return elementError("move", i, err)
		}
		buf[i] = elem
	}

	// ownership moved to buf, retire the old slots without destroying
	if nil != v.buf {
		v.mem.free(v.buf)
	}
	v.buf = buf
	v.opts.logger.Debug("vector reallocated",
		zap.Int("size", v.size),
		zap.Int("old_capacity", oldCap),
		zap.Int("new_capacity", newCap))
	return nil
}

// destroyRange runs the destructor on every slot and resets them to raw.
func (v *Vector[T]) destroyRange(slots []T) {
	for i := range slots {
		v.opts.destroy(&slots[i])
	}
	clear(slots)
}
