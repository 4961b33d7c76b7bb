package vector

import (
	"errors"
	"fmt"
)

var (
	// ErrAllocation is returned when the backing memory cannot satisfy a request.
	ErrAllocation = errors.New("vector: allocation failure")

	// ErrOutOfRange is returned by checked accessors for an index outside [0, Len()).
	ErrOutOfRange = errors.New("vector: index out of range")

	// ErrInvalidLength is returned when a negative length is requested.
	ErrInvalidLength = errors.New("vector: invalid length")

	// ErrUncopyable is returned by DeepCopy for values holding channels or funcs.
	ErrUncopyable = errors.New("vector: value cannot be deep copied")
)

// ElementError reports a failure raised by an element hook (constructor,
// copier, mover) while the vector was operating on a slot.
type ElementError struct {
	Op    string
	Index int
	Err   error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("vector: %s element %d: %v", e.Op, e.Index, e.Err)
}

func (e *ElementError) Unwrap() error {
	return e.Err
}

func elementError(op string, index int, err error) error {
	return &ElementError{Op: op, Index: index, Err: err}
}

func outOfRange(index, size int) error {
	return fmt.Errorf("%w: index %d, size %d", ErrOutOfRange, index, size)
}
