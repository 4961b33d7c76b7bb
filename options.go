package vector

import "go.uber.org/zap"

// options holds the element hooks and collaborators of a Vector.
type options[T any] struct {
	construct func() (T, error)
	copy      func(src T) (T, error)
	move      func(src *T) (T, error)
	destroy   func(v *T)
	memory    memory[T]
	logger    *zap.Logger
}

// Option configures a Vector at construction time.
type Option[T any] func(*options[T])

// WithConstructor sets the default constructor used by NewSized and Resize.
// Default: the zero value of T.
func WithConstructor[T any](construct func() (T, error)) Option[T] {
	return func(o *options[T]) {
		o.construct = construct
	}
}

// WithCopier sets the copy constructor used by Append, Clone, Assign,
// NewFilled and ResizeFill.
// Default: plain assignment.
func WithCopier[T any](copier func(src T) (T, error)) Option[T] {
	return func(o *options[T]) {
		o.copy = copier
	}
}

// WithDeepCopy makes every copy of an element a reflective deep copy, so a
// cloned vector shares no pointers, slices or maps with its source.
// Elements holding channels or funcs fail to copy.
func WithDeepCopy[T any]() Option[T] {
	return func(o *options[T]) {
		o.copy = DeepCopy[T]
	}
}

// WithMover sets the move constructor used when storage is reallocated and
// by AppendMove. A mover must not modify *src: the vector decides which slot
// owns the value once the whole relocation has succeeded.
//
// The result must be the same logical object as *src, taking over its
// resources rather than duplicating them. The slot a value was moved out of
// is wiped without running the destructor, so a mover that builds a fresh
// resource leaks the old one.
// Default: plain assignment.
func WithMover[T any](move func(src *T) (T, error)) Option[T] {
	return func(o *options[T]) {
		o.move = move
	}
}

// WithDestructor sets the hook invoked for every live element leaving the
// vector through PopBack, Clear, Resize or Release. The slot is reset to
// the zero value afterwards.
func WithDestructor[T any](destroy func(v *T)) Option[T] {
	return func(o *options[T]) {
		o.destroy = destroy
	}
}

// WithLogger enables debug logging of reallocation, rollback and release.
func WithLogger[T any](logger *zap.Logger) Option[T] {
	return func(o *options[T]) {
		o.logger = logger
	}
}

// withMemory swaps the storage source; used by tests to inject failures.
func withMemory[T any](m memory[T]) Option[T] {
	return func(o *options[T]) {
		o.memory = m
	}
}

func newOptions[T any](ops []Option[T]) options[T] {
	var opts = options[T]{
		construct: zeroValue[T],
		copy:      assignCopy[T],
		move:      assignMove[T],
		destroy:   func(*T) {},
		memory:    heapMemory[T]{},
		logger:    zap.NewNop(),
	}
	for _, op := range ops {
		op(&opts)
	}
	if nil == opts.logger {
		opts.logger = zap.NewNop()
	}
	return opts
}

func zeroValue[T any]() (T, error) {
	var zero T
	return zero, nil
}

func assignCopy[T any](src T) (T, error) {
	return src, nil
}

func assignMove[T any](src *T) (T, error) {
	return *src, nil
}
