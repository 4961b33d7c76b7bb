package vector

import (
	"cmp"
	"reflect"
)

// Compare orders two vectors lexicographically: the first mismatching
// element decides, otherwise the shorter vector is the lesser one.
// The result is -1, 0 or +1.
//
// Floats are ordered by cmp.Compare, which treats NaN as equal to NaN, so
// Compare may return 0 for vectors that Equal reports as different.
func Compare[T cmp.Ordered](a, b *Vector[T]) int {
	return CompareFunc(a, b, cmp.Compare[T])
}

// CompareFunc is like Compare but uses compare to order elements.
func CompareFunc[T any](a, b *Vector[T], compare func(x, y T) int) int {
	n := min(a.size, b.size)
	for i := 0; i < n; i++ {
		if c := compare(a.buf[i], b.buf[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.size, b.size)
}

// Less reports whether a orders before b.
func Less[T cmp.Ordered](a, b *Vector[T]) bool {
	return Compare(a, b) < 0
}

// Greater reports whether a orders after b.
func Greater[T cmp.Ordered](a, b *Vector[T]) bool {
	return Compare(a, b) > 0
}

// LessFunc reports whether a orders before b under compare.
func LessFunc[T any](a, b *Vector[T], compare func(x, y T) int) bool {
	return CompareFunc(a, b, compare) < 0
}

// GreaterFunc reports whether a orders after b under compare.
func GreaterFunc[T any](a, b *Vector[T], compare func(x, y T) int) bool {
	return CompareFunc(a, b, compare) > 0
}

// Equal reports whether a and b hold the same elements in the same order.
// Elements are compared with ==, so NaN never equals itself.
func Equal[T comparable](a, b *Vector[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

// EqualFunc is like Equal but uses eq to compare elements.
func EqualFunc[T any](a, b *Vector[T], eq func(x, y T) bool) bool {
	if a.size != b.size {
		return false
	}
	for i := 0; i < a.size; i++ {
		if !eq(a.buf[i], b.buf[i]) {
			return false
		}
	}
	return true
}

// DeepEqual is like Equal for element types that are not comparable, using
// reflect.DeepEqual on each pair.
func DeepEqual[T any](a, b *Vector[T]) bool {
	return EqualFunc(a, b, deepEqual[T])
}

func deepEqual[T any](a, b T) bool {
	return reflect.DeepEqual(a, b)
}
