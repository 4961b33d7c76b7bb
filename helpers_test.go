package vector

import (
	"errors"
)

var errBoom = errors.New("boom")

// item is an element whose identity survives relocation, so the tracker can
// tell live objects from wiped slots.
type item struct {
	id  int
	val int
}

// tracker implements the element hooks and records object lifetimes.
type tracker struct {
	next          int
	live          map[int]bool
	calls         map[string]int
	failOn        map[string]int
	doubleDestroy int
}

func newTracker() *tracker {
	return &tracker{
		next:   1,
		live:   make(map[int]bool),
		calls:  make(map[string]int),
		failOn: make(map[string]int),
	}
}

// fail makes the n-th call (1-based, counted from now) of op fail.
func (tr *tracker) fail(op string, n int) {
	tr.failOn[op] = tr.calls[op] + n
}

func (tr *tracker) hit(op string) error {
	tr.calls[op]++
	if n, ok := tr.failOn[op]; ok && n == tr.calls[op] {
		return errBoom
	}
	return nil
}

func (tr *tracker) birth(val int) item {
	it := item{id: tr.next, val: val}
	tr.live[it.id] = true
	tr.next++
	return it
}

func (tr *tracker) options() []Option[item] {
	return []Option[item]{
		WithConstructor(func() (item, error) {
			if err := tr.hit("construct"); err != nil {
				return item{}, err
			}
			return tr.birth(0), nil
		}),
		WithCopier(func(src item) (item, error) {
			if err := tr.hit("copy"); err != nil {
				return item{}, err
			}
			return tr.birth(src.val), nil
		}),
		WithMover(func(src *item) (item, error) {
			if err := tr.hit("move"); err != nil {
				return item{}, err
			}
			return *src, nil
		}),
		WithDestructor(func(v *item) {
			tr.calls["destroy"]++
			if !tr.live[v.id] {
				tr.doubleDestroy++
			}
			delete(tr.live, v.id)
		}),
	}
}

// track builds an item outside any vector, e.g. as an Append argument.
func (tr *tracker) track(val int) item {
	return tr.birth(val)
}

func values(v *Vector[item]) []int {
	out := make([]int, 0, v.Len())
	for _, it := range v.Data() {
		out = append(out, it.val)
	}
	return out
}

// countingMemory wraps the heap and can be told to refuse an allocation.
type countingMemory[T any] struct {
	allocs int
	frees  int
	failAt int // 1-based allocation number that fails, 0 for never
}

func (m *countingMemory[T]) alloc(n int) ([]T, error) {
	if m.failAt != 0 && m.allocs+1 == m.failAt {
		m.failAt = 0
		return nil, ErrAllocation
	}
	buf, err := heapMemory[T]{}.alloc(n)
	if err != nil {
		return nil, err
	}
	m.allocs++
	return buf, nil
}

func (m *countingMemory[T]) free(buf []T) {
	m.frees++
	heapMemory[T]{}.free(buf)
}

func (m *countingMemory[T]) outstanding() int {
	return m.allocs - m.frees
}
