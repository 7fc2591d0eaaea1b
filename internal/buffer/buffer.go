// Package buffer provides growable slices with an optional capacity cap,
// used for the compiler's instruction buffer and the VM's value stack.
package buffer

import "errors"

// ErrCapacity is returned when a capped buffer would grow past its limit.
var ErrCapacity = errors.New("buffer capacity exceeded")

// List is an append-only slice that grows by doubling and can be reset
// without releasing its backing array.
type List[T any] struct {
	items []T
	max   int
}

// NewList returns a List with the given initial capacity. A max of zero or
// less means the list may grow without bound.
func NewList[T any](initial, max int) *List[T] {
	if initial < 1 {
		initial = 1
	}
	if max > 0 && initial > max {
		initial = max
	}
	return &List[T]{items: make([]T, 0, initial), max: max}
}

// Len returns the number of items in the list.
func (l *List[T]) Len() int { return len(l.items) }

// Cap returns the capacity of the current backing array.
func (l *List[T]) Cap() int { return cap(l.items) }

// Max returns the configured cap, or zero when unbounded.
func (l *List[T]) Max() int { return l.max }

// Items returns a view over the list contents. The view is invalidated by
// the next Reset or growing Append.
func (l *List[T]) Items() []T { return l.items }

// At returns the item at index i.
func (l *List[T]) At(i int) T { return l.items[i] }

// Set overwrites the item at index i.
func (l *List[T]) Set(i int, v T) { l.items[i] = v }

// Append adds the given items, growing the backing array as needed.
func (l *List[T]) Append(items ...T) error {
	if err := l.reserve(len(items)); err != nil {
		return err
	}
	l.items = append(l.items, items...)
	return nil
}

// Reset empties the list and retains the backing array.
func (l *List[T]) Reset() { l.items = l.items[:0] }

func (l *List[T]) reserve(n int) error {
	need := len(l.items) + n
	if need <= cap(l.items) {
		return nil
	}
	if l.max > 0 && need > l.max {
		return ErrCapacity
	}
	size := cap(l.items) * 2
	for size < need {
		size *= 2
	}
	if l.max > 0 && size > l.max {
		size = l.max
	}
	grown := make([]T, len(l.items), size)
	copy(grown, l.items)
	l.items = grown
	return nil
}
