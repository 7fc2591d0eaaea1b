package buffer

// Stack is a LIFO built on a fixed backing array that doubles when full.
// The stack pointer is exposed so callers can take views over the top
// entries without copying.
type Stack[T any] struct {
	items []T
	sp    int
	max   int
}

// NewStack returns a Stack with the given initial size. A max of zero or
// less means the stack may grow without bound.
func NewStack[T any](initial, max int) *Stack[T] {
	if initial < 1 {
		initial = 1
	}
	if max > 0 && initial > max {
		initial = max
	}
	return &Stack[T]{items: make([]T, initial), max: max}
}

// Len returns the number of values on the stack.
func (s *Stack[T]) Len() int { return s.sp }

// Size returns the length of the backing array.
func (s *Stack[T]) Size() int { return len(s.items) }

// Push adds a value to the top of the stack.
func (s *Stack[T]) Push(v T) error {
	if s.sp == len(s.items) {
		if err := s.grow(); err != nil {
			return err
		}
	}
	s.items[s.sp] = v
	s.sp++
	return nil
}

// Pop removes and returns the top value. The caller must check Len first.
func (s *Stack[T]) Pop() T {
	s.sp--
	return s.items[s.sp]
}

// Peek returns the top value without removing it.
func (s *Stack[T]) Peek() T {
	return s.items[s.sp-1]
}

// Top returns a view over the top n values, bottom first.
func (s *Stack[T]) Top(n int) []T {
	return s.items[s.sp-n : s.sp]
}

// Drop discards the top n values.
func (s *Stack[T]) Drop(n int) {
	s.sp -= n
}

// Reset empties the stack and retains the backing array.
func (s *Stack[T]) Reset() {
	var zero T
	for i := 0; i < s.sp; i++ {
		s.items[i] = zero
	}
	s.sp = 0
}

func (s *Stack[T]) grow() error {
	size := len(s.items) * 2
	if s.max > 0 {
		if len(s.items) >= s.max {
			return ErrCapacity
		}
		if size > s.max {
			size = s.max
		}
	}
	grown := make([]T, size)
	copy(grown, s.items[:s.sp])
	s.items = grown
	return nil
}
