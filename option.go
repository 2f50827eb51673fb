package ringbuffer

import "fmt"

// Option is the result of a read from a RingBuffer. An empty Option means
// the buffer held nothing, which is distinct from a held zero value.
type Option[T any] struct {
	item T
	ok   bool
}

// Some wraps a held element.
func Some[T any](item T) Option[T] {
	return Option[T]{item: item, ok: true}
}

// None is the empty result.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the element and true, or the zero value and false when empty.
func (o Option[T]) Get() (T, bool) {
	return o.item, o.ok
}

// IsSome reports whether the Option holds an element.
func (o Option[T]) IsSome() bool {
	return o.ok
}

// IsNone reports whether the Option is empty.
func (o Option[T]) IsNone() bool {
	return !o.ok
}

// OrElse returns the element, or fallback when empty.
func (o Option[T]) OrElse(fallback T) T {
	if !o.ok {
		return fallback
	}
	return o.item
}

// MustGet returns the element and panics when empty.
func (o Option[T]) MustGet() T {
	if !o.ok {
		panic("ringbuffer: MustGet on empty Option")
	}
	return o.item
}

// String renders the option as "None" or "Some(v)".
func (o Option[T]) String() string {
	if !o.ok {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.item)
}
