package ringbuffer

import (
	"fmt"
	"iter"
	"reflect"
	"strings"

	"go.uber.org/zap"
)

// RingBuffer is a generic, fixed-capacity FIFO buffer. When it is full, Put
// overwrites the oldest element. It is not safe for concurrent use.
type RingBuffer[T any] struct {
	// data holds exactly capacity slots. Vacant slots hold the zero value.
	data []T
	// head is the index of the oldest held element.
	head int
	// count is the number of held elements.
	count int

	logger   *zap.Logger
	observer Observer
}

// New creates a RingBuffer with the given capacity and puts initial into it
// in order. If initial is longer than capacity, only its last capacity
// elements are kept. A capacity below 1 fails with ErrInvalidCapacity.
func New[T any](capacity int, initial ...T) (*RingBuffer[T], error) {
	return NewWithConfig(Config{Capacity: capacity}, initial...)
}

// NewWithConfig is New with a logger and observer attached.
func NewWithConfig[T any](cfg Config, initial ...T) (*RingBuffer[T], error) {
	if cfg.Capacity <= 0 {
		return nil, invalidCapacity(cfg.Capacity)
	}
	cfg = cfg.withDefaults()
	rb := &RingBuffer[T]{
		data:     make([]T, cfg.Capacity),
		logger:   cfg.Logger,
		observer: cfg.Observer,
	}
	rb.observer.ObserveState(0, cfg.Capacity)
	rb.Extend(initial...)
	return rb, nil
}

// Put appends item as the newest element. If the buffer is full, the oldest
// element is overwritten and the next-oldest becomes the oldest.
func (rb *RingBuffer[T]) Put(item T) {
	capacity := len(rb.data)
	if rb.count < capacity {
		rb.data[rb.index(rb.count)] = item
		rb.count++
	} else {
		// The oldest slot becomes the newest one.
		dropped := rb.data[rb.head]
		rb.data[rb.head] = item
		rb.head = (rb.head + 1) % capacity
		cleanup(dropped)
		rb.observer.ObserveEviction(EvictOverwrite, 1)
		if ce := rb.logger.Check(zap.DebugLevel, "ring buffer overwrote oldest element"); ce != nil {
			ce.Write(
				zap.Int("capacity", capacity),
				zap.String("reason", string(EvictOverwrite)),
			)
		}
	}
	rb.observer.ObserveInsert(1)
	rb.observer.ObserveState(rb.count, capacity)
}

// Extend puts every item in order. It leaves the buffer in the same state as
// calling Put for each item.
func (rb *RingBuffer[T]) Extend(items ...T) {
	for _, item := range items {
		rb.Put(item)
	}
}

// Pop removes and returns the oldest element. It returns None when the
// buffer is empty.
func (rb *RingBuffer[T]) Pop() Option[T] {
	if rb.count == 0 {
		return None[T]()
	}
	item := rb.removeOldest()
	rb.observer.ObserveRemove(1)
	rb.observer.ObserveState(rb.count, len(rb.data))
	return Some(item)
}

// Peek returns the oldest element without removing it. It returns None when
// the buffer is empty.
func (rb *RingBuffer[T]) Peek() Option[T] {
	if rb.count == 0 {
		return None[T]()
	}
	return Some(rb.data[rb.head])
}

// Clear drops every held element. The capacity is unchanged.
func (rb *RingBuffer[T]) Clear() {
	dropped := rb.count
	for i := 0; i < rb.count; i++ {
		cleanup(rb.data[rb.index(i)])
	}
	clear(rb.data)
	rb.head, rb.count = 0, 0

	if dropped > 0 {
		rb.observer.ObserveEviction(EvictClear, dropped)
		rb.logger.Debug("ring buffer cleared",
			zap.Int("capacity", len(rb.data)),
			zap.Int("evicted", dropped),
			zap.String("reason", string(EvictClear)),
		)
	}
	rb.observer.ObserveState(0, len(rb.data))
}

// Len returns the number of held elements.
func (rb *RingBuffer[T]) Len() int {
	return rb.count
}

// Cap returns the maximum number of elements the buffer can hold.
func (rb *RingBuffer[T]) Cap() int {
	return len(rb.data)
}

// IsEmpty reports whether the buffer holds no elements.
func (rb *RingBuffer[T]) IsEmpty() bool {
	return rb.count == 0
}

// IsFull reports whether the next Put will overwrite the oldest element.
func (rb *RingBuffer[T]) IsFull() bool {
	return rb.count == len(rb.data)
}

// Resize changes the capacity. Shrinking below the current length evicts
// the oldest elements until the newest capacity elements remain. Growing
// keeps every element. Surviving elements keep their order. A capacity below
// 1 fails with ErrInvalidCapacity and leaves the buffer untouched.
func (rb *RingBuffer[T]) Resize(capacity int) error {
	if capacity <= 0 {
		return invalidCapacity(capacity)
	}
	old := len(rb.data)
	if capacity == old {
		return nil
	}

	evicted := 0
	for rb.count > capacity {
		cleanup(rb.removeOldest())
		evicted++
	}

	data := make([]T, capacity)
	rb.copyTo(data)
	rb.data = data
	rb.head = 0

	if evicted > 0 {
		rb.observer.ObserveEviction(EvictShrink, evicted)
	}
	rb.observer.ObserveState(rb.count, capacity)

	if capacity < old {
		rb.logger.Debug("ring buffer shrunk",
			zap.Int("from", old),
			zap.Int("capacity", capacity),
			zap.Int("length", rb.count),
			zap.Int("evicted", evicted),
			zap.String("reason", string(EvictShrink)),
		)
	} else {
		rb.logger.Debug("ring buffer grown",
			zap.Int("from", old),
			zap.Int("capacity", capacity),
			zap.Int("length", rb.count),
		)
	}
	return nil
}

// Items returns a copy of the held elements, oldest first.
func (rb *RingBuffer[T]) Items() []T {
	items := make([]T, rb.count)
	rb.copyTo(items)
	return items
}

// Drain removes and returns every held element, oldest first. It returns nil
// when the buffer is empty. Drained elements are handed to the caller and
// are not cleaned up.
func (rb *RingBuffer[T]) Drain() []T {
	if rb.count == 0 {
		return nil
	}
	items := rb.Items()
	clear(rb.data)
	rb.head, rb.count = 0, 0
	rb.observer.ObserveRemove(len(items))
	rb.observer.ObserveState(0, len(rb.data))
	return items
}

// All returns an iterator over the held elements, oldest first. The buffer
// must not be modified while iterating.
func (rb *RingBuffer[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < rb.count; i++ {
			if !yield(rb.data[rb.index(i)]) {
				return
			}
		}
	}
}

// String renders the held elements oldest first, e.g. "[3 4 5]".
func (rb *RingBuffer[T]) String() string {
	return fmt.Sprint(rb.Items())
}

// GoString renders the physical slot layout, e.g.
// "RingBuffer[int]{slots: [4 5 <empty>], head: 0, len: 2, cap: 3}".
func (rb *RingBuffer[T]) GoString() string {
	var b strings.Builder
	fmt.Fprintf(&b, "RingBuffer[%s]{slots: [", reflect.TypeFor[T]())
	for i := range rb.data {
		if i > 0 {
			b.WriteByte(' ')
		}
		if rb.occupied(i) {
			fmt.Fprint(&b, rb.data[i])
		} else {
			b.WriteString("<empty>")
		}
	}
	fmt.Fprintf(&b, "], head: %d, len: %d, cap: %d}", rb.head, rb.count, len(rb.data))
	return b.String()
}

// removeOldest takes the element at head and clears its slot. The caller
// must ensure the buffer is not empty.
func (rb *RingBuffer[T]) removeOldest() T {
	var zero T
	item := rb.data[rb.head]
	rb.data[rb.head] = zero
	rb.head = (rb.head + 1) % len(rb.data)
	rb.count--
	return item
}

// index maps the logical position i (0 is the oldest) to a slot.
func (rb *RingBuffer[T]) index(i int) int {
	return (rb.head + i) % len(rb.data)
}

// occupied reports whether slot holds an element.
func (rb *RingBuffer[T]) occupied(slot int) bool {
	return (slot-rb.head+len(rb.data))%len(rb.data) < rb.count
}

// copyTo copies the held elements, oldest first, into dst and returns the
// number copied. The held elements may wrap around the end of data.
func (rb *RingBuffer[T]) copyTo(dst []T) int {
	if rb.count == 0 {
		return 0
	}
	end := rb.head + rb.count
	if end <= len(rb.data) {
		return copy(dst, rb.data[rb.head:end])
	}
	copied := copy(dst, rb.data[rb.head:])
	return copied + copy(dst[copied:], rb.data[:end-len(rb.data)])
}
