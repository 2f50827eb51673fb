package ringbuffer

// Cleanable is an interface for types that require explicit cleanup
// when the RingBuffer drops them without handing them to a caller
// (overwrite, shrink eviction or Clear).
type Cleanable interface {
	// Cleanup performs any necessary resource release.
	Cleanup()
}

// EvictionReason tells why elements left the buffer without being read.
type EvictionReason string

const (
	// EvictOverwrite is reported when Put replaces the oldest element of a
	// full buffer.
	EvictOverwrite EvictionReason = "overwrite"
	// EvictShrink is reported when Resize drops the oldest elements to fit
	// a smaller capacity.
	EvictShrink EvictionReason = "shrink"
	// EvictClear is reported when Clear discards held elements.
	EvictClear EvictionReason = "clear"
)

// Observer receives notifications about buffer activity. Implementations
// must not call back into the buffer.
type Observer interface {
	// ObserveInsert is called with the number of elements stored by Put or
	// Extend, including those that overwrote older ones.
	ObserveInsert(n int)
	// ObserveRemove is called with the number of elements handed to the
	// caller by Pop or Drain.
	ObserveRemove(n int)
	// ObserveEviction is called with the number of elements dropped
	// without being read, and why.
	ObserveEviction(reason EvictionReason, n int)
	// ObserveState is called after every change to length or capacity.
	ObserveState(length, capacity int)
}

type nopObserver struct{}

func (nopObserver) ObserveInsert(int) {}

func (nopObserver) ObserveRemove(int) {}

func (nopObserver) ObserveEviction(EvictionReason, int) {}

func (nopObserver) ObserveState(int, int) {}

// cleanup calls Cleanup on item if it implements Cleanable.
func cleanup[T any](item T) {
	if cleanable, ok := any(item).(Cleanable); ok {
		cleanable.Cleanup()
	}
}
