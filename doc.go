/*
Package ringbuffer provides a generic, fixed-capacity FIFO circular buffer.

When the buffer reaches its capacity, new items overwrite the oldest ones.
The buffer is a plain data structure: it never blocks, never allocates beyond
its capacity except on Resize, and is not safe for concurrent use. Callers
sharing an instance across goroutines must synchronize access themselves.

Usage:

Create a buffer of a specific type and capacity, optionally seeded:

	rb, err := ringbuffer.New[int](3, 1, 2, 3, 4, 5)
	if err != nil {
		return err // ringbuffer.ErrInvalidCapacity
	}
	fmt.Println(rb) // [3 4 5]

Add items one at a time or in bulk:

	rb.Put(6)
	rb.Extend(7, 8)

Reading:

Pop and Peek return an Option, which is empty when the buffer holds nothing.
This keeps an empty buffer apart from a held zero value.

	if item, ok := rb.Pop().Get(); ok {
		fmt.Printf("oldest: %v\n", item)
	}

Items copies the held elements oldest first, Drain empties the buffer and
returns them, and All iterates without copying:

	for item := range rb.All() {
		fmt.Println(item)
	}

Resizing:

Resize shrinks or grows the buffer in place. Shrinking below the current
length evicts the oldest elements; growing evicts nothing. Relative order is
always kept.

	_ = rb.Resize(2)  // keeps the two newest
	_ = rb.Resize(10) // keeps everything

Automatic Cleanup:

Types that require cleanup (e.g., to release file handles or network connections)
can implement the Cleanable interface. Cleanup is called when an item is
overwritten, evicted by a shrinking Resize, or dropped by Clear. Items returned
by Pop or Drain belong to the caller and are not cleaned up.

	type MyResource struct {
		// ... fields
	}

	func (r *MyResource) Cleanup() {
		// ... release resources here
	}

Observability:

NewWithConfig attaches a zap logger for debug entries and an Observer that is
notified of inserts, removals, evictions and state changes. Package ringmetrics
provides a Prometheus-backed Observer.
*/
package ringbuffer
