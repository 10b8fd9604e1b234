// Package bus is a small typed publish/subscribe broker used to fan readings,
// alerts and dataset updates out to the websocket stream, redis and tests.
package bus

import (
	"fmt"
	"sync"
)

// Broker delivers every published value to all current subscribers, in the
// publishing goroutine. A panicking subscriber is recovered and reported to
// the OnError hook; the remaining subscribers still receive the value.
type Broker[T any] struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[uint64]func(T)
	order  []uint64

	// OnError, when set, receives recovered subscriber panics.
	OnError func(error)
}

// New returns an empty broker.
func New[T any]() *Broker[T] {
	return &Broker[T]{subs: make(map[uint64]func(T))}
}

// Subscribe registers fn and returns a function removing it. Calling the
// returned function more than once is a no-op.
func (b *Broker[T]) Subscribe(fn func(T)) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.order = append(b.order, id)
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

// SubscribeBuffered registers a channel subscriber with the given buffer.
// Values that do not fit are dropped and onDrop (if non-nil) is called, so a
// slow reader never blocks the publisher. The returned cancel function
// unsubscribes; the channel is left open because a publish may be in flight.
func (b *Broker[T]) SubscribeBuffered(buffer int, onDrop func()) (<-chan T, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan T, buffer)
	cancel := b.Subscribe(func(v T) {
		select {
		case ch <- v:
		default:
			if onDrop != nil {
				onDrop()
			}
		}
	})
	return ch, cancel
}

// Publish delivers v to every subscriber in subscription order.
func (b *Broker[T]) Publish(v T) {
	b.mu.RLock()
	fns := make([]func(T), 0, len(b.order))
	for _, id := range b.order {
		fns = append(fns, b.subs[id])
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		b.deliver(fn, v)
	}
}

func (b *Broker[T]) deliver(fn func(T), v T) {
	defer func() {
		if r := recover(); r != nil && b.OnError != nil {
			b.OnError(fmt.Errorf("bus: subscriber panicked: %v", r))
		}
	}()
	fn(v)
}

func (b *Broker[T]) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[id]; !ok {
		return
	}
	delete(b.subs, id)
	for i, v := range b.order {
		if v == id {
			b.order = append(b.order[:i:i], b.order[i+1:]...)
			break
		}
	}
}
