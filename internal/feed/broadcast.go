package feed

import "sync"

// Broadcaster publishes a value to any number of subscribers.
// Each subscriber sees the latest value: a slow reader skips intermediate
// values instead of blocking the publisher. New subscribers get the current
// value immediately.
type Broadcaster[T any] struct {
	mu     sync.Mutex
	value  T
	subs   map[int]chan T
	nextID int
	closed bool
}

// NewBroadcaster creates a broadcaster holding initial
func NewBroadcaster[T any](initial T) *Broadcaster[T] {
	return &Broadcaster[T]{value: initial, subs: make(map[int]chan T)}
}

// Value returns the latest published value
func (b *Broadcaster[T]) Value() T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value
}

// Publish replaces the current value and offers it to every subscriber
func (b *Broadcaster[T]) Publish(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.value = v
	for _, ch := range b.subs {
		// Drop the unread stale value, then deliver; only Publish sends, under mu
		select {
		case <-ch:
		default:
		}
		ch <- v
	}
}

// Subscribe returns a channel of values starting with the current one,
// and a function that ends the subscription and closes the channel.
func (b *Broadcaster[T]) Subscribe() (<-chan T, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan T, 1)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	ch <- b.value
	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		})
	}
}

// Close closes every subscriber channel. Later publishes are ignored.
func (b *Broadcaster[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
