package menu

import "github.com/atomicstack/menuz/internal/logging/events"

// TransitionFunc receives every transition published on a Bus.
type TransitionFunc func(from, to *Menu)

type subscription struct {
	id uint64
	fn TransitionFunc
}

// Bus broadcasts transitions to any number of subscribers, synchronously
// and in subscription order.
type Bus struct {
	subs   []subscription
	nextID uint64
}

// NewBus initialises an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns a function that removes it again.
func (b *Bus) Subscribe(fn TransitionFunc) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, fn: fn})
	return func() {
		for i, sub := range b.subs {
			if sub.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers (from, to) to the subscribers registered at call time.
func (b *Bus) Publish(from, to *Menu) {
	subs := append([]subscription(nil), b.subs...)
	events.Registry.Publish(nameOf(from), nameOf(to), len(subs))
	for _, sub := range subs {
		sub.fn(from, to)
	}
}

// Subscribers returns the number of registered subscribers.
func (b *Bus) Subscribers() int {
	return len(b.subs)
}

func nameOf(m *Menu) string {
	if m == nil {
		return ""
	}
	return m.Name()
}
