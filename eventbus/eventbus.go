// Package eventbus delivers editor events such as controlChange to
// subscribers.
//
// [Bus] is a synchronous in-process bus. [Publisher] forwards events to any
// watermill publisher (a gochannel pub/sub in process, or a broker), so
// other services can observe the active control:
//
//	bus := eventbus.New()
//	pub := eventbus.NewPublisher(goChannel, "formctl.events", log)
//	bus.On(eventbus.ControlChange, pub.Handler(eventbus.ControlChange))
package eventbus

import (
	"sync"
)

// ControlChange is emitted with the active control descriptor, or nil when
// no control is active.
const ControlChange = "controlChange"

// Handler receives an event payload
type Handler func(payload any)

// Bus is a synchronous in-process event bus. Handlers run in registration
// order on the emitting goroutine.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]*subscription
}

type subscription struct {
	fn Handler
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{handlers: make(map[string][]*subscription)}
}

// On subscribes fn to event and returns a function that removes the
// subscription.
func (b *Bus) On(event string, fn Handler) (unsubscribe func()) {
	s := &subscription{fn: fn}
	b.mu.Lock()
	b.handlers[event] = append(b.handlers[event], s)
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.handlers[event]
		for i, cur := range subs {
			if cur == s {
				b.handlers[event] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
		if len(b.handlers[event]) == 0 {
			delete(b.handlers, event)
		}
	}
}

// IsSubscribe reports whether event has at least one handler.
func (b *Bus) IsSubscribe(event string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[event]) > 0
}

// Emit calls every handler of event with payload.
func (b *Bus) Emit(event string, payload any) {
	b.mu.RLock()
	subs := append([]*subscription(nil), b.handlers[event]...)
	b.mu.RUnlock()

	for _, s := range subs {
		s.fn(payload)
	}
}
