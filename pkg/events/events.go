// Package events is a small publish/subscribe bus for finder notifications.
//
// Handlers subscribe to an event name. [Bus.Fire] calls the handlers of
// that name in subscription order before returning. [Bus.FireDelayed]
// queues the event instead; queued events are delivered in FIFO order on
// the bus's own goroutine, so a delayed event is always observed after
// every event fired synchronously before it was queued.
package events

import (
	"sync"

	"github.com/google/uuid"
)

// Name identifies a kind of event.
type Name string

const (
	// Selection fires when an icon is selected.
	Selection Name = "selection"
	// ViewLoaded fires when a query produced a new page of results.
	ViewLoaded Name = "view-loaded"
	// LoadError fires when loading icon data failed.
	LoadError Name = "load-error"
)

// Event is one notification.
type Event struct {
	Name    Name
	Payload any
	Delayed bool
}

// Handler receives events.
type Handler func(Event)

// Subscription identifies a registered handler.
type Subscription struct {
	ID   uuid.UUID
	Name Name
}

type subscriber struct {
	id uuid.UUID
	fn Handler
}

// Bus dispatches events to subscribers. Use NewBus; call Close when done.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Name][]subscriber

	qmu      sync.Mutex
	cond     *sync.Cond
	queue    []Event
	inflight int // queued or being delivered
	closed   bool
	done     chan struct{}
}

// NewBus returns a bus with its dispatcher running.
func NewBus() *Bus {
	b := &Bus{
		handlers: make(map[Name][]subscriber),
		done:     make(chan struct{}),
	}
	b.cond = sync.NewCond(&b.qmu)
	go b.dispatch()
	return b
}

// Subscribe registers fn for events named name.
func (b *Bus) Subscribe(name Name, fn Handler) Subscription {
	sub := Subscription{ID: uuid.New(), Name: name}
	b.mu.Lock()
	b.handlers[name] = append(b.handlers[name], subscriber{id: sub.ID, fn: fn})
	b.mu.Unlock()
	return sub
}

// Unsubscribe removes a handler. It reports whether it was registered.
func (b *Bus) Unsubscribe(sub Subscription) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.handlers[sub.Name]
	for i, s := range list {
		if s.id == sub.ID {
			b.handlers[sub.Name] = append(list[:i:i], list[i+1:]...)
			return true
		}
	}
	return false
}

// Fire delivers an event to the current subscribers before returning.
func (b *Bus) Fire(name Name, payload any) {
	b.deliver(Event{Name: name, Payload: payload})
}

// FireDelayed queues an event for delivery on the dispatcher goroutine.
// Events fired after Close are dropped.
func (b *Bus) FireDelayed(name Name, payload any) {
	b.qmu.Lock()
	defer b.qmu.Unlock()
	if b.closed {
		return
	}
	b.queue = append(b.queue, Event{Name: name, Payload: payload, Delayed: true})
	b.inflight++
	b.cond.Broadcast()
}

// Drain blocks until every queued event has been delivered. It must not be
// called from a handler.
func (b *Bus) Drain() {
	b.qmu.Lock()
	for b.inflight > 0 {
		b.cond.Wait()
	}
	b.qmu.Unlock()
}

// Close delivers the queued events and stops the dispatcher.
func (b *Bus) Close() {
	b.qmu.Lock()
	if b.closed {
		b.qmu.Unlock()
		<-b.done
		return
	}
	b.closed = true
	b.cond.Broadcast()
	b.qmu.Unlock()
	<-b.done
}

func (b *Bus) dispatch() {
	defer close(b.done)
	b.qmu.Lock()
	for {
		for len(b.queue) == 0 && !b.closed {
			b.cond.Wait()
		}
		if len(b.queue) == 0 {
			b.qmu.Unlock()
			return
		}
		ev := b.queue[0]
		b.queue = b.queue[1:]
		b.qmu.Unlock()

		b.deliver(ev)

		b.qmu.Lock()
		b.inflight--
		b.cond.Broadcast()
	}
}

func (b *Bus) deliver(ev Event) {
	b.mu.RLock()
	subs := append([]subscriber(nil), b.handlers[ev.Name]...)
	b.mu.RUnlock()
	for _, s := range subs {
		s.fn(ev)
	}
}
