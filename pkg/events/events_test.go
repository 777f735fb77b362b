package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects event payloads from any goroutine.
type recorder struct {
	mu  sync.Mutex
	got []string
}

func (r *recorder) handler(tag string) Handler {
	return func(ev Event) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.got = append(r.got, tag+":"+ev.Payload.(string))
	}
}

func (r *recorder) events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.got...)
}

func TestFireIsSynchronousAndOrdered(t *testing.T) {
	b := NewBus()
	defer b.Close()

	var r recorder
	b.Subscribe(Selection, r.handler("a"))
	b.Subscribe(Selection, r.handler("b"))
	b.Subscribe(ViewLoaded, r.handler("view"))

	b.Fire(Selection, "mdi:home")
	assert.Equal(t, []string{"a:mdi:home", "b:mdi:home"}, r.events())
}

func TestDelayedAfterSync(t *testing.T) {
	b := NewBus()
	defer b.Close()

	var r recorder
	b.Subscribe(ViewLoaded, r.handler("view"))

	b.Fire(ViewLoaded, "1")
	b.FireDelayed(ViewLoaded, "2")
	b.FireDelayed(ViewLoaded, "3")
	b.Fire(ViewLoaded, "sync")
	b.Drain()

	got := r.events()
	require.Len(t, got, 4)
	assert.Equal(t, "view:1", got[0])
	assert.Less(t, indexOf(got, "view:2"), indexOf(got, "view:3"), "delayed events are FIFO")
}

func TestDelayedEventFlag(t *testing.T) {
	b := NewBus()
	defer b.Close()

	flags := make(chan bool, 2)
	b.Subscribe(LoadError, func(ev Event) { flags <- ev.Delayed })
	b.Fire(LoadError, "x")
	b.FireDelayed(LoadError, "y")
	b.Drain()

	assert.False(t, <-flags)
	assert.True(t, <-flags)
}

func TestUnsubscribe(t *testing.T) {
	b := NewBus()
	defer b.Close()

	var r recorder
	sub := b.Subscribe(Selection, r.handler("a"))
	b.Subscribe(Selection, r.handler("b"))

	assert.True(t, b.Unsubscribe(sub))
	assert.False(t, b.Unsubscribe(sub))

	b.Fire(Selection, "x")
	assert.Equal(t, []string{"b:x"}, r.events())
}

func TestCloseDeliversQueued(t *testing.T) {
	b := NewBus()
	var r recorder
	b.Subscribe(Selection, r.handler("a"))

	for _, p := range []string{"1", "2", "3"} {
		b.FireDelayed(Selection, p)
	}
	b.Close()
	assert.Equal(t, []string{"a:1", "a:2", "a:3"}, r.events())

	b.FireDelayed(Selection, "late")
	b.Close()
	assert.Len(t, r.events(), 3)
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
