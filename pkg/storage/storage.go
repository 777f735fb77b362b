// Package storage provides a keyed, load-once store for icon data.
//
// A [Store] remembers the outcome of loading every key it has been asked
// for, successful or not. Concurrent loads of the same key share one call
// of the loader; later loads return the remembered outcome without calling
// it again. By default entries are never evicted: retrying a failed key
// requires a new store or a different key.
//
//	store := storage.New[*iconset.IconSet]()
//	set, err := store.Load(ctx, storage.Key{Provider: "", Prefix: "mdi"}, loadIconSet)
//
// Stores keyed by user input are bounded instead. [WithCapacity] evicts the
// least recently used entry once the store is full, and [ForgetErrors]
// leaves failed loads unstored so the next call retries them:
//
//	searches := storage.New[*iconset.IconSet](storage.WithCapacity(256), storage.ForgetErrors())
//
// A caller whose context is cancelled stops waiting, but the shared load
// keeps running and its outcome is stored for the next caller.
package storage

import (
	"cmp"
	"container/list"
	"context"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Key identifies a stored item. Prefix is empty for provider-wide items
// such as the collections list.
type Key struct {
	Provider string
	Prefix   string
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s", k.Provider, k.Prefix)
}

// Result is the remembered outcome of a load.
type Result[T any] struct {
	Data T
	Err  error
}

// LoaderFunc loads the item for key. The context is detached from the
// caller's cancellation.
type LoaderFunc[T any] func(ctx context.Context, key Key) (T, error)

type options struct {
	capacity     int
	forgetErrors bool
}

// Option configures a Store.
type Option func(*options)

// WithCapacity bounds the store to n entries, evicting the least recently
// used one when a new key is stored. n <= 0 means unbounded.
func WithCapacity(n int) Option {
	return func(o *options) { o.capacity = n }
}

// ForgetErrors makes the store return failed loads to their callers
// without remembering them. Concurrent callers still share one attempt.
func ForgetErrors() Option {
	return func(o *options) { o.forgetErrors = true }
}

type entry[T any] struct {
	key Key
	res Result[T]
}

// Store is a load-once map from Key to Result. The zero value is not
// usable; use New.
type Store[T any] struct {
	opts options

	mu    sync.Mutex
	items map[Key]*list.Element
	lru   *list.List // front is most recently used
	group singleflight.Group
}

// New returns an empty store.
func New[T any](opts ...Option) *Store[T] {
	s := &Store[T]{
		items: make(map[Key]*list.Element),
		lru:   list.New(),
	}
	for _, opt := range opts {
		opt(&s.opts)
	}
	return s
}

// Get returns the stored outcome for key without loading.
func (s *Store[T]) Get(key Key) (Result[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	el, ok := s.items[key]
	if !ok {
		return Result[T]{}, false
	}
	s.lru.MoveToFront(el)
	return el.Value.(*entry[T]).res, true
}

// Load returns the outcome for key, calling load at most once per key no
// matter how many goroutines ask concurrently. Errors are remembered like
// values unless the store was created with ForgetErrors.
func (s *Store[T]) Load(ctx context.Context, key Key, load LoaderFunc[T]) (T, error) {
	if r, ok := s.Get(key); ok {
		return r.Data, r.Err
	}

	ch := s.group.DoChan(key.String(), func() (any, error) {
		// A previous flight may have stored the key after our Get.
		if r, ok := s.Get(key); ok {
			return r, nil
		}
		data, err := load(context.WithoutCancel(ctx), key)
		r := Result[T]{Data: data, Err: err}
		if err == nil || !s.opts.forgetErrors {
			s.put(key, r)
		}
		return r, nil
	})

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case res := <-ch:
		r := res.Val.(Result[T])
		return r.Data, r.Err
	}
}

func (s *Store[T]) put(key Key, r Result[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if el, ok := s.items[key]; ok {
		el.Value.(*entry[T]).res = r
		s.lru.MoveToFront(el)
		return
	}
	s.items[key] = s.lru.PushFront(&entry[T]{key: key, res: r})
	for s.opts.capacity > 0 && s.lru.Len() > s.opts.capacity {
		oldest := s.lru.Back()
		s.lru.Remove(oldest)
		delete(s.items, oldest.Value.(*entry[T]).key)
	}
}

// LoadChan is Load with a future-style result. The channel receives
// exactly one value and is then closed.
func (s *Store[T]) LoadChan(ctx context.Context, key Key, load LoaderFunc[T]) <-chan Result[T] {
	out := make(chan Result[T], 1)
	if r, ok := s.Get(key); ok {
		out <- r
		close(out)
		return out
	}
	go func() {
		defer close(out)
		data, err := s.Load(ctx, key, load)
		out <- Result[T]{Data: data, Err: err}
	}()
	return out
}

// Keys returns the stored keys, sorted.
func (s *Store[T]) Keys() []Key {
	s.mu.Lock()
	keys := make([]Key, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	s.mu.Unlock()

	slices.SortFunc(keys, func(a, b Key) int {
		return cmp.Or(cmp.Compare(a.Provider, b.Provider), cmp.Compare(a.Prefix, b.Prefix))
	})
	return keys
}

// Len returns the number of stored keys.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
