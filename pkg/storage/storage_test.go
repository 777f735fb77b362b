package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCoalesces(t *testing.T) {
	s := New[string]()
	key := Key{Provider: "", Prefix: "mdi"}

	var calls atomic.Int32
	gate := make(chan struct{})
	load := func(ctx context.Context, k Key) (string, error) {
		calls.Add(1)
		<-gate
		return "data:" + k.Prefix, nil
	}

	const n = 32
	var wg sync.WaitGroup
	results := make([]string, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := s.Load(context.Background(), key, load)
			assert.NoError(t, err)
			results[i] = v
		}()
	}

	time.Sleep(10 * time.Millisecond)
	close(gate)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Equal(t, "data:mdi", v)
	}

	v, err := s.Load(context.Background(), key, load)
	require.NoError(t, err)
	assert.Equal(t, "data:mdi", v)
	assert.Equal(t, int32(1), calls.Load(), "resolved keys never reload")
}

func TestLoadCachesErrors(t *testing.T) {
	s := New[int]()
	key := Key{Provider: "broken"}
	wantErr := errors.New("status 404")

	var calls int
	load := func(context.Context, Key) (int, error) {
		calls++
		return 0, wantErr
	}

	for range 3 {
		_, err := s.Load(context.Background(), key, load)
		assert.ErrorIs(t, err, wantErr)
	}
	assert.Equal(t, 1, calls)

	r, ok := s.Get(key)
	require.True(t, ok)
	assert.ErrorIs(t, r.Err, wantErr)
}

func TestLoadDistinctKeys(t *testing.T) {
	s := New[string]()
	load := func(_ context.Context, k Key) (string, error) { return k.String(), nil }

	a, _ := s.Load(context.Background(), Key{Provider: "b", Prefix: "x"}, load)
	b, _ := s.Load(context.Background(), Key{Provider: "a", Prefix: "y"}, load)
	c, _ := s.Load(context.Background(), Key{Provider: "a", Prefix: "x"}, load)

	assert.Equal(t, "b/x", a)
	assert.Equal(t, "a/y", b)
	assert.Equal(t, "a/x", c)
	assert.Equal(t, []Key{{"a", "x"}, {"a", "y"}, {"b", "x"}}, s.Keys())
	assert.Equal(t, 3, s.Len())
}

func TestLoadCallerCancellation(t *testing.T) {
	s := New[string]()
	key := Key{Prefix: "slow"}

	gate := make(chan struct{})
	loaderErr := make(chan error, 1)
	load := func(ctx context.Context, _ Key) (string, error) {
		<-gate
		loaderErr <- ctx.Err()
		return "done", nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := s.Load(ctx, key, load)
		done <- err
	}()

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	close(gate)
	assert.NoError(t, <-loaderErr, "shared load must not see caller cancellation")

	require.Eventually(t, func() bool {
		_, ok := s.Get(key)
		return ok
	}, time.Second, time.Millisecond)

	v, err := s.Load(context.Background(), key, load)
	require.NoError(t, err)
	assert.Equal(t, "done", v)
}

func TestLoadChan(t *testing.T) {
	s := New[int]()
	key := Key{Prefix: "n"}
	load := func(context.Context, Key) (int, error) { return 42, nil }

	r := <-s.LoadChan(context.Background(), key, load)
	require.NoError(t, r.Err)
	assert.Equal(t, 42, r.Data)

	ch := s.LoadChan(context.Background(), key, func(context.Context, Key) (int, error) {
		t.Error("loader called for resolved key")
		return 0, nil
	})
	r, ok := <-ch
	require.True(t, ok)
	assert.Equal(t, 42, r.Data)
	_, ok = <-ch
	assert.False(t, ok, "channel is closed after one value")
}

func TestGetMissing(t *testing.T) {
	_, ok := New[int]().Get(Key{Prefix: "x"})
	assert.False(t, ok)
}

func TestForgetErrorsRetries(t *testing.T) {
	s := New[string](ForgetErrors())
	key := Key{Prefix: "search:home"}

	var calls int
	load := func(context.Context, Key) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("timeout")
		}
		return "ok", nil
	}

	_, err := s.Load(context.Background(), key, load)
	require.Error(t, err)
	_, ok := s.Get(key)
	assert.False(t, ok, "failed loads are not stored")

	v, err := s.Load(context.Background(), key, load)
	require.NoError(t, err)
	assert.Equal(t, "ok", v)

	_, _ = s.Load(context.Background(), key, load)
	assert.Equal(t, 2, calls, "successes are still stored")
}

func TestWithCapacityEvictsLeastRecentlyUsed(t *testing.T) {
	s := New[string](WithCapacity(3))
	var calls atomic.Int32
	load := func(_ context.Context, k Key) (string, error) {
		calls.Add(1)
		return k.Prefix, nil
	}
	ctx := context.Background()

	for _, p := range []string{"a", "b", "c"} {
		_, _ = s.Load(ctx, Key{Prefix: p}, load)
	}
	_, _ = s.Load(ctx, Key{Prefix: "a"}, load) // a is now most recent
	_, _ = s.Load(ctx, Key{Prefix: "d"}, load) // evicts b

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []Key{{"", "a"}, {"", "c"}, {"", "d"}}, s.Keys())
	assert.Equal(t, int32(4), calls.Load())

	for i := range 1000 {
		_, _ = s.Load(ctx, Key{Prefix: fmt.Sprint("k", i)}, load)
	}
	assert.Equal(t, 3, s.Len())
}
