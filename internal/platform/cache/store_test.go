package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	t.Cleanup(store.Close)
	var calls atomic.Int32

	loader := func(context.Context) (string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for range workers {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if v != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore[int](time.Minute)
	t.Cleanup(store.Close)
	var calls atomic.Int32
	boom := errors.New("boom")

	failing := func(context.Context) (int, error) {
		calls.Add(1)
		return 0, boom
	}
	if _, err := store.GetOrLoad(context.Background(), "k", failing); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}

	v, err := store.GetOrLoad(context.Background(), "k", func(context.Context) (int, error) {
		calls.Add(1)
		return 7, nil
	})
	if err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}
	if v != 7 || calls.Load() != 2 {
		t.Fatalf("expected reload after error, got value=%d calls=%d", v, calls.Load())
	}
}

func TestStore_Expiry(t *testing.T) {
	t.Parallel()

	store := NewStore[string](20 * time.Millisecond)
	t.Cleanup(store.Close)

	store.Set(context.Background(), "k", "v")
	if _, ok := store.Get(context.Background(), "k"); !ok {
		t.Fatalf("expected fresh entry to be present")
	}

	time.Sleep(50 * time.Millisecond)
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore[int](time.Minute)
	t.Cleanup(store.Close)
	ctx := context.Background()

	store.Set(ctx, "player:count:a", 1)
	store.Set(ctx, "player:count:b", 2)
	store.Set(ctx, "player:id:1", 3)

	store.DeletePrefix(ctx, "player:count:")
	if store.Len() != 1 {
		t.Fatalf("expected 1 entry left, got %d", store.Len())
	}
	if _, ok := store.Get(ctx, "player:id:1"); !ok {
		t.Fatalf("expected unrelated key to survive")
	}
}

func TestStore_GetOrLoad_InvalidationDropsInFlightLoad(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	t.Cleanup(store.Close)
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan string, 1)
	go func() {
		v, _ := store.GetOrLoad(ctx, "k", func(context.Context) (string, error) {
			close(started)
			<-release
			return "stale", nil
		})
		done <- v
	}()

	<-started
	store.Delete(ctx, "k")

	fresh, err := store.GetOrLoad(ctx, "k", func(context.Context) (string, error) {
		return "fresh", nil
	})
	if err != nil {
		t.Fatalf("GetOrLoad after delete error: %v", err)
	}
	if fresh != "fresh" {
		t.Fatalf("expected a new load after delete, got %q", fresh)
	}

	close(release)
	if got := <-done; got != "stale" {
		t.Fatalf("expected in-flight caller to receive its own load, got %q", got)
	}
	if v, ok := store.Get(ctx, "k"); !ok || v != "fresh" {
		t.Fatalf("expected cached value %q, got %q (present=%v)", "fresh", v, ok)
	}
}

func TestStore_GetOrLoad_PrefixInvalidationDropsInFlightLoad(t *testing.T) {
	t.Parallel()

	store := NewStore[int](time.Minute)
	t.Cleanup(store.Close)
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = store.GetOrLoad(ctx, "player:count:all", func(context.Context) (int, error) {
			close(started)
			<-release
			return 10, nil
		})
	}()

	<-started
	store.DeletePrefix(ctx, "player:count:")
	close(release)
	<-done

	if _, ok := store.Get(ctx, "player:count:all"); ok {
		t.Fatalf("expected load started before invalidation not to be cached")
	}
}

func TestStore_GetOrLoad_CallerCancelDoesNotFailOthers(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	t.Cleanup(store.Close)

	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	loader := func(ctx context.Context) (string, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return "value", nil
	}

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := store.GetOrLoad(firstCtx, "k", loader)
		firstErr <- err
	}()
	<-started

	second := make(chan string, 1)
	go func() {
		v, _ := store.GetOrLoad(context.Background(), "k", loader)
		second <- v
	}()

	cancel()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled caller to stop with context.Canceled, got %v", err)
	}

	close(release)
	if got := <-second; got != "value" {
		t.Fatalf("expected surviving caller to get %q, got %q", "value", got)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
