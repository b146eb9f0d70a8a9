package cache

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/singleflight"
)

// Store is an expiring in-process cache that collapses concurrent loads of the same key.
// Every invalidation advances a generation; a load that started before it is
// returned to its callers but never written back.
type Store[V any] struct {
	items  *ttlcache.Cache[string, V]
	flight singleflight.Group

	mu         sync.Mutex
	generation atomic.Uint64
}

// NewStore starts a store whose entries expire after ttl. Call Close to stop the
// expiry loop.
func NewStore[V any](ttl time.Duration) *Store[V] {
	items := ttlcache.New[string, V](
		ttlcache.WithTTL[string, V](ttl),
		ttlcache.WithDisableTouchOnHit[string, V](),
	)
	go items.Start()

	return &Store[V]{items: items}
}

func (s *Store[V]) Close() {
	s.items.Stop()
}

func (s *Store[V]) Get(_ context.Context, key string) (V, bool) {
	var zero V
	if key == "" {
		return zero, false
	}

	item := s.items.Get(key)
	if item == nil {
		return zero, false
	}
	return item.Value(), true
}

func (s *Store[V]) Set(_ context.Context, key string, value V) {
	if key == "" {
		return
	}
	s.items.Set(key, value, ttlcache.DefaultTTL)
}

func (s *Store[V]) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation.Add(1)
	s.items.Delete(key)
}

func (s *Store[V]) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation.Add(1)
	for _, key := range s.items.Keys() {
		if strings.HasPrefix(key, prefix) {
			s.items.Delete(key)
		}
	}
}

// setIfCurrent stores value only when no invalidation happened since gen was read.
func (s *Store[V]) setIfCurrent(key string, value V, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation.Load() != gen {
		return
	}
	s.items.Set(key, value, ttlcache.DefaultTTL)
}

func (s *Store[V]) Len() int {
	return s.items.Len()
}

// GetOrLoad returns the cached value for key, running loader at most once per key
// across concurrent callers on a miss. Loader errors are not cached.
// The loader does not inherit the caller's cancellation; each caller stops
// waiting when its own ctx is done.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	var zero V
	if loader == nil {
		return zero, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	gen := s.generation.Load()
	loadCtx := context.WithoutCancel(ctx)
	result := s.flight.DoChan(flightKey(key, gen), func() (any, error) {
		if cached, ok := s.Get(loadCtx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(loadCtx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.setIfCurrent(key, loaded, gen)
		return loaded, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-result:
		if res.Err != nil {
			return zero, res.Err
		}
		value, _ := res.Val.(V)
		return value, nil
	}
}

// flightKey scopes in-flight loads to a generation so callers arriving after an
// invalidation never join a load that began before it.
func flightKey(key string, gen uint64) string {
	return key + "@" + strconv.FormatUint(gen, 10)
}
