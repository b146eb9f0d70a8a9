package guard

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/rpg-players/internal/domain/player"
	"github.com/riskibarqy/rpg-players/internal/platform/resilience"
)

// PlayerRepository runs every store call through a circuit breaker. Domain
// misses such as player.ErrPlayerNotFound do not count as failures.
type PlayerRepository struct {
	next    player.Repository
	breaker *resilience.CircuitBreaker
}

func NewPlayerRepository(next player.Repository, breaker *resilience.CircuitBreaker) *PlayerRepository {
	return &PlayerRepository{next: next, breaker: breaker}
}

func (r *PlayerRepository) List(ctx context.Context, filter player.Filter, order player.Order, page player.Page) ([]player.Player, error) {
	var out []player.Player
	err := r.do(ctx, func(ctx context.Context) error {
		var err error
		out, err = r.next.List(ctx, filter, order, page)
		return err
	})
	return out, err
}

func (r *PlayerRepository) Count(ctx context.Context, filter player.Filter) (int64, error) {
	var out int64
	err := r.do(ctx, func(ctx context.Context) error {
		var err error
		out, err = r.next.Count(ctx, filter)
		return err
	})
	return out, err
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (player.Player, bool, error) {
	var (
		out    player.Player
		exists bool
	)
	err := r.do(ctx, func(ctx context.Context) error {
		var err error
		out, exists, err = r.next.GetByID(ctx, id)
		return err
	})
	return out, exists, err
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) (player.Player, error) {
	var out player.Player
	err := r.do(ctx, func(ctx context.Context) error {
		var err error
		out, err = r.next.Create(ctx, p)
		return err
	})
	return out, err
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) error {
	return r.do(ctx, func(ctx context.Context) error {
		return r.next.Update(ctx, p)
	})
}

func (r *PlayerRepository) Delete(ctx context.Context, id int64) error {
	return r.do(ctx, func(ctx context.Context) error {
		return r.next.Delete(ctx, id)
	})
}

func (r *PlayerRepository) do(ctx context.Context, fn func(context.Context) error) error {
	var domainErr error
	err := r.breaker.Do(ctx, func(ctx context.Context) error {
		err := fn(ctx)
		if errors.Is(err, player.ErrPlayerNotFound) {
			domainErr = err
			return nil
		}
		return err
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return fmt.Errorf("%w: %w", player.ErrStoreUnavailable, err)
	}
	if err != nil {
		return err
	}
	return domainErr
}
