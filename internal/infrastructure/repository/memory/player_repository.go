package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/riskibarqy/rpg-players/internal/domain/player"
)

type PlayerRepository struct {
	mu     sync.RWMutex
	byID   map[int64]player.Player
	nextID int64
}

// NewPlayerRepository indexes the given players. Players without an id are
// assigned one after the highest seeded id.
func NewPlayerRepository(players []player.Player) *PlayerRepository {
	r := &PlayerRepository{
		byID:   make(map[int64]player.Player, len(players)),
		nextID: 1,
	}

	for _, p := range players {
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
	}
	for _, p := range players {
		if p.ID <= 0 {
			p.ID = r.nextID
			r.nextID++
		}
		r.byID[p.ID] = p
	}

	return r
}

func (r *PlayerRepository) List(_ context.Context, filter player.Filter, order player.Order, page player.Page) ([]player.Player, error) {
	r.mu.RLock()
	matched := r.matching(filter)
	r.mu.RUnlock()

	slices.SortFunc(matched, order.Compare)

	if page.Size <= 0 {
		return matched, nil
	}
	start := page.Offset()
	if start >= len(matched) {
		return []player.Player{}, nil
	}
	end := min(start+page.Size, len(matched))

	return matched[start:end], nil
}

func (r *PlayerRepository) Count(_ context.Context, filter player.Filter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.matching(filter))), nil
}

func (r *PlayerRepository) GetByID(_ context.Context, id int64) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	return p, ok, nil
}

func (r *PlayerRepository) Create(_ context.Context, p player.Player) (player.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = r.nextID
	r.nextID++
	r.byID[p.ID] = p

	return p, nil
}

func (r *PlayerRepository) Update(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[p.ID]; !ok {
		return fmt.Errorf("%w: id=%d", player.ErrPlayerNotFound, p.ID)
	}
	r.byID[p.ID] = p

	return nil
}

func (r *PlayerRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return fmt.Errorf("%w: id=%d", player.ErrPlayerNotFound, id)
	}
	delete(r.byID, id)

	return nil
}

// matching must be called with r.mu held.
func (r *PlayerRepository) matching(filter player.Filter) []player.Player {
	out := make([]player.Player, 0, len(r.byID))
	for _, p := range r.byID {
		if filter.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}
