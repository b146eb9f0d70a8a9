package cache

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/rpg-players/internal/domain/player"
	basecache "github.com/riskibarqy/rpg-players/internal/platform/cache"
)

const (
	playerIDKeyPrefix    = "player:id:"
	playerCountKeyPrefix = "player:count:"
)

type cachedPlayerByID struct {
	value  player.Player
	exists bool
}

// PlayerRepository serves GetByID and Count from an expiring cache and
// invalidates on every successful write. List always reads through.
type PlayerRepository struct {
	next   player.Repository
	byID   *basecache.Store[cachedPlayerByID]
	counts *basecache.Store[int64]
}

func NewPlayerRepository(next player.Repository, ttl time.Duration) *PlayerRepository {
	return &PlayerRepository{
		next:   next,
		byID:   basecache.NewStore[cachedPlayerByID](ttl),
		counts: basecache.NewStore[int64](ttl),
	}
}

// Close stops the expiry loops of the underlying stores.
func (r *PlayerRepository) Close() {
	r.byID.Close()
	r.counts.Close()
}

func (r *PlayerRepository) List(ctx context.Context, filter player.Filter, order player.Order, page player.Page) ([]player.Player, error) {
	return r.next.List(ctx, filter, order, page)
}

func (r *PlayerRepository) Count(ctx context.Context, filter player.Filter) (int64, error) {
	return r.counts.GetOrLoad(ctx, countKey(filter), func(ctx context.Context) (int64, error) {
		return r.next.Count(ctx, filter)
	})
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (player.Player, bool, error) {
	cached, err := r.byID.GetOrLoad(ctx, idKey(id), func(ctx context.Context) (cachedPlayerByID, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return cachedPlayerByID{}, err
		}
		return cachedPlayerByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	return cached.value, cached.exists, nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) (player.Player, error) {
	created, err := r.next.Create(ctx, p)
	if err != nil {
		return player.Player{}, err
	}

	r.byID.Delete(ctx, idKey(created.ID))
	r.counts.DeletePrefix(ctx, playerCountKeyPrefix)
	return created, nil
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) error {
	if err := r.next.Update(ctx, p); err != nil {
		return err
	}

	r.byID.Delete(ctx, idKey(p.ID))
	r.counts.DeletePrefix(ctx, playerCountKeyPrefix)
	return nil
}

func (r *PlayerRepository) Delete(ctx context.Context, id int64) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}

	r.byID.Delete(ctx, idKey(id))
	r.counts.DeletePrefix(ctx, playerCountKeyPrefix)
	return nil
}

func idKey(id int64) string {
	return playerIDKeyPrefix + strconv.FormatInt(id, 10)
}

// countKey encodes every filter field so distinct filters never share an entry.
func countKey(f player.Filter) string {
	var b strings.Builder
	b.WriteString(playerCountKeyPrefix)

	writeString := func(name string, v *string) {
		b.WriteString(name)
		b.WriteByte('=')
		if v != nil {
			b.WriteString(strconv.Quote(*v))
		}
		b.WriteByte(';')
	}
	writeInt := func(name string, v *int64) {
		b.WriteString(name)
		b.WriteByte('=')
		if v != nil {
			b.WriteString(strconv.FormatInt(*v, 10))
		}
		b.WriteByte(';')
	}

	writeString("name", f.Name)
	writeString("title", f.Title)
	if f.Race != nil {
		race := string(*f.Race)
		writeString("race", &race)
	} else {
		writeString("race", nil)
	}
	if f.Profession != nil {
		profession := string(*f.Profession)
		writeString("profession", &profession)
	} else {
		writeString("profession", nil)
	}
	writeInt("after", f.After)
	writeInt("before", f.Before)
	if f.Banned != nil {
		banned := strconv.FormatBool(*f.Banned)
		writeString("banned", &banned)
	} else {
		writeString("banned", nil)
	}
	writeInt("minExp", f.MinExperience)
	writeInt("maxExp", f.MaxExperience)
	writeInt("minLvl", f.MinLevel)
	writeInt("maxLvl", f.MaxLevel)

	return b.String()
}
