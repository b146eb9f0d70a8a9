package guard

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/rpg-players/internal/domain/player"
	playermock "github.com/riskibarqy/rpg-players/internal/mocks/domain/player"
	"github.com/riskibarqy/rpg-players/internal/platform/resilience"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newBreaker(threshold int) *resilience.CircuitBreaker {
	return resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		FailureThreshold: threshold,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	}, nil)
}

func TestPlayerRepository_OpensAfterFailures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	boom := errors.New("connection refused")
	next := playermock.NewRepository(t)
	next.On("Count", mock.Anything, player.Filter{}).Return(int64(0), boom).Twice()

	repo := NewPlayerRepository(next, newBreaker(2))

	for range 2 {
		_, err := repo.Count(ctx, player.Filter{})
		require.ErrorIs(t, err, boom)
	}

	_, _, err := repo.GetByID(ctx, 1)
	require.ErrorIs(t, err, player.ErrStoreUnavailable)
	require.ErrorIs(t, err, resilience.ErrCircuitOpen)
	next.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestPlayerRepository_NotFoundDoesNotTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	missing := fmt.Errorf("%w: id=9", player.ErrPlayerNotFound)
	next := playermock.NewRepository(t)
	next.On("Delete", mock.Anything, int64(9)).Return(missing).Times(3)
	next.On("GetByID", mock.Anything, int64(1)).Return(player.Player{ID: 1}, true, nil).Once()

	repo := NewPlayerRepository(next, newBreaker(1))

	for range 3 {
		require.ErrorIs(t, repo.Delete(ctx, 9), player.ErrPlayerNotFound)
	}

	got, exists, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	require.True(t, exists)
	require.Equal(t, int64(1), got.ID)
}

func TestPlayerRepository_PassesResultsThrough(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	listed := []player.Player{{ID: 1}, {ID: 2}}
	next := playermock.NewRepository(t)
	next.On("List", mock.Anything, player.Filter{}, player.OrderID, player.DefaultPage()).Return(listed, nil).Once()
	next.On("Create", mock.Anything, player.Player{Name: "Abra"}).Return(player.Player{ID: 11, Name: "Abra"}, nil).Once()
	next.On("Update", mock.Anything, player.Player{ID: 11, Name: "Abra"}).Return(nil).Once()

	repo := NewPlayerRepository(next, newBreaker(1))

	got, err := repo.List(ctx, player.Filter{}, player.OrderID, player.DefaultPage())
	require.NoError(t, err)
	require.Equal(t, listed, got)

	created, err := repo.Create(ctx, player.Player{Name: "Abra"})
	require.NoError(t, err)
	require.Equal(t, int64(11), created.ID)

	require.NoError(t, repo.Update(ctx, created))
}
