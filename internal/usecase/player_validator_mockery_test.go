package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/rpg-players/internal/domain/player"
	playermock "github.com/riskibarqy/rpg-players/internal/mocks/domain/player"
	"github.com/stretchr/testify/mock"
)

func TestPlayerValidator_ValidateID_SingleLookupUsingMockery(t *testing.T) {
	t.Parallel()

	repo := playermock.NewRepository(t)
	repo.
		On("GetByID", mock.Anything, int64(42)).
		Return(player.Player{ID: 42}, true, nil).
		Once()

	if err := NewPlayerValidator(repo, nil).ValidateID(context.Background(), 42); err != nil {
		t.Fatalf("expected valid id, got %v", err)
	}
	repo.AssertNotCalled(t, "Count", mock.Anything, mock.Anything)
}

func TestPlayerValidator_ValidateID_NonPositiveSkipsStoreUsingMockery(t *testing.T) {
	t.Parallel()

	repo := playermock.NewRepository(t)
	err := NewPlayerValidator(repo, nil).ValidateID(context.Background(), 0)
	if !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestPlayerValidator_ValidateID_StoreErrorUsingMockery(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("connection reset")
	repo := playermock.NewRepository(t)
	repo.
		On("GetByID", mock.Anything, int64(7)).
		Return(player.Player{}, false, storeErr).
		Once()

	err := NewPlayerValidator(repo, nil).ValidateID(context.Background(), 7)
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("store failure must not be reported as not found")
	}
}
