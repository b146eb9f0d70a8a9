package usecase

import (
	"errors"

	"github.com/riskibarqy/rpg-players/internal/domain/player"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrValidation   = errors.New("player validation failed")
	ErrInvalidID    = errors.New("invalid player id")
	ErrNotFound     = errors.New("resource not found")

	// ErrDependencyUnavailable is reported when a store rejects calls outright,
	// e.g. an open circuit breaker.
	ErrDependencyUnavailable = player.ErrStoreUnavailable
)
