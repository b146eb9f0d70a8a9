package usecase

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/rpg-players/internal/domain/player"
)

// PlayerValidator decides whether player records and ids are acceptable
// before they reach the store. It holds no mutable state.
type PlayerValidator struct {
	playerRepo player.Repository
	location   *time.Location
}

// NewPlayerValidator builds a validator. Birthday years are read in loc; nil means UTC.
func NewPlayerValidator(playerRepo player.Repository, loc *time.Location) *PlayerValidator {
	if loc == nil {
		loc = time.UTC
	}
	return &PlayerValidator{
		playerRepo: playerRepo,
		location:   loc,
	}
}

func (v *PlayerValidator) ValidateForCreate(ctx context.Context, record player.Record) error {
	_, span := startUsecaseSpan(ctx, "usecase.PlayerValidator.ValidateForCreate")
	defer span.End()

	if record.HasMissingRequired() {
		return crerr.Wrap(ErrValidation, "required field is missing")
	}
	if err := v.ValidateName(record); err != nil {
		return err
	}
	if err := v.ValidateTitle(record); err != nil {
		return err
	}
	if err := v.ValidateExperience(record); err != nil {
		return err
	}
	if err := v.ValidateBirthday(record); err != nil {
		return err
	}

	return nil
}

// ValidateID checks that id is positive and refers to a stored player.
func (v *PlayerValidator) ValidateID(ctx context.Context, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerValidator.ValidateID")
	defer span.End()

	if id <= 0 {
		return crerr.Wrapf(ErrInvalidID, "id=%d", id)
	}

	_, exists, err := v.playerRepo.GetByID(ctx, id)
	if err != nil {
		return crerr.Wrap(err, "get player by id")
	}
	if !exists {
		return crerr.Wrapf(ErrNotFound, "player=%d", id)
	}

	return nil
}

func (v *PlayerValidator) ValidateBirthday(record player.Record) error {
	if !player.IsBirthdayValid(record, v.location) {
		return crerr.Wrapf(ErrValidation, "birthday year must be within %d-%d", player.BirthYearMin, player.BirthYearMax)
	}
	return nil
}

func (v *PlayerValidator) ValidateExperience(record player.Record) error {
	if !player.IsExperienceValid(record) {
		return crerr.Wrapf(ErrValidation, "experience must be within %d-%d", player.ExperienceMin, player.ExperienceMax)
	}
	return nil
}

// ValidateName and ValidateTitle back partial updates, where each supplied field
// is checked on its own.
func (v *PlayerValidator) ValidateName(record player.Record) error {
	if !player.IsNameValid(record) {
		return crerr.Wrapf(ErrValidation, "name must be %d-%d characters", 1, player.NameMaxLength)
	}
	return nil
}

func (v *PlayerValidator) ValidateTitle(record player.Record) error {
	if !player.IsTitleValid(record) {
		return crerr.Wrapf(ErrValidation, "title must be %d-%d characters", 1, player.TitleMaxLength)
	}
	return nil
}
