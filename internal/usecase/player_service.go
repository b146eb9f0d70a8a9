package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/rpg-players/internal/domain/player"
	"github.com/riskibarqy/rpg-players/internal/platform/logging"
)

// ListPlayersInput is the incoming query for a paged player listing.
type ListPlayersInput struct {
	Filter player.Filter
	Order  player.Order
	Page   player.Page
}

type PlayerService struct {
	playerRepo player.Repository
	validator  *PlayerValidator
	logger     *logging.Logger
}

func NewPlayerService(playerRepo player.Repository, validator *PlayerValidator, logger *logging.Logger) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PlayerService{
		playerRepo: playerRepo,
		validator:  validator,
		logger:     logger,
	}
}

func (s *PlayerService) ListPlayers(ctx context.Context, input ListPlayersInput) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayers")
	defer span.End()

	order := input.Order
	if order == "" {
		order = player.OrderID
	}
	if _, ok := player.AllOrders[order]; !ok {
		return nil, fmt.Errorf("%w: unknown order %q", ErrInvalidInput, order)
	}

	page := input.Page
	if page.Size == 0 {
		page.Size = player.DefaultPageSize
	}
	if page.Number < 0 || page.Size < 0 {
		return nil, fmt.Errorf("%w: page number and size must not be negative", ErrInvalidInput)
	}

	players, err := s.playerRepo.List(ctx, input.Filter, order, page)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	return players, nil
}

func (s *PlayerService) CountPlayers(ctx context.Context, filter player.Filter) (int64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.CountPlayers")
	defer span.End()

	count, err := s.playerRepo.Count(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}

	return count, nil
}

func (s *PlayerService) GetPlayer(ctx context.Context, id int64) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayer")
	defer span.End()

	if err := s.validator.ValidateID(ctx, id); err != nil {
		return player.Player{}, err
	}

	return s.getExisting(ctx, id)
}

func (s *PlayerService) CreatePlayer(ctx context.Context, record player.Record) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.CreatePlayer")
	defer span.End()

	if err := s.validator.ValidateForCreate(ctx, record); err != nil {
		return player.Player{}, err
	}

	item := player.Player{
		Name:       strings.TrimSpace(*record.Name),
		Title:      strings.TrimSpace(*record.Title),
		Race:       *record.Race,
		Profession: *record.Profession,
		Birthday:   time.UnixMilli(*record.Birthday).UTC(),
	}
	if record.Banned != nil {
		item.Banned = *record.Banned
	}
	item.ApplyExperience(*record.Experience)

	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	created, err := s.playerRepo.Create(ctx, item)
	if err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	s.logger.InfoContext(ctx, "player created",
		"player_id", created.ID,
		"race", created.Race,
		"profession", created.Profession,
		"level", created.Level,
	)

	return created, nil
}

// UpdatePlayer applies the supplied fields of record to the stored player.
// Each supplied field is validated on its own; an empty record is a no-op.
func (s *PlayerService) UpdatePlayer(ctx context.Context, id int64, record player.Record) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.UpdatePlayer")
	defer span.End()

	if err := s.validator.ValidateID(ctx, id); err != nil {
		return player.Player{}, err
	}

	item, err := s.getExisting(ctx, id)
	if err != nil {
		return player.Player{}, err
	}
	if record.IsEmpty() {
		return item, nil
	}

	if record.Name != nil {
		if err := s.validator.ValidateName(record); err != nil {
			return player.Player{}, err
		}
		item.Name = strings.TrimSpace(*record.Name)
	}
	if record.Title != nil {
		if err := s.validator.ValidateTitle(record); err != nil {
			return player.Player{}, err
		}
		item.Title = strings.TrimSpace(*record.Title)
	}
	if record.Race != nil {
		item.Race = *record.Race
	}
	if record.Profession != nil {
		item.Profession = *record.Profession
	}
	if record.Birthday != nil {
		if err := s.validator.ValidateBirthday(record); err != nil {
			return player.Player{}, err
		}
		item.Birthday = time.UnixMilli(*record.Birthday).UTC()
	}
	if record.Banned != nil {
		item.Banned = *record.Banned
	}
	if record.Experience != nil {
		if err := s.validator.ValidateExperience(record); err != nil {
			return player.Player{}, err
		}
		item.ApplyExperience(*record.Experience)
	}

	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := s.playerRepo.Update(ctx, item); err != nil {
		return player.Player{}, fmt.Errorf("update player: %w", err)
	}

	s.logger.InfoContext(ctx, "player updated", "player_id", item.ID, "level", item.Level)

	return item, nil
}

func (s *PlayerService) DeletePlayer(ctx context.Context, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.DeletePlayer")
	defer span.End()

	if err := s.validator.ValidateID(ctx, id); err != nil {
		return err
	}
	if err := s.playerRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}

	s.logger.InfoContext(ctx, "player deleted", "player_id", id)
	return nil
}

func (s *PlayerService) getExisting(ctx context.Context, id int64) (player.Player, error) {
	item, exists, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%d", ErrNotFound, id)
	}
	return item, nil
}
