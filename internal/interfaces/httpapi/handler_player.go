package httpapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/riskibarqy/rpg-players/internal/domain/player"
	"github.com/riskibarqy/rpg-players/internal/usecase"
)

type playerFilterQuery struct {
	Name          *string
	Title         *string
	Race          string `validate:"omitempty,oneof=HUMAN DWARF ELF GIANT ORC TROLL HOBBIT"`
	Profession    string `validate:"omitempty,oneof=WARRIOR ROGUE SORCERER CLERIC PALADIN NAZGUL WARLOCK DRUID"`
	After         *int64
	Before        *int64
	Banned        *bool
	MinExperience *int64 `validate:"omitempty,min=0"`
	MaxExperience *int64 `validate:"omitempty,min=0"`
	MinLevel      *int64 `validate:"omitempty,min=0"`
	MaxLevel      *int64 `validate:"omitempty,min=0"`
}

type playerListQuery struct {
	playerFilterQuery
	Order      string `validate:"omitempty,oneof=ID NAME EXPERIENCE BIRTHDAY LEVEL"`
	PageNumber *int   `validate:"omitempty,min=0"`
	PageSize   *int   `validate:"omitempty,min=1,max=100"`
}

type playerRequest struct {
	Name       *string `json:"name"`
	Title      *string `json:"title"`
	Race       *string `json:"race" validate:"omitempty,oneof=HUMAN DWARF ELF GIANT ORC TROLL HOBBIT"`
	Profession *string `json:"profession" validate:"omitempty,oneof=WARRIOR ROGUE SORCERER CLERIC PALADIN NAZGUL WARLOCK DRUID"`
	Birthday   *int64  `json:"birthday"`
	Banned     *bool   `json:"banned"`
	Experience *int64  `json:"experience"`
}

type playerDTO struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Title          string `json:"title"`
	Race           string `json:"race"`
	Profession     string `json:"profession"`
	Birthday       int64  `json:"birthday"`
	Banned         bool   `json:"banned"`
	Experience     int64  `json:"experience"`
	Level          int64  `json:"level"`
	UntilNextLevel int64  `json:"untilNextLevel"`
}

type playerCountDTO struct {
	Count int64 `json:"count"`
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	query, err := parsePlayerListQuery(r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.ListPlayersInput{
		Filter: query.toFilter(),
		Order:  player.Order(query.Order),
		Page:   player.DefaultPage(),
	}
	if query.PageNumber != nil {
		input.Page.Number = *query.PageNumber
	}
	if query.PageSize != nil {
		input.Page.Size = *query.PageSize
	}

	players, err := h.playerService.ListPlayers(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "order", query.Order, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CountPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CountPlayers")
	defer span.End()

	query, err := parsePlayerFilterQuery(r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	count, err := h.playerService.CountPlayers(ctx, query.toFilter())
	if err != nil {
		h.logger.WarnContext(ctx, "count players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerCountDTO{Count: count})
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	id, err := parsePlayerID(r.PathValue("id"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerService.GetPlayer(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	var req playerRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerService.CreatePlayer(ctx, req.toRecord())
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	id, err := parsePlayerID(r.PathValue("id"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req playerRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerService.UpdatePlayer(ctx, id, req.toRecord())
	if err != nil {
		h.logger.WarnContext(ctx, "update player failed", "player_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	id, err := parsePlayerID(r.PathValue("id"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.playerService.DeletePlayer(ctx, id); err != nil {
		h.logger.WarnContext(ctx, "delete player failed", "player_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"deleted": true})
}

func parsePlayerID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: id=%q", usecase.ErrInvalidID, raw)
	}
	return id, nil
}

func parsePlayerFilterQuery(values url.Values) (playerFilterQuery, error) {
	var (
		q   playerFilterQuery
		err error
	)

	q.Name = optionalString(values, "name")
	q.Title = optionalString(values, "title")
	q.Race = strings.TrimSpace(values.Get("race"))
	q.Profession = strings.TrimSpace(values.Get("profession"))
	if q.After, err = optionalInt64(values, "after"); err != nil {
		return playerFilterQuery{}, err
	}
	if q.Before, err = optionalInt64(values, "before"); err != nil {
		return playerFilterQuery{}, err
	}
	if q.Banned, err = optionalBool(values, "banned"); err != nil {
		return playerFilterQuery{}, err
	}
	if q.MinExperience, err = optionalInt64(values, "minExperience"); err != nil {
		return playerFilterQuery{}, err
	}
	if q.MaxExperience, err = optionalInt64(values, "maxExperience"); err != nil {
		return playerFilterQuery{}, err
	}
	if q.MinLevel, err = optionalInt64(values, "minLevel"); err != nil {
		return playerFilterQuery{}, err
	}
	if q.MaxLevel, err = optionalInt64(values, "maxLevel"); err != nil {
		return playerFilterQuery{}, err
	}

	return q, nil
}

func parsePlayerListQuery(values url.Values) (playerListQuery, error) {
	filter, err := parsePlayerFilterQuery(values)
	if err != nil {
		return playerListQuery{}, err
	}

	q := playerListQuery{
		playerFilterQuery: filter,
		Order:             strings.ToUpper(strings.TrimSpace(values.Get("order"))),
	}
	if q.PageNumber, err = optionalInt(values, "pageNumber"); err != nil {
		return playerListQuery{}, err
	}
	if q.PageSize, err = optionalInt(values, "pageSize"); err != nil {
		return playerListQuery{}, err
	}

	return q, nil
}

func (q playerFilterQuery) toFilter() player.Filter {
	f := player.Filter{
		Name:          q.Name,
		Title:         q.Title,
		After:         q.After,
		Before:        q.Before,
		Banned:        q.Banned,
		MinExperience: q.MinExperience,
		MaxExperience: q.MaxExperience,
		MinLevel:      q.MinLevel,
		MaxLevel:      q.MaxLevel,
	}
	if q.Race != "" {
		race := player.Race(q.Race)
		f.Race = &race
	}
	if q.Profession != "" {
		profession := player.Profession(q.Profession)
		f.Profession = &profession
	}
	return f
}

func (req playerRequest) toRecord() player.Record {
	record := player.Record{
		Name:       req.Name,
		Title:      req.Title,
		Birthday:   req.Birthday,
		Banned:     req.Banned,
		Experience: req.Experience,
	}
	if req.Race != nil {
		race := player.Race(*req.Race)
		record.Race = &race
	}
	if req.Profession != nil {
		profession := player.Profession(*req.Profession)
		record.Profession = &profession
	}
	return record
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:             p.ID,
		Name:           p.Name,
		Title:          p.Title,
		Race:           string(p.Race),
		Profession:     string(p.Profession),
		Birthday:       p.BirthdayMillis(),
		Banned:         p.Banned,
		Experience:     p.Experience,
		Level:          p.Level,
		UntilNextLevel: p.UntilNextLevel,
	}
}

func optionalString(values url.Values, key string) *string {
	if !values.Has(key) {
		return nil
	}
	v := values.Get(key)
	return &v
}

func optionalInt64(values url.Values, key string) (*int64, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, key)
	}
	return &v, nil
}

func optionalInt(values url.Values, key string) (*int, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, key)
	}
	return &v, nil
}

func optionalBool(values url.Values, key string) (*bool, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be true or false", usecase.ErrInvalidInput, key)
	}
	return &v, nil
}
