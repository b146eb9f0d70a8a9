package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/rpg-players/internal/domain/player"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context, filter player.Filter, order player.Order, page player.Page) ([]player.Player, error) {
	query, args, err := buildListQuery(filter, order, page)
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select players")
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *PlayerRepository) Count(ctx context.Context, filter player.Filter) (int64, error) {
	query, args, err := buildCountQuery(filter)
	if err != nil {
		return 0, fmt.Errorf("build count players query: %w", err)
	}

	var count int64
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, crerr.Wrap(err, "count players")
	}

	return count, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (player.Player, bool, error) {
	query, args, err := psql.Select(playerSelectColumns...).
		From(playersTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player by id query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, crerr.Wrapf(err, "get player by id=%d", id)
	}

	return row.toDomain(), true, nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) (player.Player, error) {
	query, args, err := psql.Insert(playersTable).
		SetMap(writableColumns(p)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return player.Player{}, fmt.Errorf("build insert player query: %w", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		if isUniqueViolation(err) {
			return player.Player{}, fmt.Errorf("%w: duplicate player: %w", player.ErrPlayerRejected, err)
		}
		if isIntegrityViolation(err) {
			return player.Player{}, fmt.Errorf("%w: insert player: %w", player.ErrPlayerRejected, err)
		}
		return player.Player{}, crerr.Wrap(err, "insert player")
	}

	p.ID = id
	return p, nil
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) error {
	query, args, err := psql.Update(playersTable).
		SetMap(writableColumns(p)).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update player query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isIntegrityViolation(err) {
			return fmt.Errorf("%w: update player id=%d: %w", player.ErrPlayerRejected, p.ID, err)
		}
		return crerr.Wrapf(err, "update player id=%d", p.ID)
	}

	return requireAffected(res, p.ID)
}

func (r *PlayerRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := psql.Delete(playersTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete player query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return crerr.Wrapf(err, "delete player id=%d", id)
	}

	return requireAffected(res, id)
}

func requireAffected(res sql.Result, id int64) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id=%d", player.ErrPlayerNotFound, id)
	}
	return nil
}

func buildListQuery(filter player.Filter, order player.Order, page player.Page) (string, []any, error) {
	column, ok := orderColumns[order]
	if !ok {
		return "", nil, fmt.Errorf("unsupported player order %q", order)
	}
	orderBy := []string{column}
	if column != "id" {
		orderBy = append(orderBy, "id")
	}

	builder := psql.Select(playerSelectColumns...).
		From(playersTable).
		OrderBy(orderBy...)
	if cond := filterConditions(filter); len(cond) > 0 {
		builder = builder.Where(cond)
	}
	if page.Size > 0 {
		builder = builder.Limit(uint64(page.Size)).Offset(uint64(page.Offset()))
	}

	return builder.ToSql()
}

func buildCountQuery(filter player.Filter) (string, []any, error) {
	builder := psql.Select("COUNT(1)").From(playersTable)
	if cond := filterConditions(filter); len(cond) > 0 {
		builder = builder.Where(cond)
	}
	return builder.ToSql()
}

func filterConditions(f player.Filter) sq.And {
	cond := sq.And{}
	if f.Name != nil {
		cond = append(cond, sq.Like{"name": containsPattern(*f.Name)})
	}
	if f.Title != nil {
		cond = append(cond, sq.Like{"title": containsPattern(*f.Title)})
	}
	if f.Race != nil {
		cond = append(cond, sq.Eq{"race": string(*f.Race)})
	}
	if f.Profession != nil {
		cond = append(cond, sq.Eq{"profession": string(*f.Profession)})
	}
	if f.After != nil {
		cond = append(cond, sq.GtOrEq{"birthday": time.UnixMilli(*f.After).UTC()})
	}
	if f.Before != nil {
		cond = append(cond, sq.LtOrEq{"birthday": time.UnixMilli(*f.Before).UTC()})
	}
	if f.Banned != nil {
		cond = append(cond, sq.Eq{"banned": *f.Banned})
	}
	if f.MinExperience != nil {
		cond = append(cond, sq.GtOrEq{"experience": *f.MinExperience})
	}
	if f.MaxExperience != nil {
		cond = append(cond, sq.LtOrEq{"experience": *f.MaxExperience})
	}
	if f.MinLevel != nil {
		cond = append(cond, sq.GtOrEq{"level": *f.MinLevel})
	}
	if f.MaxLevel != nil {
		cond = append(cond, sq.LtOrEq{"level": *f.MaxLevel})
	}
	return cond
}
