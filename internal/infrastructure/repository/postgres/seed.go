package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/rpg-players/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the in-memory roster into an empty players table and
// moves the id sequence past it.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM players`); err != nil {
		return fmt.Errorf("count players for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, p := range memory.SeedPlayers() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO players (id, name, title, race, profession, birthday, banned, experience, level, until_next_level)
VALUES (:id, :name, :title, :race, :profession, :birthday, :banned, :experience, :level, :until_next_level)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":               p.ID,
			"name":             p.Name,
			"title":            p.Title,
			"race":             string(p.Race),
			"profession":       string(p.Profession),
			"birthday":         p.Birthday.UTC(),
			"banned":           p.Banned,
			"experience":       p.Experience,
			"level":            p.Level,
			"until_next_level": p.UntilNextLevel,
		})
		if err != nil {
			return fmt.Errorf("bind seed player %d query: %w", p.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed player %d: %w", p.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `SELECT setval(pg_get_serial_sequence('players', 'id'), (SELECT MAX(id) FROM players))`); err != nil {
		return fmt.Errorf("advance players id sequence: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
