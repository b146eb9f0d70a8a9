package postgres

import (
	"time"

	"github.com/riskibarqy/rpg-players/internal/domain/player"
)

const playersTable = "players"

type playerTableModel struct {
	ID             int64     `db:"id"`
	Name           string    `db:"name"`
	Title          string    `db:"title"`
	Race           string    `db:"race"`
	Profession     string    `db:"profession"`
	Birthday       time.Time `db:"birthday"`
	Banned         bool      `db:"banned"`
	Experience     int64     `db:"experience"`
	Level          int64     `db:"level"`
	UntilNextLevel int64     `db:"until_next_level"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

var playerSelectColumns = []string{
	"id",
	"name",
	"title",
	"race",
	"profession",
	"birthday",
	"banned",
	"experience",
	"level",
	"until_next_level",
	"created_at",
	"updated_at",
}

var orderColumns = map[player.Order]string{
	player.OrderID:         "id",
	player.OrderName:       "name",
	player.OrderExperience: "experience",
	player.OrderBirthday:   "birthday",
	player.OrderLevel:      "level",
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:             m.ID,
		Name:           m.Name,
		Title:          m.Title,
		Race:           player.Race(m.Race),
		Profession:     player.Profession(m.Profession),
		Birthday:       m.Birthday.UTC(),
		Banned:         m.Banned,
		Experience:     m.Experience,
		Level:          m.Level,
		UntilNextLevel: m.UntilNextLevel,
	}
}

// writableColumns excludes id and the timestamps managed by the database.
func writableColumns(p player.Player) map[string]any {
	return map[string]any{
		"name":             p.Name,
		"title":            p.Title,
		"race":             string(p.Race),
		"profession":       string(p.Profession),
		"birthday":         p.Birthday.UTC(),
		"banned":           p.Banned,
		"experience":       p.Experience,
		"level":            p.Level,
		"until_next_level": p.UntilNextLevel,
	}
}
