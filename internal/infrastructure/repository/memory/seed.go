package memory

import (
	"time"

	"github.com/riskibarqy/rpg-players/internal/domain/player"
)

func seedPlayer(id int64, name, title string, race player.Race, profession player.Profession, birthday time.Time, banned bool, experience int64) player.Player {
	p := player.Player{
		ID:         id,
		Name:       name,
		Title:      title,
		Race:       race,
		Profession: profession,
		Birthday:   birthday,
		Banned:     banned,
	}
	p.ApplyExperience(experience)
	return p
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// SeedPlayers returns a small roster used by the in-memory store.
func SeedPlayers() []player.Player {
	return []player.Player{
		seedPlayer(1, "Nius", "Comes Without Noise", player.RaceHobbit, player.ProfessionRogue, day(2010, time.October, 12), false, 58347),
		seedPlayer(2, "Nikrashsh", "Nightwolf", player.RaceOrc, player.ProfessionWarrior, day(2010, time.February, 14), false, 174403),
		seedPlayer(3, "Ezzessel", "The Hissing", player.RaceDwarf, player.ProfessionCleric, day(2006, time.February, 28), true, 804685),
		seedPlayer(4, "Belan", "Tse Raa", player.RaceDwarf, player.ProfessionRogue, day(2008, time.February, 25), true, 44553),
		seedPlayer(5, "Eleonora", "Grandmother", player.RaceHuman, player.ProfessionSorcerer, day(2006, time.January, 7), true, 63986),
		seedPlayer(6, "Eman", "Eared Flyer", player.RaceElf, player.ProfessionSorcerer, day(2004, time.June, 10), false, 163743),
		seedPlayer(7, "Talan", "Born in the Bronx", player.RaceGiant, player.ProfessionDruid, day(2005, time.May, 15), false, 68950),
		seedPlayer(8, "Arilan", "Benefactor", player.RaceElf, player.ProfessionPaladin, day(2006, time.August, 10), false, 61023),
		seedPlayer(9, "Derakt", "Elven Warrior", player.RaceElf, player.ProfessionWarrior, day(2010, time.June, 22), false, 156630),
		seedPlayer(10, "Archill", "The Deadly", player.RaceTroll, player.ProfessionNazgul, day(2001, time.April, 24), false, 29443),
	}
}
