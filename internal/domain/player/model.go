package player

import (
	"fmt"
	"math"
	"time"
)

// Race is the fantasy race a player character belongs to.
type Race string

const (
	RaceHuman  Race = "HUMAN"
	RaceDwarf  Race = "DWARF"
	RaceElf    Race = "ELF"
	RaceGiant  Race = "GIANT"
	RaceOrc    Race = "ORC"
	RaceTroll  Race = "TROLL"
	RaceHobbit Race = "HOBBIT"
)

var AllRaces = map[Race]struct{}{
	RaceHuman:  {},
	RaceDwarf:  {},
	RaceElf:    {},
	RaceGiant:  {},
	RaceOrc:    {},
	RaceTroll:  {},
	RaceHobbit: {},
}

// Profession is the class a player character plays as.
type Profession string

const (
	ProfessionWarrior  Profession = "WARRIOR"
	ProfessionRogue    Profession = "ROGUE"
	ProfessionSorcerer Profession = "SORCERER"
	ProfessionCleric   Profession = "CLERIC"
	ProfessionPaladin  Profession = "PALADIN"
	ProfessionNazgul   Profession = "NAZGUL"
	ProfessionWarlock  Profession = "WARLOCK"
	ProfessionDruid    Profession = "DRUID"
)

var AllProfessions = map[Profession]struct{}{
	ProfessionWarrior:  {},
	ProfessionRogue:    {},
	ProfessionSorcerer: {},
	ProfessionCleric:   {},
	ProfessionPaladin:  {},
	ProfessionNazgul:   {},
	ProfessionWarlock:  {},
	ProfessionDruid:    {},
}

// Player is a stored character.
type Player struct {
	ID             int64
	Name           string
	Title          string
	Race           Race
	Profession     Profession
	Birthday       time.Time
	Banned         bool
	Experience     int64
	Level          int64
	UntilNextLevel int64
}

// Record is a candidate player payload. Nil fields were not supplied by the caller.
type Record struct {
	Name       *string
	Title      *string
	Race       *Race
	Profession *Profession
	Birthday   *int64
	Experience *int64
	Banned     *bool
}

// IsEmpty reports whether no field was supplied.
func (r Record) IsEmpty() bool {
	return r.Name == nil &&
		r.Title == nil &&
		r.Race == nil &&
		r.Profession == nil &&
		r.Birthday == nil &&
		r.Experience == nil &&
		r.Banned == nil
}

// HasMissingRequired reports whether any field needed to create a player is absent.
// Banned is optional and defaults to false.
func (r Record) HasMissingRequired() bool {
	return r.Name == nil ||
		r.Title == nil ||
		r.Race == nil ||
		r.Profession == nil ||
		r.Birthday == nil ||
		r.Experience == nil
}

// LevelFor derives the character level from accumulated experience.
func LevelFor(experience int64) int64 {
	if experience < 0 {
		return 0
	}
	root := int64(math.Sqrt(float64(2500 + 200*experience)))
	return (root - 50) / 100
}

// UntilNextLevel is the experience still missing to reach level+1.
func UntilNextLevel(level, experience int64) int64 {
	return 50*(level+1)*(level+2) - experience
}

// ApplyExperience sets experience and recomputes the derived level fields.
func (p *Player) ApplyExperience(experience int64) {
	p.Experience = experience
	p.Level = LevelFor(experience)
	p.UntilNextLevel = UntilNextLevel(p.Level, experience)
}

// BirthdayMillis returns the birthday as epoch milliseconds.
func (p Player) BirthdayMillis() int64 {
	return p.Birthday.UnixMilli()
}

func (p Player) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Title == "" {
		return fmt.Errorf("player title is required")
	}
	if _, ok := AllRaces[p.Race]; !ok {
		return fmt.Errorf("invalid player race: %s", p.Race)
	}
	if _, ok := AllProfessions[p.Profession]; !ok {
		return fmt.Errorf("invalid player profession: %s", p.Profession)
	}
	if p.Experience < 0 {
		return fmt.Errorf("player experience must not be negative")
	}

	return nil
}
