package player

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	NameMaxLength   = 12
	TitleMaxLength  = 30
	ExperienceMin   = 0
	ExperienceMax   = 10_000_000
	BirthYearMin    = 2000
	BirthYearMax    = 3000
	textMinLength   = 1
	birthdayMinimum = 0
)

// IsNameValid reports whether the name is present and 1..12 characters once trimmed.
func IsNameValid(r Record) bool {
	if r.Name == nil {
		return false
	}
	return trimmedLengthWithin(*r.Name, textMinLength, NameMaxLength)
}

// IsTitleValid reports whether the title is present and 1..30 characters once trimmed.
func IsTitleValid(r Record) bool {
	if r.Title == nil {
		return false
	}
	return trimmedLengthWithin(*r.Title, textMinLength, TitleMaxLength)
}

func IsExperienceValid(r Record) bool {
	if r.Experience == nil {
		return false
	}
	return *r.Experience >= ExperienceMin && *r.Experience <= ExperienceMax
}

// IsBirthdayValid reports whether the birthday is a non-negative epoch millisecond
// value whose calendar year, read in loc, falls in [2000, 3000].
// A nil loc means UTC.
func IsBirthdayValid(r Record, loc *time.Location) bool {
	if r.Birthday == nil || *r.Birthday < birthdayMinimum {
		return false
	}
	if loc == nil {
		loc = time.UTC
	}

	date := time.UnixMilli(*r.Birthday).In(loc)
	if date.UnixMilli() < birthdayMinimum {
		return false
	}

	year := date.Year()
	return year >= BirthYearMin && year <= BirthYearMax
}

// trimmedLengthWithin trims Unicode white space, NBSP included, and counts
// code points, so an astral-plane character counts once.
func trimmedLengthWithin(v string, minLen, maxLen int) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(v))
	return n >= minLen && n <= maxLen
}
