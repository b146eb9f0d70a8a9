package player

import "strings"

// Matches reports whether p satisfies every constraint set on f.
func (f Filter) Matches(p Player) bool {
	if f.Name != nil && !strings.Contains(p.Name, *f.Name) {
		return false
	}
	if f.Title != nil && !strings.Contains(p.Title, *f.Title) {
		return false
	}
	if f.Race != nil && p.Race != *f.Race {
		return false
	}
	if f.Profession != nil && p.Profession != *f.Profession {
		return false
	}

	birthday := p.BirthdayMillis()
	if f.After != nil && birthday < *f.After {
		return false
	}
	if f.Before != nil && birthday > *f.Before {
		return false
	}
	if f.Banned != nil && p.Banned != *f.Banned {
		return false
	}
	if f.MinExperience != nil && p.Experience < *f.MinExperience {
		return false
	}
	if f.MaxExperience != nil && p.Experience > *f.MaxExperience {
		return false
	}
	if f.MinLevel != nil && p.Level < *f.MinLevel {
		return false
	}
	if f.MaxLevel != nil && p.Level > *f.MaxLevel {
		return false
	}

	return true
}

// Compare orders a and b by the given column, falling back to id for ties.
func (o Order) Compare(a, b Player) int {
	var c int
	switch o {
	case OrderName:
		c = strings.Compare(a.Name, b.Name)
	case OrderExperience:
		c = compareInt64(a.Experience, b.Experience)
	case OrderBirthday:
		c = a.Birthday.Compare(b.Birthday)
	case OrderLevel:
		c = compareInt64(a.Level, b.Level)
	}
	if c != 0 {
		return c
	}
	return compareInt64(a.ID, b.ID)
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
