package app

import (
	"strings"
	"unicode/utf8"
)

const maxTracedQueryRunes = 512

// formatDBQueryForTrace puts a player store statement on one line and caps it
// at maxTracedQueryRunes code points for the db.statement span attribute.
func formatDBQueryForTrace(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	if utf8.RuneCountInString(normalized) <= maxTracedQueryRunes {
		return normalized
	}

	runes := []rune(normalized)
	return string(runes[:maxTracedQueryRunes]) + "..."
}
