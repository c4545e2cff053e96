package domain

import (
	"slices"
	"strings"
	"unicode"
)

// TopMovesLimit is the number of moves carried by a summary.
const TopMovesLimit = 3

// Stat names kept in a summary, in no particular order. Source order wins.
var statWhitelist = []string{"attack", "defense"}

// Pokemon is the primary catalog record, already reduced to the fields the
// gateway consumes.
type Pokemon struct {
	Name       string
	ShinyImage string
	Types      []string
	Weight     int
	Height     int
	Stats      []Stat
	Moves      []MoveRef
}

// Stat is a named base stat.
type Stat struct {
	Name  string
	Value int
}

// MoveRef points at a move sub-resource whose power must be resolved.
type MoveRef struct {
	Name string
	URL  string
}

// MoveCandidate is a move after its power lookup. A nil Power means the
// lookup produced no usable value.
type MoveCandidate struct {
	Name  string
	Power *int
}

// Move is a ranked move.
type Move struct {
	Name  string
	Power int
}

// EntitySummary is the reshaped detail view of a single pokemon.
type EntitySummary struct {
	ShinyImage string
	Name       string
	Types      []string
	Weight     int
	Height     int
	Stats      []Stat
	Moves      []Move
}

// IsValidRef reports whether ref is a non-empty, purely alphabetic name.
func IsValidRef(ref string) bool {
	if ref == "" {
		return false
	}
	for _, r := range ref {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// NormalizeRef lower-cases ref; catalog identifiers are case-sensitive.
func NormalizeRef(ref string) string {
	return strings.ToLower(ref)
}

// FilterStats keeps whitelisted stats in source order.
func FilterStats(stats []Stat) []Stat {
	kept := make([]Stat, 0, len(statWhitelist))
	for _, s := range stats {
		if slices.Contains(statWhitelist, s.Name) {
			kept = append(kept, s)
		}
	}
	return kept
}
