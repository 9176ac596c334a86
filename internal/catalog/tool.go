package catalog

import (
	"strings"
	"unicode/utf8"
)

// Difficulty is the self-declared learning curve of a tool.
type Difficulty string

const (
	// DifficultyUnset marks a tool whose difficulty is absent or null in the source.
	DifficultyUnset  Difficulty = ""
	DifficultyLow    Difficulty = "low"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty normalizes raw catalog values. Unknown values are treated as unset.
func ParseDifficulty(raw string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "low", "easy":
		return DifficultyLow
	case "medium", "mid", "intermediate":
		return DifficultyMedium
	case "hard", "high", "advanced":
		return DifficultyHard
	default:
		return DifficultyUnset
	}
}

// LookupDifficulty parses a difficulty filter. "unset" and "null" select
// tools without a difficulty. Unknown values report false.
func LookupDifficulty(raw string) (Difficulty, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "unset", "null", "none":
		return DifficultyUnset, true
	}
	d := ParseDifficulty(raw)
	return d, d.IsSet()
}

// IsSet reports whether the difficulty was present in the source.
func (d Difficulty) IsSet() bool { return d != DifficultyUnset }

// Effective returns the difficulty used for display, where unset reads as medium.
func (d Difficulty) Effective() Difficulty {
	if d == DifficultyUnset {
		return DifficultyMedium
	}
	return d
}

func (d Difficulty) String() string {
	if d == DifficultyUnset {
		return "unset"
	}
	return string(d)
}

// Tool is a single catalog entry. Scores live outside the record so one catalog
// can be shared between sessions.
type Tool struct {
	Name        string     `json:"name" yaml:"name"`
	Category    string     `json:"category,omitempty" yaml:"category,omitempty"`
	Difficulty  Difficulty `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
}

// Key is the case-insensitive identity of the tool.
func (t *Tool) Key() string {
	if t == nil {
		return ""
	}
	return NormalizeName(t.Name)
}

// DescriptionLength counts description characters, not bytes. Surrounding
// whitespace counts too.
func (t *Tool) DescriptionLength() int {
	if t == nil {
		return 0
	}
	return utf8.RuneCountInString(t.Description)
}

// InCategory reports whether the tool belongs to one of the given categories.
func (t *Tool) InCategory(categories []string) bool {
	if t == nil {
		return false
	}
	own := NormalizeName(t.Category)
	if own == "" {
		return false
	}
	for _, category := range categories {
		if NormalizeName(category) == own {
			return true
		}
	}
	return false
}

// NormalizeName trims and lowercases a name for comparisons.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
