package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// RankPlaceholder is the pre-season rank shown before any games have
// been played.
const RankPlaceholder = "-"

// Rank is an integer standings position, or a non-numeric placeholder
// such as "-" on pre-season tables. It marshals as a JSON number when
// numeric so the persisted document matches what the frontend expects.
type Rank struct {
	Number int
	Text   string // set when the source value is not numeric
}

// RankOf parses a raw rank cell, keeping non-numeric text as-is.
func RankOf(raw string) Rank {
	trimmed := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(trimmed); err == nil {
		return Rank{Number: n}
	}
	return Rank{Text: trimmed}
}

// IsPlaceholder reports whether the rank is the pre-season placeholder.
func (r Rank) IsPlaceholder() bool {
	return r.Text == RankPlaceholder
}

// String returns the display form of the rank.
func (r Rank) String() string {
	if r.Text != "" {
		return r.Text
	}
	return strconv.Itoa(r.Number)
}

// MarshalJSON implements json.Marshaler.
func (r Rank) MarshalJSON() ([]byte, error) {
	if r.Text != "" {
		return json.Marshal(r.Text)
	}
	return json.Marshal(r.Number)
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Rank) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*r = Rank{Number: n}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = Rank{Text: s}
	return nil
}

// RankingRow is one raw line of the daily team ranking table, cell
// values still as text. The extractor maps the table's localized
// column headers onto these fields.
type RankingRow struct {
	Rank        string
	Team        string
	Games       string
	Wins        string
	Draws       string
	Losses      string
	WinRate     string
	GamesBehind string
	Streak      string
}

// RankingEntry is one typed standings line persisted per season. A
// season's entries are always replaced as a whole unit, never merged
// field-by-field with prior entries.
type RankingEntry struct {
	Rank        Rank    `json:"rank"`
	Team        string  `json:"team"`
	Games       int     `json:"games"`
	Wins        int     `json:"wins"`
	Draws       int     `json:"draws"`
	Losses      int     `json:"losses"`
	WinRate     float64 `json:"win_rate"`
	GamesBehind string  `json:"games_behind"`
	Streak      string  `json:"streak"`
}
