package models

import (
	"fmt"
	"strings"
	"time"
)

// Game status values persisted in the schedule document.
const (
	StatusScheduled = "scheduled"
	StatusFinal     = "final"
)

// DefaultStartHour/Minute is the league's typical first pitch, used
// whenever the source carries no usable start time.
const (
	DefaultStartHour   = 18
	DefaultStartMinute = 30
)

const localTimeLayout = "2006-01-02T15:04:05"

// LocalTime is a wall-clock timestamp serialized without a zone offset,
// matching the schedule document consumed by the calendar frontend.
type LocalTime struct {
	time.Time
}

// NewLocalTime builds a LocalTime for the given local date and time.
func NewLocalTime(year, month, day, hour, minute int) LocalTime {
	return LocalTime{time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.Local)}
}

// MarshalJSON implements json.Marshaler.
func (t LocalTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(localTimeLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *LocalTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := time.ParseInLocation(localTimeLayout, s, time.Local)
	if err != nil {
		return fmt.Errorf("invalid start time %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

// GameRecord is the canonical reconciled entity for one scheduled or
// played game. Records are keyed by ID in the persisted schedule
// document and only ever updated in place, never deleted.
type GameRecord struct {
	ID        string    `json:"id"`
	Start     LocalTime `json:"start"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	HomeScore *int      `json:"home_score"`
	AwayScore *int      `json:"away_score"`
	Note      string    `json:"note"`
	Status    string    `json:"status"`
}

// GameID derives the stable identifier for a game. The identifier is
// reproducible from the date, the normalized team keys and the
// doubleheader index, so repeated scrapes of the same game converge on
// the same document entry.
func GameID(year, month, day int, homeKey, awayKey string, doubleheader int) string {
	id := fmt.Sprintf("%04d%02d%02d_%s_%s", year, month, day, homeKey, awayKey)
	if doubleheader > 0 {
		id += fmt.Sprintf("_DH%d", doubleheader)
	}
	return id
}

// StatusFor derives the game status from score availability: final iff
// both scores are present.
func StatusFor(homeScore, awayScore *int) string {
	if homeScore != nil && awayScore != nil {
		return StatusFinal
	}
	return StatusScheduled
}

// RawRow is one per-team line of the monthly scoreboard feed. Two rows
// describe a game: one for the home side, one for the away side. Runs
// is kept as raw text because the source emits "-" or an empty cell
// for games that have not been played.
type RawRow struct {
	Year         int    `json:"year"`
	Month        int    `json:"month"`
	Day          int    `json:"day"`
	Time         string `json:"time"`
	Team         string `json:"team"`
	Runs         string `json:"r"`
	Venue        string `json:"place"`
	Doubleheader int    `json:"dbheader"`
	Home         string `json:"home"`
	Away         string `json:"away"`
}

// CoarseRow is one per-game line of the month schedule listing, used
// when the detailed scoreboard feed has no rows yet (future months).
type CoarseRow struct {
	Status       string `json:"status"`
	Date         string `json:"date"` // compact YYYYMMDD
	Home         string `json:"home"`
	Away         string `json:"away"`
	Doubleheader int    `json:"dbheader"`
}
