// Package reconcile turns flat scraped rows into canonical game
// records and merges them into the persisted schedule and standings
// documents.
package reconcile

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kimhyunseo/kbo-calendar/internal/models"
)

// gameKey identifies one game inside a scrape window. Two raw rows
// belong to the same game iff their keys match.
type gameKey struct {
	Year         int
	Month        int
	Day          int
	Home         string
	Away         string
	Doubleheader int
}

// BuildGames groups the per-team scoreboard rows of one month into one
// GameRecord per game. Missing data never drops a game: an unparsable
// time falls back to the league default, an absent or non-numeric runs
// cell becomes a null score, a missing venue just leaves the note
// shorter. An empty input yields an empty output.
func BuildGames(rows []models.RawRow, annotation string) []models.GameRecord {
	groups := make(map[gameKey][]models.RawRow)
	var order []gameKey
	for _, row := range rows {
		key := gameKey{row.Year, row.Month, row.Day, row.Home, row.Away, row.Doubleheader}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], row)
	}

	games := make([]models.GameRecord, 0, len(order))
	for _, key := range order {
		group := groups[key]
		rep := group[0]

		hour, minute := parseStartTime(rep.Time)
		homeKey := models.TeamKey(rep.Home)
		awayKey := models.TeamKey(rep.Away)
		if !models.KnownTeam(homeKey) {
			log.Debug().Str("team", rep.Home).Msg("Unmapped home team name passed through")
		}
		if !models.KnownTeam(awayKey) {
			log.Debug().Str("team", rep.Away).Msg("Unmapped away team name passed through")
		}

		homeScore := scoreForTeam(group, rep.Home)
		awayScore := scoreForTeam(group, rep.Away)

		games = append(games, models.GameRecord{
			ID:        models.GameID(key.Year, key.Month, key.Day, homeKey, awayKey, key.Doubleheader),
			Start:     models.NewLocalTime(key.Year, key.Month, key.Day, hour, minute),
			HomeTeam:  homeKey,
			AwayTeam:  awayKey,
			HomeScore: homeScore,
			AwayScore: awayScore,
			Note:      buildNote(rep.Venue, key.Doubleheader, annotation),
			Status:    models.StatusFor(homeScore, awayScore),
		})
	}
	return games
}

// BuildBasicSchedule produces skeletal scheduled-game records from the
// coarse per-game month listing, for months where the scoreboard feed
// has no rows yet. Scores are null, status scheduled, start time the
// league default; the note carries only the caller's annotation.
func BuildBasicSchedule(rows []models.CoarseRow, annotation string) []models.GameRecord {
	games := make([]models.GameRecord, 0, len(rows))
	for _, row := range rows {
		year, month, day, err := parseCompactDate(row.Date)
		if err != nil {
			log.Warn().Str("date", row.Date).Str("home", row.Home).Str("away", row.Away).
				Msg("Skipping schedule row with unparsable date")
			continue
		}

		homeKey := models.TeamKey(row.Home)
		awayKey := models.TeamKey(row.Away)
		games = append(games, models.GameRecord{
			ID:       models.GameID(year, month, day, homeKey, awayKey, row.Doubleheader),
			Start:    models.NewLocalTime(year, month, day, models.DefaultStartHour, models.DefaultStartMinute),
			HomeTeam: homeKey,
			AwayTeam: awayKey,
			Note:     buildNote("", row.Doubleheader, annotation),
			Status:   models.StatusScheduled,
		})
	}
	return games
}

// parseCompactDate parses a compact YYYYMMDD date cell.
func parseCompactDate(raw string) (year, month, day int, err error) {
	t, err := time.Parse("20060102", strings.TrimSpace(raw))
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid compact date %q: %w", raw, err)
	}
	return t.Year(), int(t.Month()), t.Day(), nil
}

// parseStartTime parses an "HH:MM" cell. Any malformed or missing
// value falls back to the league's typical first pitch; a bad time
// must never drop the game.
func parseStartTime(raw string) (hour, minute int) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 2 {
		return models.DefaultStartHour, models.DefaultStartMinute
	}
	h, errH := strconv.Atoi(strings.TrimSpace(parts[0]))
	m, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errH != nil || errM != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return models.DefaultStartHour, models.DefaultStartMinute
	}
	return h, m
}

// scoreForTeam extracts the runs scored by the named side from its row
// in the group. Absent row, dash, empty or non-numeric text all yield
// a null score; null is preserved through to the document, not coerced
// to zero.
func scoreForTeam(group []models.RawRow, team string) *int {
	for _, row := range group {
		if row.Team != team {
			continue
		}
		return parseScore(row.Runs)
	}
	return nil
}

func parseScore(raw string) *int {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "-" {
		return nil
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil
	}
	return &n
}

// buildNote composes the free-text note: venue, a doubleheader marker,
// and the caller-supplied annotation.
func buildNote(venue string, doubleheader int, annotation string) string {
	note := strings.TrimSpace(venue)
	if note != "" && doubleheader > 0 {
		note += fmt.Sprintf(" (DH%d)", doubleheader)
	}
	annotation = strings.TrimSpace(annotation)
	if annotation != "" {
		if note == "" {
			note = annotation
		} else {
			note += " (" + annotation + ")"
		}
	}
	return note
}
