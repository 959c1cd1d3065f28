package reconcile

import (
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kimhyunseo/kbo-calendar/internal/models"
)

// fullSeasonGames is the league-wide games-played total of a completed
// regular season: 10 clubs playing 144 games each.
const fullSeasonGames = 1440

// offSeasonCutoffMonth is the last month in which the ranking page may
// still be showing the previous season's final table.
const offSeasonCutoffMonth = time.March

// BuildStandings parses the raw ranking table into typed entries for
// the given season and applies the off-season staleness guard. Before
// the new season starts, the stats site keeps serving the completed
// prior season's table under the new year; when that is detected every
// entry is reset to the pre-season placeholder state so the frontend
// does not present last year's leaderboard as this year's. The second
// return value reports whether the guard fired.
func BuildStandings(season string, rows []models.RankingRow, now time.Time) ([]models.RankingEntry, bool) {
	entries := make([]models.RankingEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, parseRankingRow(row))
	}

	if !staleFullSeason(season, entries, now) {
		return entries, false
	}

	log.Warn().Str("season", season).Msg("Off-season guard: resetting stale full-season standings")
	for i := range entries {
		entries[i] = placeholderEntry(entries[i].Team)
	}
	return entries, true
}

// MergeRankings replaces the entry list for one season in the
// persisted season-to-entries mapping, leaving other seasons untouched.
func MergeRankings(existing map[string][]models.RankingEntry, season string, entries []models.RankingEntry) map[string][]models.RankingEntry {
	if existing == nil {
		existing = make(map[string][]models.RankingEntry, 1)
	}
	existing[season] = entries
	return existing
}

// parseRankingRow coerces one raw row into a typed entry. The five
// counting/rate cells parse as a group: if any of them fails, the whole
// row falls back to the pre-season zero state rather than mixing
// half-parsed numbers. The rank cell keeps non-numeric placeholder text.
func parseRankingRow(row models.RankingRow) models.RankingEntry {
	team := models.TeamKey(row.Team)

	games, errG := strconv.Atoi(strings.TrimSpace(row.Games))
	wins, errW := strconv.Atoi(strings.TrimSpace(row.Wins))
	draws, errD := strconv.Atoi(strings.TrimSpace(row.Draws))
	losses, errL := strconv.Atoi(strings.TrimSpace(row.Losses))
	rate, errR := strconv.ParseFloat(strings.TrimSpace(row.WinRate), 64)
	if errG != nil || errW != nil || errD != nil || errL != nil || errR != nil {
		log.Debug().Str("team", row.Team).Msg("Ranking row with unparsable stats, using zero state")
		entry := placeholderEntry(team)
		entry.Rank = models.RankOf(row.Rank)
		return entry
	}

	return models.RankingEntry{
		Rank:        models.RankOf(row.Rank),
		Team:        team,
		Games:       games,
		Wins:        wins,
		Draws:       draws,
		Losses:      losses,
		WinRate:     rate,
		GamesBehind: strings.TrimSpace(row.GamesBehind),
		Streak:      strings.TrimSpace(row.Streak),
	}
}

// staleFullSeason reports whether the table is a completed prior
// season masquerading as the requested one: the requested season is
// the current calendar year, the summed games played amount to a full
// season, and the new season has not started yet.
func staleFullSeason(season string, entries []models.RankingEntry, now time.Time) bool {
	if season != strconv.Itoa(now.Year()) {
		return false
	}
	if now.Month() > offSeasonCutoffMonth {
		return false
	}
	total := 0
	for _, entry := range entries {
		total += entry.Games
	}
	return total >= fullSeasonGames
}

func placeholderEntry(team string) models.RankingEntry {
	return models.RankingEntry{
		Rank:        models.Rank{Text: models.RankPlaceholder},
		Team:        team,
		WinRate:     0.0,
		GamesBehind: "0.0",
		Streak:      "-",
	}
}
