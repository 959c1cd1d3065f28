package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimhyunseo/kbo-calendar/internal/models"
)

func rankingRow(rank, team, games, wins, draws, losses, rate, behind, streak string) models.RankingRow {
	return models.RankingRow{
		Rank: rank, Team: team, Games: games, Wins: wins, Draws: draws,
		Losses: losses, WinRate: rate, GamesBehind: behind, Streak: streak,
	}
}

func TestBuildStandings_ParsesRows(t *testing.T) {
	rows := []models.RankingRow{
		rankingRow("1", "LG 트윈스", "80", "50", "2", "28", "0.641", "0.0", "3승"),
		rankingRow("2", "KT 위즈", "81", "47", "1", "33", "0.588", "4.0", "1패"),
	}

	midSeason := time.Date(2025, time.July, 15, 12, 0, 0, 0, time.Local)
	entries, reset := BuildStandings("2025", rows, midSeason)
	require.Len(t, entries, 2)
	assert.False(t, reset)

	first := entries[0]
	assert.Equal(t, models.Rank{Number: 1}, first.Rank)
	assert.Equal(t, "LG", first.Team)
	assert.Equal(t, 80, first.Games)
	assert.Equal(t, 50, first.Wins)
	assert.Equal(t, 2, first.Draws)
	assert.Equal(t, 28, first.Losses)
	assert.InDelta(t, 0.641, first.WinRate, 1e-9)
	assert.Equal(t, "0.0", first.GamesBehind)
	assert.Equal(t, "3승", first.Streak)
}

func TestBuildStandings_UnparsableRowFallsBackWhole(t *testing.T) {
	rows := []models.RankingRow{
		rankingRow("1", "LG 트윈스", "80", "50", "2", "28", "0.641", "0.0", "3승"),
		// Games cell is garbage: the whole row drops to the zero state,
		// it must not keep half of its numbers.
		rankingRow("2", "KT 위즈", "n/a", "47", "1", "33", "0.588", "4.0", "1패"),
	}

	midSeason := time.Date(2025, time.July, 15, 12, 0, 0, 0, time.Local)
	entries, _ := BuildStandings("2025", rows, midSeason)
	require.Len(t, entries, 2)

	bad := entries[1]
	assert.Equal(t, models.Rank{Number: 2}, bad.Rank, "rank survives the fallback")
	assert.Equal(t, "KT", bad.Team)
	assert.Zero(t, bad.Games)
	assert.Zero(t, bad.Wins)
	assert.Zero(t, bad.Losses)
	assert.Zero(t, bad.WinRate)
	assert.Equal(t, "0.0", bad.GamesBehind)
	assert.Equal(t, "-", bad.Streak)
}

// fullSeasonRows sums to 1440 games across ten clubs.
func fullSeasonRows() []models.RankingRow {
	teams := []string{"LG", "KT", "SSG", "NC", "두산", "KIA", "롯데", "삼성", "한화", "키움"}
	rows := make([]models.RankingRow, 0, len(teams))
	for _, team := range teams {
		rows = append(rows, rankingRow(
			"1", team, "144", "72", "2", "70", "0.507", "0.0", "1승",
		))
	}
	return rows
}

func TestBuildStandings_OffSeasonGuardResets(t *testing.T) {
	// February of the new year, ranking page still serving last
	// season's completed table.
	february := time.Date(2026, time.February, 10, 9, 0, 0, 0, time.Local)
	entries, reset := BuildStandings("2026", fullSeasonRows(), february)
	assert.True(t, reset)
	require.Len(t, entries, 10)

	for _, entry := range entries {
		assert.Equal(t, models.Rank{Text: models.RankPlaceholder}, entry.Rank)
		assert.Zero(t, entry.Games)
		assert.Zero(t, entry.Wins)
		assert.Equal(t, "0.0", entry.GamesBehind)
		assert.Equal(t, "-", entry.Streak)
	}
}

func TestBuildStandings_GuardOnlyBeforeApril(t *testing.T) {
	// Same full-season table in April is a legitimate (if improbable)
	// in-season state and passes through.
	april := time.Date(2026, time.April, 2, 9, 0, 0, 0, time.Local)
	entries, reset := BuildStandings("2026", fullSeasonRows(), april)
	assert.False(t, reset)
	assert.Equal(t, 144, entries[0].Games)
}

func TestBuildStandings_GuardOnlyForCurrentYear(t *testing.T) {
	// Backfilling a past season keeps its final table intact even in
	// the off-season window.
	february := time.Date(2026, time.February, 10, 9, 0, 0, 0, time.Local)
	entries, reset := BuildStandings("2025", fullSeasonRows(), february)
	assert.False(t, reset)
	assert.Equal(t, 144, entries[0].Games)
}

func TestMergeRankings(t *testing.T) {
	prior := map[string][]models.RankingEntry{
		"2024": {{Rank: models.Rank{Number: 1}, Team: "KIA", Games: 144}},
	}
	entries := []models.RankingEntry{
		{Rank: models.Rank{Number: 1}, Team: "LG", Games: 80},
	}

	merged := MergeRankings(prior, "2025", entries)
	require.Len(t, merged, 2)
	assert.Equal(t, "KIA", merged["2024"][0].Team, "other seasons stay untouched")
	assert.Equal(t, "LG", merged["2025"][0].Team)

	// A nil mapping is usable, for the first-ever sync.
	merged = MergeRankings(nil, "2025", entries)
	require.Len(t, merged, 1)
	assert.Equal(t, entries, merged["2025"])

	// Re-syncing a season replaces its entries wholesale.
	shorter := entries[:1]
	merged = MergeRankings(merged, "2025", shorter)
	assert.Equal(t, shorter, merged["2025"])
}
