package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimhyunseo/kbo-calendar/internal/models"
)

func TestFileStore_ScheduleRoundTrip(t *testing.T) {
	st, err := OpenFile(t.TempDir())
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()

	// A fresh store yields an empty collection, not an error.
	games, err := st.LoadSchedule(ctx)
	require.NoError(t, err)
	assert.Empty(t, games)

	five, three := 5, 3
	written := []models.GameRecord{
		{
			ID:        "20250910_두산_LG",
			Start:     models.NewLocalTime(2025, 9, 10, 18, 30),
			HomeTeam:  "두산",
			AwayTeam:  "LG",
			HomeScore: &five,
			AwayScore: &three,
			Note:      "잠실",
			Status:    models.StatusFinal,
		},
		{
			ID:       "20250911_KT_NC",
			Start:    models.NewLocalTime(2025, 9, 11, 18, 30),
			HomeTeam: "KT",
			AwayTeam: "NC",
			Status:   models.StatusScheduled,
		},
	}
	require.NoError(t, st.SaveSchedule(ctx, written))

	loaded, err := st.LoadSchedule(ctx)
	require.NoError(t, err)
	assert.Equal(t, written, loaded)
	assert.Nil(t, loaded[1].HomeScore, "null scores survive the round trip")
}

func TestFileStore_RankingsRoundTrip(t *testing.T) {
	st, err := OpenFile(t.TempDir())
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()

	rankings, err := st.LoadRankings(ctx)
	require.NoError(t, err)
	assert.Empty(t, rankings)

	written := map[string][]models.RankingEntry{
		"2025": {
			{
				Rank:        models.Rank{Number: 1},
				Team:        "LG",
				Games:       80,
				Wins:        50,
				Draws:       2,
				Losses:      28,
				WinRate:     0.641,
				GamesBehind: "0.0",
				Streak:      "3승",
			},
		},
		"2026": {
			{Rank: models.Rank{Text: models.RankPlaceholder}, Team: "LG", GamesBehind: "0.0", Streak: "-"},
		},
	}
	require.NoError(t, st.SaveRankings(ctx, written))

	loaded, err := st.LoadRankings(ctx)
	require.NoError(t, err)
	assert.Equal(t, written, loaded)
}

func TestFileStore_UndecodableDocumentStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	st, err := OpenFile(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "schedule.json"), []byte("{not json"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rankings.json"), []byte("[]"), 0o644))

	ctx := context.Background()

	games, err := st.LoadSchedule(ctx)
	require.NoError(t, err)
	assert.Empty(t, games)

	rankings, err := st.LoadRankings(ctx)
	require.NoError(t, err)
	assert.Empty(t, rankings)
}

func TestOpenFile_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	_, err := OpenFile(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
