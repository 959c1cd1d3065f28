package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimhyunseo/kbo-calendar/internal/models"
)

func scheduledGame(id string, year, month, day int, note string) models.GameRecord {
	return models.GameRecord{
		ID:     id,
		Start:  models.NewLocalTime(year, month, day, models.DefaultStartHour, models.DefaultStartMinute),
		Note:   note,
		Status: models.StatusScheduled,
	}
}

func TestMergeSchedule_InsertsNewGames(t *testing.T) {
	batch := []models.GameRecord{
		scheduledGame("20250911_KT_NC", 2025, 9, 11, ""),
		scheduledGame("20250910_두산_LG", 2025, 9, 10, ""),
	}

	merged, added, updated := MergeSchedule(nil, batch, ReplaceAll)
	assert.Equal(t, 2, added)
	assert.Equal(t, 0, updated)
	require.Len(t, merged, 2)

	// Output is sorted by start time regardless of batch order.
	assert.Equal(t, "20250910_두산_LG", merged[0].ID)
	assert.Equal(t, "20250911_KT_NC", merged[1].ID)
}

func TestMergeSchedule_Idempotent(t *testing.T) {
	batch := []models.GameRecord{
		scheduledGame("20250910_두산_LG", 2025, 9, 10, ""),
	}

	merged, added, _ := MergeSchedule(nil, batch, ReplaceAll)
	require.Equal(t, 1, added)

	again, added, updated := MergeSchedule(merged, batch, ReplaceAll)
	assert.Equal(t, 0, added)
	assert.Equal(t, 1, updated)
	assert.Equal(t, merged, again)
}

func TestMergeSchedule_NeverDeletes(t *testing.T) {
	existing := []models.GameRecord{
		scheduledGame("20250901_삼성_KIA", 2025, 9, 1, ""),
	}
	batch := []models.GameRecord{
		scheduledGame("20250910_두산_LG", 2025, 9, 10, ""),
	}

	merged, added, updated := MergeSchedule(existing, batch, ReplaceAll)
	assert.Equal(t, 1, added)
	assert.Equal(t, 0, updated)
	require.Len(t, merged, 2, "games absent from the batch must survive the merge")
	assert.Equal(t, "20250901_삼성_KIA", merged[0].ID)
}

func TestMergeSchedule_UpdateTransitionsToFinal(t *testing.T) {
	existing := []models.GameRecord{
		scheduledGame("20250910_두산_LG", 2025, 9, 10, "잠실"),
	}

	five, three := 5, 3
	finished := existing[0]
	finished.HomeScore = &five
	finished.AwayScore = &three
	finished.Status = models.StatusFinal

	merged, added, updated := MergeSchedule(existing, []models.GameRecord{finished}, ReplaceAll)
	assert.Equal(t, 0, added)
	assert.Equal(t, 1, updated)
	require.Len(t, merged, 1)
	assert.Equal(t, models.StatusFinal, merged[0].Status)
	require.NotNil(t, merged[0].HomeScore)
	assert.Equal(t, 5, *merged[0].HomeScore)
}

func TestMergeSchedule_PreserveNotePolicy(t *testing.T) {
	existing := []models.GameRecord{
		scheduledGame("20250910_두산_LG", 2025, 9, 10, "어린이날 특별 경기"),
	}
	batch := []models.GameRecord{
		scheduledGame("20250910_두산_LG", 2025, 9, 10, ""),
	}

	merged, _, _ := MergeSchedule(existing, batch, PreserveNote)
	assert.Equal(t, "어린이날 특별 경기", merged[0].Note, "manual note survives an empty incoming note")

	// An incoming non-empty note still wins.
	batch[0].Note = "잠실"
	merged, _, _ = MergeSchedule(existing, batch, PreserveNote)
	assert.Equal(t, "잠실", merged[0].Note)

	// ReplaceAll always takes the incoming value, empty included.
	batch[0].Note = ""
	merged, _, _ = MergeSchedule(existing, batch, ReplaceAll)
	assert.Equal(t, "", merged[0].Note)
}

func TestMergeSchedule_SortTieBreaksOnID(t *testing.T) {
	// Doubleheader legs share a start time when the feed carries no
	// per-leg times; ordering must still be deterministic.
	batch := []models.GameRecord{
		scheduledGame("20250621_롯데_한화_DH2", 2025, 6, 21, ""),
		scheduledGame("20250621_롯데_한화_DH1", 2025, 6, 21, ""),
	}

	merged, _, _ := MergeSchedule(nil, batch, ReplaceAll)
	require.Len(t, merged, 2)
	assert.Equal(t, "20250621_롯데_한화_DH1", merged[0].ID)
	assert.Equal(t, "20250621_롯데_한화_DH2", merged[1].ID)
}
