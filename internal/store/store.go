// Package store persists the two documents of record: the schedule
// collection and the per-season rankings mapping. Both are read once
// at the start of a reconciliation run and written once at the end.
package store

import (
	"context"

	"github.com/kimhyunseo/kbo-calendar/internal/models"
)

// Store is the document store consumed by the sync service. A missing
// or undecodable persisted document loads as empty so a corrupted file
// never blocks forward progress; an unreachable backend is a run-level
// failure.
type Store interface {
	LoadSchedule(ctx context.Context) ([]models.GameRecord, error)
	SaveSchedule(ctx context.Context, games []models.GameRecord) error
	LoadRankings(ctx context.Context) (map[string][]models.RankingEntry, error)
	SaveRankings(ctx context.Context, rankings map[string][]models.RankingEntry) error
	Close()
}

// Document names shared by the backends.
const (
	scheduleDocument = "schedule"
	rankingsDocument = "rankings"
)
