// Package sync orchestrates one reconciliation run: fetch the month's
// rows from the source feed, build canonical records and merge them
// into the persisted documents.
package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kimhyunseo/kbo-calendar/internal/metrics"
	"github.com/kimhyunseo/kbo-calendar/internal/models"
	"github.com/kimhyunseo/kbo-calendar/internal/reconcile"
	"github.com/kimhyunseo/kbo-calendar/internal/store"
)

// Feed is the source feed collaborator. The scraping mechanics behind
// it are not this package's concern.
type Feed interface {
	FetchMonthlyRawRows(ctx context.Context, year, month int) ([]models.RawRow, error)
	FetchCoarseSchedule(ctx context.Context, year, month int) ([]models.CoarseRow, error)
	FetchRankingTable(ctx context.Context) ([]models.RankingRow, error)
}

// Service runs schedule and standings syncs against a document store.
type Service struct {
	feed   Feed
	store  store.Store
	policy reconcile.MergePolicy
}

// New creates a sync service.
func New(feed Feed, st store.Store, policy reconcile.MergePolicy) *Service {
	return &Service{feed: feed, store: st, policy: policy}
}

// PolicyFromName maps the MERGE_POLICY config value to a merge policy.
func PolicyFromName(name string) reconcile.MergePolicy {
	if name == "preserve-note" {
		return reconcile.PreserveNote
	}
	return reconcile.ReplaceAll
}

// MonthResult reports the outcome of one month's schedule sync.
type MonthResult struct {
	Year     int
	Month    int
	Total    int // games in the merged collection
	New      int
	Updated  int
	Fallback bool // coarse schedule used instead of scoreboard rows
	Skipped  bool // nothing to sync, store untouched
}

// SyncMonth reconciles one (year, month) window into the schedule
// document. When the scoreboard feed has no rows for the month the
// coarse schedule listing is used to build skeletal scheduled games.
// Empty input skips the store write entirely.
func (s *Service) SyncMonth(ctx context.Context, year, month int, note string) (MonthResult, error) {
	start := time.Now()
	result := MonthResult{Year: year, Month: month}

	rows, err := s.feed.FetchMonthlyRawRows(ctx, year, month)
	if err != nil {
		metrics.RecordSync("schedule", "error", time.Since(start).Seconds())
		return result, fmt.Errorf("failed to fetch scoreboard rows: %w", err)
	}

	var batch []models.GameRecord
	if len(rows) > 0 {
		batch = reconcile.BuildGames(rows, note)
	} else {
		log.Info().Int("year", year).Int("month", month).
			Msg("No scoreboard rows, falling back to coarse schedule")
		coarse, err := s.feed.FetchCoarseSchedule(ctx, year, month)
		if err != nil {
			metrics.RecordSync("schedule", "error", time.Since(start).Seconds())
			return result, fmt.Errorf("failed to fetch coarse schedule: %w", err)
		}
		batch = reconcile.BuildBasicSchedule(coarse, note)
		result.Fallback = true
	}

	if len(batch) == 0 {
		log.Info().Int("year", year).Int("month", month).Msg("No games for month, skipping schedule write")
		result.Skipped = true
		metrics.RecordSync("schedule", "success", time.Since(start).Seconds())
		return result, nil
	}

	existing, err := s.store.LoadSchedule(ctx)
	if err != nil {
		metrics.RecordStoreOp("load", "schedule", "error")
		metrics.RecordSync("schedule", "error", time.Since(start).Seconds())
		return result, fmt.Errorf("failed to load schedule document: %w", err)
	}
	metrics.RecordStoreOp("load", "schedule", "ok")

	merged, added, updated := reconcile.MergeSchedule(existing, batch, s.policy)

	if err := s.store.SaveSchedule(ctx, merged); err != nil {
		metrics.RecordStoreOp("save", "schedule", "error")
		metrics.RecordSync("schedule", "error", time.Since(start).Seconds())
		return result, fmt.Errorf("failed to save schedule document: %w", err)
	}
	metrics.RecordStoreOp("save", "schedule", "ok")
	metrics.RecordScheduleMerge(added, updated, len(merged))
	metrics.RecordSync("schedule", "success", time.Since(start).Seconds())

	result.Total = len(merged)
	result.New = added
	result.Updated = updated

	log.Info().
		Int("year", year).
		Int("month", month).
		Int("new", added).
		Int("updated", updated).
		Int("total", len(merged)).
		Bool("fallback", result.Fallback).
		Dur("duration", time.Since(start)).
		Msg("Month schedule synced")

	return result, nil
}

// StandingsResult reports the outcome of a standings sync.
type StandingsResult struct {
	Season  string
	Entries int
	Reset   bool // off-season guard zeroed the table
	Skipped bool // empty table, store untouched
}

// SyncStandings replaces the standings snapshot for one season in the
// rankings document. Other seasons' entries are untouched.
func (s *Service) SyncStandings(ctx context.Context, season string) (StandingsResult, error) {
	start := time.Now()
	result := StandingsResult{Season: season}

	rows, err := s.feed.FetchRankingTable(ctx)
	if err != nil {
		metrics.RecordSync("standings", "error", time.Since(start).Seconds())
		return result, fmt.Errorf("failed to fetch ranking table: %w", err)
	}

	if len(rows) == 0 {
		log.Info().Str("season", season).Msg("Empty ranking table, skipping standings write")
		result.Skipped = true
		metrics.RecordSync("standings", "success", time.Since(start).Seconds())
		return result, nil
	}

	entries, reset := reconcile.BuildStandings(season, rows, time.Now())

	rankings, err := s.store.LoadRankings(ctx)
	if err != nil {
		metrics.RecordStoreOp("load", "rankings", "error")
		metrics.RecordSync("standings", "error", time.Since(start).Seconds())
		return result, fmt.Errorf("failed to load rankings document: %w", err)
	}
	metrics.RecordStoreOp("load", "rankings", "ok")

	rankings = reconcile.MergeRankings(rankings, season, entries)

	if err := s.store.SaveRankings(ctx, rankings); err != nil {
		metrics.RecordStoreOp("save", "rankings", "error")
		metrics.RecordSync("standings", "error", time.Since(start).Seconds())
		return result, fmt.Errorf("failed to save rankings document: %w", err)
	}
	metrics.RecordStoreOp("save", "rankings", "ok")
	metrics.RankingEntries.Set(float64(len(entries)))
	metrics.RecordSync("standings", "success", time.Since(start).Seconds())

	result.Entries = len(entries)
	result.Reset = reset

	log.Info().
		Str("season", season).
		Int("entries", len(entries)).
		Bool("reset", reset).
		Dur("duration", time.Since(start)).
		Msg("Standings synced")

	return result, nil
}
