package reconcile

import (
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/kimhyunseo/kbo-calendar/internal/models"
)

// MergePolicy controls how an incoming record replaces a stored one
// with the same identifier.
type MergePolicy int

const (
	// ReplaceAll overwrites every field of the stored record with the
	// incoming one, matching the upstream feed exactly. An
	// operator-edited note is lost on the next sync.
	ReplaceAll MergePolicy = iota
	// PreserveNote keeps the stored note when the incoming record
	// carries none, so manual annotations survive a re-sync.
	PreserveNote
)

// MergeSchedule upserts a freshly built batch into the persisted
// schedule collection. Records are matched by identifier: matches are
// overwritten per the policy, the rest are inserted. Nothing is ever
// removed, so games that drop out of the source feed stay in the
// document. The merged collection is returned sorted ascending by
// start time (identifier as tie-break), with counts of inserted and
// updated records.
func MergeSchedule(existing, batch []models.GameRecord, policy MergePolicy) (merged []models.GameRecord, added, updated int) {
	byID := make(map[string]models.GameRecord, len(existing)+len(batch))
	for _, game := range existing {
		byID[game.ID] = game
	}

	for _, game := range batch {
		prev, ok := byID[game.ID]
		if !ok {
			byID[game.ID] = game
			added++
			continue
		}
		if policy == PreserveNote && game.Note == "" && prev.Note != "" {
			game.Note = prev.Note
		}
		byID[game.ID] = game
		updated++
	}

	merged = make([]models.GameRecord, 0, len(byID))
	for _, game := range byID {
		merged = append(merged, game)
	}
	sort.Slice(merged, func(i, j int) bool {
		if !merged[i].Start.Equal(merged[j].Start.Time) {
			return merged[i].Start.Before(merged[j].Start.Time)
		}
		return merged[i].ID < merged[j].ID
	})

	log.Debug().
		Int("existing", len(existing)).
		Int("batch", len(batch)).
		Int("added", added).
		Int("updated", updated).
		Msg("Schedule merged")

	return merged, added, updated
}
