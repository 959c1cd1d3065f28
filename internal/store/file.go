package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/kimhyunseo/kbo-calendar/internal/models"
)

// FileStore keeps the documents as plain JSON files in one directory,
// the layout the calendar frontend reads directly.
type FileStore struct {
	dir string
}

// OpenFile opens (creating if needed) a file-backed store rooted at dir.
func OpenFile(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	log.Info().Str("dir", dir).Msg("File store opened")
	return &FileStore{dir: dir}, nil
}

// LoadSchedule reads the schedule document. A missing or undecodable
// file yields an empty collection.
func (s *FileStore) LoadSchedule(_ context.Context) ([]models.GameRecord, error) {
	data, err := os.ReadFile(s.path(scheduleDocument))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule document: %w", err)
	}

	var games []models.GameRecord
	if err := json.Unmarshal(data, &games); err != nil {
		log.Warn().Err(err).Msg("Schedule document undecodable, starting from empty")
		return nil, nil
	}
	return games, nil
}

// SaveSchedule writes the full schedule collection wholesale.
func (s *FileStore) SaveSchedule(_ context.Context, games []models.GameRecord) error {
	return s.write(scheduleDocument, games)
}

// LoadRankings reads the season-to-entries mapping. A missing or
// undecodable file yields an empty mapping.
func (s *FileStore) LoadRankings(_ context.Context) (map[string][]models.RankingEntry, error) {
	data, err := os.ReadFile(s.path(rankingsDocument))
	if os.IsNotExist(err) {
		return map[string][]models.RankingEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read rankings document: %w", err)
	}

	rankings := map[string][]models.RankingEntry{}
	if err := json.Unmarshal(data, &rankings); err != nil {
		log.Warn().Err(err).Msg("Rankings document undecodable, starting from empty mapping")
		return map[string][]models.RankingEntry{}, nil
	}
	return rankings, nil
}

// SaveRankings writes the full rankings mapping wholesale.
func (s *FileStore) SaveRankings(_ context.Context, rankings map[string][]models.RankingEntry) error {
	return s.write(rankingsDocument, rankings)
}

// Close is a no-op for the file backend.
func (s *FileStore) Close() {}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *FileStore) write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode %s document: %w", name, err)
	}
	if err := os.WriteFile(s.path(name), append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s document: %w", name, err)
	}
	return nil
}
