package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/kimhyunseo/kbo-calendar/internal/models"
)

// PostgresConfig holds Postgres connection settings.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
}

// Postgres keeps each document as one jsonb row in a documents table,
// for deployments that want the schedule and rankings inside the
// application database instead of on disk.
type Postgres struct {
	Pool *pgxpool.Pool
}

// OpenPostgres creates the connection pool, verifies connectivity and
// ensures the documents table exists.
func OpenPostgres(ctx context.Context, cfg PostgresConfig) (*Postgres, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	poolConfig.MaxConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			name       TEXT PRIMARY KEY,
			body       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure documents table: %w", err)
	}

	log.Info().
		Str("host", cfg.Host).
		Str("database", cfg.Database).
		Msg("Successfully connected to database")

	return &Postgres{Pool: pool}, nil
}

// LoadSchedule reads the schedule document. A missing row or
// undecodable body yields an empty collection.
func (s *Postgres) LoadSchedule(ctx context.Context) ([]models.GameRecord, error) {
	body, err := s.load(ctx, scheduleDocument)
	if err != nil || body == nil {
		return nil, err
	}

	var games []models.GameRecord
	if err := json.Unmarshal(body, &games); err != nil {
		log.Warn().Err(err).Msg("Schedule document undecodable, starting from empty")
		return nil, nil
	}
	return games, nil
}

// SaveSchedule writes the full schedule collection wholesale.
func (s *Postgres) SaveSchedule(ctx context.Context, games []models.GameRecord) error {
	return s.save(ctx, scheduleDocument, games)
}

// LoadRankings reads the season-to-entries mapping. A missing row or
// undecodable body yields an empty mapping.
func (s *Postgres) LoadRankings(ctx context.Context) (map[string][]models.RankingEntry, error) {
	rankings := map[string][]models.RankingEntry{}

	body, err := s.load(ctx, rankingsDocument)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return rankings, nil
	}

	if err := json.Unmarshal(body, &rankings); err != nil {
		log.Warn().Err(err).Msg("Rankings document undecodable, starting from empty mapping")
		return map[string][]models.RankingEntry{}, nil
	}
	return rankings, nil
}

// SaveRankings writes the full rankings mapping wholesale.
func (s *Postgres) SaveRankings(ctx context.Context, rankings map[string][]models.RankingEntry) error {
	return s.save(ctx, rankingsDocument, rankings)
}

// Close closes the connection pool.
func (s *Postgres) Close() {
	if s.Pool != nil {
		s.Pool.Close()
		log.Info().Msg("Database connection pool closed")
	}
}

func (s *Postgres) load(ctx context.Context, name string) ([]byte, error) {
	var body []byte
	err := s.Pool.QueryRow(ctx,
		`SELECT body FROM documents WHERE name = $1`, name,
	).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s document: %w", name, err)
	}
	return body, nil
}

func (s *Postgres) save(ctx context.Context, name string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s document: %w", name, err)
	}

	_, err = s.Pool.Exec(ctx, `
		INSERT INTO documents (name, body)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET
			body = EXCLUDED.body,
			updated_at = NOW()
	`, name, body)
	if err != nil {
		return fmt.Errorf("failed to save %s document: %w", name, err)
	}
	return nil
}
