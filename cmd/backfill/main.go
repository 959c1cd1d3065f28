// Command backfill rebuilds a whole season's schedule month by month,
// then refreshes the season's standings snapshot. Month failures are
// logged and skipped so one bad window cannot abort the run.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kimhyunseo/kbo-calendar/internal/cache"
	"github.com/kimhyunseo/kbo-calendar/internal/client"
	"github.com/kimhyunseo/kbo-calendar/internal/config"
	"github.com/kimhyunseo/kbo-calendar/internal/store"
	syncsvc "github.com/kimhyunseo/kbo-calendar/internal/sync"
)

// The regular season plus postseason spans March through November.
const (
	firstSeasonMonth = 3
	lastSeasonMonth  = 11
)

func main() {
	setupLogger()

	cfg := config.MustLoad()

	year := flag.Int("year", time.Now().Year(), "season year to backfill")
	note := flag.String("note", os.Getenv("SYNC_NOTE"), "annotation appended to each game note")
	flag.Parse()

	ctx := context.Background()

	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open document store")
	}
	defer st.Close()

	var feedCache *cache.RedisCache
	if cfg.CacheEnabled() {
		feedCache, err = cache.NewRedisCache(cache.Config{
			Host:     cfg.RedisHost,
			Port:     strconv.Itoa(cfg.RedisPort),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("Failed to connect to Redis - continuing without cache")
			feedCache = nil
		} else {
			defer feedCache.Close()
		}
	}

	feed := client.New(
		cfg.FeedBaseURL,
		cfg.ScheduleBaseURL,
		cfg.RankingURL,
		cfg.FeedTimeout,
		feedCache,
		cfg.CacheTTLDuration(),
	)
	svc := syncsvc.New(feed, st, syncsvc.PolicyFromName(cfg.MergePolicy))

	log.Info().Int("year", *year).Msg("Starting season backfill")

	totalNew, totalUpdated, failed := 0, 0, 0
	for month := firstSeasonMonth; month <= lastSeasonMonth; month++ {
		res, err := svc.SyncMonth(ctx, *year, month, *note)
		if err != nil {
			log.Error().Err(err).
				Int("year", *year).
				Int("month", month).
				Msg("Month backfill failed, continuing")
			failed++
			continue
		}
		totalNew += res.New
		totalUpdated += res.Updated
	}

	season := strconv.Itoa(*year)
	standings, err := svc.SyncStandings(ctx, season)
	if err != nil {
		log.Error().Err(err).Str("season", season).Msg("Standings backfill failed")
	}

	fmt.Printf("season %d: %d new, %d updated, %d month(s) failed\n",
		*year, totalNew, totalUpdated, failed)
	if err == nil && !standings.Skipped {
		fmt.Printf("standings %s: %d entries written\n", season, standings.Entries)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case "postgres":
		return store.OpenPostgres(ctx, store.PostgresConfig{
			Host:     cfg.DatabaseHost,
			Port:     strconv.Itoa(cfg.DatabasePort),
			User:     cfg.DatabaseUser,
			Password: cfg.DatabasePassword,
			Database: cfg.DatabaseName,
			SSLMode:  cfg.DatabaseSSLMode,
		})
	default:
		return store.OpenFile(cfg.DataDir)
	}
}

func setupLogger() {
	if os.Getenv("APP_ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	level := zerolog.InfoLevel
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		parsedLevel, err := zerolog.ParseLevel(lvl)
		if err == nil {
			level = parsedLevel
		}
	}
	zerolog.SetGlobalLevel(level)
}
