// Command worker syncs the KBO schedule and standings documents from
// the public stats feeds. By default it runs one sync for the given
// (or current) month and exits; with ENABLE_SCHEDULER=true it stays up
// and refreshes nightly.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kimhyunseo/kbo-calendar/internal/cache"
	"github.com/kimhyunseo/kbo-calendar/internal/client"
	"github.com/kimhyunseo/kbo-calendar/internal/config"
	"github.com/kimhyunseo/kbo-calendar/internal/scheduler"
	"github.com/kimhyunseo/kbo-calendar/internal/store"
	syncsvc "github.com/kimhyunseo/kbo-calendar/internal/sync"
)

func main() {
	setupLogger()

	log.Info().Msg("Starting KBO Calendar Sync Worker")

	cfg := config.MustLoad()
	log.Info().
		Str("env", cfg.AppEnv).
		Str("backend", cfg.StoreBackend).
		Str("policy", cfg.MergePolicy).
		Msg("Configuration loaded")

	now := time.Now()
	year := flag.Int("year", envIntOr("SYNC_YEAR", now.Year()), "season year to sync")
	month := flag.Int("month", envIntOr("SYNC_MONTH", int(now.Month())), "month to sync (1-12)")
	note := flag.String("note", os.Getenv("SYNC_NOTE"), "annotation appended to each game note")
	skipStandings := flag.Bool("skip-standings", false, "sync only the schedule document")
	flag.Parse()

	if *month < 1 || *month > 12 {
		log.Fatal().Int("month", *month).Msg("Month must be between 1 and 12")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info().Msg("Received shutdown signal, gracefully shutting down...")
		cancel()
	}()

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
	log.Info().Msg("Feed client initialized")

	svc := syncsvc.New(feed, st, syncsvc.PolicyFromName(cfg.MergePolicy))

	if cfg.EnableMetrics {
		go startMetricsServer(cfg.MetricsPort)
	}

	if cfg.EnableScheduler {
		runDaemon(ctx, cfg, svc, *note)
		return
	}

	runOnce(ctx, svc, *year, *month, *note, *skipStandings)
}

// runOnce performs a single sync pass and exits.
func runOnce(ctx context.Context, svc *syncsvc.Service, year, month int, note string, skipStandings bool) {
	res, err := svc.SyncMonth(ctx, year, month, note)
	if err != nil {
		log.Fatal().Err(err).Int("year", year).Int("month", month).Msg("Schedule sync failed")
	}
	if res.Skipped {
		fmt.Printf("%04d-%02d: no games found, schedule untouched\n", year, month)
	} else {
		fmt.Printf("%04d-%02d: %d new, %d updated (%d games total)\n",
			year, month, res.New, res.Updated, res.Total)
	}

	if skipStandings {
		return
	}

	season := strconv.Itoa(year)
	standings, err := svc.SyncStandings(ctx, season)
	if err != nil {
		log.Fatal().Err(err).Str("season", season).Msg("Standings sync failed")
	}
	switch {
	case standings.Skipped:
		fmt.Printf("standings %s: empty table, rankings untouched\n", season)
	case standings.Reset:
		fmt.Printf("standings %s: stale full-season table, reset to placeholders\n", season)
	default:
		fmt.Printf("standings %s: %d entries written\n", season, standings.Entries)
	}
}

// runDaemon starts the nightly refresh loop and blocks until shutdown.
func runDaemon(ctx context.Context, cfg *config.Config, svc *syncsvc.Service, note string) {
	sched := scheduler.New(cfg, svc, note)
	if err := sched.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to start scheduler")
	}

	<-ctx.Done()

	log.Info().Msg("Shutting down scheduler...")
	sched.Stop()
	log.Info().Msg("Worker shutdown complete")
}

// openStore opens the configured document store backend.
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

// setupLogger configures the zerolog logger
func setupLogger() {
	// Pretty console logging in development
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

// startMetricsServer starts the Prometheus metrics endpoint.
func startMetricsServer(port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", port)
	log.Info().Str("addr", addr).Msg("Metrics server listening")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Msg("Metrics server failed")
	}
}

// envIntOr reads an integer environment variable with a fallback.
func envIntOr(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Warn().Str("var", key).Str("value", raw).Msg("Ignoring non-numeric environment value")
		return fallback
	}
	return n
}
