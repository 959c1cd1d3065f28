package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/kimhyunseo/kbo-calendar/internal/models"
)

// FetchMonthlyRawRows fetches the per-team scoreboard rows for one
// month. An empty month (no games scraped yet) returns an empty slice,
// not an error.
func (c *Client) FetchMonthlyRawRows(ctx context.Context, year, month int) ([]models.RawRow, error) {
	url := fmt.Sprintf("%s/scoreboard?year=%d&month=%d", c.feedBaseURL, year, month)
	cacheKey := fmt.Sprintf("kbo:scoreboard:%04d-%02d", year, month)

	body, err := c.get(ctx, "scoreboard", url, cacheKey)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch monthly scoreboard: %w", err)
	}

	var rows []models.RawRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scoreboard rows: %w", err)
	}

	log.Debug().Int("year", year).Int("month", month).Int("rows", len(rows)).Msg("Scoreboard rows fetched")
	return rows, nil
}

// scheduleResponse mirrors the month schedule API payload.
type scheduleResponse struct {
	Result struct {
		Games []scheduleGame `json:"games"`
	} `json:"result"`
}

type scheduleGame struct {
	GameDateTime     string `json:"gameDateTime"` // "2026-04-12T18:30:00"
	GameStatus       string `json:"gameStatus"`
	HomeTeamCode     string `json:"homeTeamCode"`
	AwayTeamCode     string `json:"awayTeamCode"`
	HomeTeamName     string `json:"homeTeamName"`
	AwayTeamName     string `json:"awayTeamName"`
	DoubleHeaderMeta int    `json:"doubleHeaderGameOrder"`
}

// FetchCoarseSchedule fetches the coarse per-game month listing used
// when the scoreboard feed has no rows for the month yet.
func (c *Client) FetchCoarseSchedule(ctx context.Context, year, month int) ([]models.CoarseRow, error) {
	url := fmt.Sprintf(
		"%s/schedule/games?fields=basic&sportId=kbaseball&startDate=%04d%02d01&endDate=%04d%02d31",
		c.scheduleBaseURL, year, month, year, month,
	)
	cacheKey := fmt.Sprintf("kbo:schedule:%04d-%02d", year, month)

	body, err := c.get(ctx, "schedule", url, cacheKey)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch month schedule: %w", err)
	}

	var payload scheduleResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal month schedule: %w", err)
	}

	rows := make([]models.CoarseRow, 0, len(payload.Result.Games))
	for _, game := range payload.Result.Games {
		rows = append(rows, models.CoarseRow{
			Status:       game.GameStatus,
			Date:         compactDate(game.GameDateTime),
			Home:         teamName(game.HomeTeamName, game.HomeTeamCode),
			Away:         teamName(game.AwayTeamName, game.AwayTeamCode),
			Doubleheader: game.DoubleHeaderMeta,
		})
	}

	log.Debug().Int("year", year).Int("month", month).Int("games", len(rows)).Msg("Month schedule fetched")
	return rows, nil
}

// compactDate reduces "2026-04-12T18:30:00" to "20260412".
func compactDate(dateTime string) string {
	datePart, _, _ := strings.Cut(dateTime, "T")
	return strings.ReplaceAll(datePart, "-", "")
}

// teamName prefers the display name, falling back to the short code;
// either form resolves through the team alias table downstream.
func teamName(name, code string) string {
	if strings.TrimSpace(name) != "" {
		return name
	}
	return code
}
