package client

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/kimhyunseo/kbo-calendar/internal/models"
)

// rankingColumns maps the ranking table's localized headers onto
// RankingRow fields.
var rankingColumns = map[string]func(*models.RankingRow, string){
	"순위":  func(r *models.RankingRow, v string) { r.Rank = v },
	"팀명":  func(r *models.RankingRow, v string) { r.Team = v },
	"경기":  func(r *models.RankingRow, v string) { r.Games = v },
	"승":   func(r *models.RankingRow, v string) { r.Wins = v },
	"무":   func(r *models.RankingRow, v string) { r.Draws = v },
	"패":   func(r *models.RankingRow, v string) { r.Losses = v },
	"승률":  func(r *models.RankingRow, v string) { r.WinRate = v },
	"게임차": func(r *models.RankingRow, v string) { r.GamesBehind = v },
	"연속":  func(r *models.RankingRow, v string) { r.Streak = v },
}

// FetchRankingTable fetches the daily team ranking page and extracts
// the first standings table into raw rows. Columns beyond the known
// headers (recent-ten record, home/away splits) are ignored.
func (c *Client) FetchRankingTable(ctx context.Context) ([]models.RankingRow, error) {
	body, err := c.get(ctx, "ranking", c.rankingURL, "kbo:ranking")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ranking page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ranking page: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("no ranking table found in page")
	}

	var headers []string
	table.Find("thead th").Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, strings.TrimSpace(th.Text()))
	})
	if len(headers) == 0 {
		// Some renderings put the header cells in the first body row.
		table.Find("tr").First().Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			headers = append(headers, strings.TrimSpace(cell.Text()))
		})
	}

	var rows []models.RankingRow
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		var row models.RankingRow
		matched := 0
		tr.Find("td").Each(func(i int, td *goquery.Selection) {
			if i >= len(headers) {
				return
			}
			if assign, ok := rankingColumns[headers[i]]; ok {
				assign(&row, strings.TrimSpace(td.Text()))
				matched++
			}
		})
		if matched > 0 {
			rows = append(rows, row)
		}
	})

	log.Debug().Int("rows", len(rows)).Msg("Ranking table extracted")
	return rows, nil
}
