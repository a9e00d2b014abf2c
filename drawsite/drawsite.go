/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package drawsite

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mikeb26/squashtd/game"
	"github.com/mikeb26/squashtd/internal"
)

// results pages change while a tournament is running, so don't keep them
// for long
const cacheMaxAge = 10 * time.Minute

type Client struct {
	httpClient *http.Client
}

// NewClient returns a client that fetches through the shared web cache.
func NewClient(ctx context.Context) *Client {
	return &Client{
		httpClient: internal.NewCachedHttpClient(ctx, internal.CacheBucket(),
			cacheMaxAge),
	}
}

// NewClientWithHTTP returns a client using hc for all requests.
func NewClientWithHTTP(hc *http.Client) *Client {
	return &Client{httpClient: hc}
}

// FetchGames fetches a draw results page and returns its games.
func (client *Client) FetchGames(ctx context.Context,
	url string) ([]game.Record, error) {

	doc, err := client.fetchDoc(ctx, url)
	if err != nil {
		return nil, err
	}

	recs := ParseGames(doc)
	if len(recs) == 0 {
		return nil, fmt.Errorf("no games found at %v", url)
	}

	return recs, nil
}

func (client *Client) fetchDoc(ctx context.Context,
	url string) (*goquery.Document, error) {

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to create results request: %w", err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := client.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch results: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected results status %d fetching %s: %s",
			resp.StatusCode, url, strings.TrimSpace(string(body)))
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

type column int

const (
	colGame column = iota
	colPlayer1
	colPlayer2
	colWinner
	colStatus
	colScores
	colTime
	numColumns
)

var headerColumns = map[string]column{
	"game":     colGame,
	"match":    colGame,
	"player 1": colPlayer1,
	"player 2": colPlayer2,
	"winner":   colWinner,
	"result":   colWinner,
	"status":   colStatus,
	"scores":   colScores,
	"score":    colScores,
	"comment":  colScores,
	"time":     colTime,
}

// ParseGames extracts games from every "table.games" on the page. Columns
// are located by their header text; rows missing the game or player
// columns are skipped.
func ParseGames(doc *goquery.Document) []game.Record {
	var recs []game.Record
	doc.Find("table.games").Each(func(_ int, table *goquery.Selection) {
		var idx [numColumns]int
		for c := range idx {
			idx[c] = -1
		}
		table.Find("thead th").Each(func(i int, th *goquery.Selection) {
			key := strings.ToLower(cellText(th))
			if c, ok := headerColumns[key]; ok && idx[c] == -1 {
				idx[c] = i
			}
		})
		if idx[colGame] < 0 || idx[colPlayer1] < 0 || idx[colPlayer2] < 0 {
			return
		}

		table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
			cells := tr.Find("td")
			get := func(c column) string {
				if idx[c] < 0 || idx[c] >= cells.Length() {
					return ""
				}
				return cellText(cells.Eq(idx[c]))
			}
			if cells.Length() <= max(idx[colGame], idx[colPlayer1],
				idx[colPlayer2]) {
				return
			}

			rec := game.Record{
				Name:    get(colGame),
				Status:  get(colStatus),
				Comment: get(colScores),
				Daytime: get(colTime),
			}
			rec.Player1, rec.From1 = playerOrReference(get(colPlayer1))
			rec.Player2, rec.From2 = playerOrReference(get(colPlayer2))
			rec.Score1, rec.Score2 = resultFromWinner(get(colWinner),
				rec.Player1, rec.Player2)
			recs = append(recs, rec)
		})
	})

	return recs
}

func cellText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}

// playerOrReference splits a player cell into a known player or a
// "W M0101"-style reference to the game they come out of.
func playerOrReference(cell string) (string, string) {
	lower := strings.ToLower(cell)
	for prefix, code := range map[string]string{
		"winner of ": "W",
		"loser of ":  "L",
	} {
		if strings.HasPrefix(lower, prefix) {
			return "", code + " " + strings.TrimSpace(cell[len(prefix):])
		}
	}
	return cell, ""
}

// resultFromWinner turns the winner column, which holds the side ("1"/"2"),
// a result ("1-0"/"0-1") or the winner's name, into per-side result flags.
func resultFromWinner(winner, player1, player2 string) (string, string) {
	switch {
	case winner == "":
		return "", ""
	case winner == "1-0":
		return "1", "0"
	case winner == "0-1":
		return "0", "1"
	case winner == "1" || (player1 != "" && strings.EqualFold(winner, player1)):
		return "1", "0"
	case winner == "2" || (player2 != "" && strings.EqualFold(winner, player2)):
		return "0", "1"
	}
	return "", ""
}
