/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package results

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/squashtd/game"
	"github.com/mikeb26/squashtd/internal"
	"github.com/mikeb26/squashtd/scores"
)

const DefaultConcurrency = 8

type Options struct {
	Game        game.Options
	Concurrency int
}

// Problem is a record that could not be turned into a valid game.
type Problem struct {
	Index int
	Name  string
	Err   error
}

func (p Problem) String() string {
	return fmt.Sprintf("%v: %v", p.Name, p.Err)
}

// Report is the outcome of checking a batch of records. Games holds one
// entry per input record, nil where the record had a problem.
type Report struct {
	Games    []*game.Game
	Problems []Problem
	Warnings []internal.Warning
}

// OK reports whether every record produced a valid game.
func (r *Report) OK() bool {
	return len(r.Problems) == 0
}

// Check validates every record. A bad record never stops the batch; it is
// reported as a Problem and the remaining records are still checked. Check
// only returns early if ctx is cancelled.
func Check(ctx context.Context, recs []game.Record, opts Options) (*Report,
	error) {

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	gameOpts := opts.Game
	if gameOpts.Warnings == nil {
		gameOpts.Warnings = &internal.Warnings{}
	}

	games := make([]*game.Game, len(recs))
	errs := make([]error, len(recs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, rec := range recs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			games[i], errs[i] = game.New(rec, gameOpts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		Games:    games,
		Warnings: gameOpts.Warnings.List(),
	}
	for i, err := range errs {
		if err != nil {
			report.Problems = append(report.Problems, Problem{
				Index: i,
				Name:  recs[i].Name,
				Err:   err,
			})
		}
	}

	return report, nil
}

// Summary renders the report for a human operator: one line per played
// game in playing order, followed by warnings and problems.
func (r *Report) Summary() string {
	var played []*game.Game
	for _, g := range r.Games {
		if g != nil && g.IsPlayed() {
			played = append(played, g)
		}
	}
	game.SortGames(played)

	var sb strings.Builder
	for _, g := range played {
		sb.WriteString(fmt.Sprintf("%-8v %v beat %v", g.Name,
			g.PlayerName(g.Winner()), g.PlayerName(g.Winner().Other())))
		if g.Scores != nil {
			sb.WriteString(fmt.Sprintf(" %v (%v)", g.Scores.TallyString(),
				g.Scores))
		}
		if g.Comment != "" {
			sb.WriteString(fmt.Sprintf(" [%v]", g.Comment))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("\n%d games, %d played, %d warnings, %d problems\n",
		len(r.Games), len(played), len(r.Warnings), len(r.Problems)))
	for _, w := range r.Warnings {
		sb.WriteString(fmt.Sprintf("WARNING: %v\n", w))
	}
	for _, p := range r.Problems {
		sb.WriteString(fmt.Sprintf("ERROR: %v\n", p))
	}

	return sb.String()
}

// CheckScores parses and validates a single free-text score.
func CheckScores(text string, rules scores.Rules) (*scores.Scores, string,
	error) {

	s, remainder, err := scores.FromString(text, rules)
	if err != nil {
		return nil, remainder, err
	}
	if s == nil {
		return nil, remainder, fmt.Errorf("no scores found in %q", text)
	}
	return s, remainder, nil
}
