/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package game

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mikeb26/squashtd/internal"
	"github.com/mikeb26/squashtd/scores"
)

var (
	ErrInvalidStatus      = errors.New("invalid game status")
	ErrInconsistentResult = errors.New("inconsistent game result")
)

// ReadError reports that the scores recorded for a game could not be
// validated. The underlying *scores.IncompleteError is available through
// errors.As.
type ReadError struct {
	Game string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("while reading scores for game %v: %v", e.Game, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// DefaultDrawNamePattern extracts the draw from a game name, e.g. "W0" from
// "W0101".
var DefaultDrawNamePattern = regexp.MustCompile(`^\w\d`)

// Record is one game as a producer (spreadsheet row, web page row) hands it
// over, before any interpretation.
type Record struct {
	Name    string
	Player1 string
	Player2 string
	From1   string
	From2   string
	Score1  string
	Score2  string
	Status  string
	Comment string
	Daytime string
}

type Options struct {
	// Rules are used to validate scores found in the comment.
	Rules scores.Rules

	// AutoFlip flips scores that disagree with the recorded result instead
	// of rejecting the game, adding a warning to Warnings.
	AutoFlip bool
	Warnings *internal.Warnings

	DrawNamePattern *regexp.Regexp

	// Start anchors weekday-only game times; the coming Monday when zero.
	Start time.Time
}

// Reference stands in for a player who is not yet known because they
// come out of another game.
type Reference struct {
	Winner bool
	From   string
}

// ParseReference parses references such as "W M0101" (winner of M0101)
// and "L M0101" (loser of M0101).
func ParseReference(s string) (Reference, bool) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Reference{}, false
	}
	switch strings.ToUpper(fields[0]) {
	case "W":
		return Reference{Winner: true, From: fields[1]}, true
	case "L":
		return Reference{Winner: false, From: fields[1]}, true
	}
	return Reference{}, false
}

func (r Reference) IsZero() bool {
	return r.From == ""
}

func (r Reference) String() string {
	if r.IsZero() {
		return ""
	}
	if r.Winner {
		return "Winner of " + r.From
	}
	return "Loser of " + r.From
}

type Game struct {
	Name    string
	Draw    string
	Players [2]string
	From    [2]Reference
	Result  [2]bool
	Status  Status
	Comment string
	Scores  *scores.Scores
	When    time.Time
}

// New interprets rec. Finished games must name both players and exactly
// one winner; any scores at the front of the comment are validated against
// that result.
func New(rec Record, opts Options) (*Game, error) {
	pat := opts.DrawNamePattern
	if pat == nil {
		pat = DefaultDrawNamePattern
	}

	g := &Game{
		Name:    strings.TrimSpace(rec.Name),
		Players: [2]string{strings.TrimSpace(rec.Player1), strings.TrimSpace(rec.Player2)},
		Comment: strings.TrimSpace(rec.Comment),
	}
	g.Draw = pat.FindString(g.Name)

	froms := [2]string{rec.From1, rec.From2}
	for i := range g.Players {
		if g.Players[i] == "" {
			g.From[i], _ = ParseReference(froms[i])
		}
	}

	var err error
	g.Status, err = ParseStatus(rec.Status)
	if err != nil {
		return nil, fmt.Errorf("game %v: %w", g.Name, err)
	}
	if g.Result[0], err = parseResult(rec.Score1); err != nil {
		return nil, fmt.Errorf("game %v: %w", g.Name, err)
	}
	if g.Result[1], err = parseResult(rec.Score2); err != nil {
		return nil, fmt.Errorf("game %v: %w", g.Name, err)
	}

	if g.Status.IsOver() {
		if err := g.readResult(opts); err != nil {
			return nil, err
		}
	}

	if rec.Daytime != "" {
		start := opts.Start
		if start.IsZero() {
			start = nextMonday(time.Now())
		}
		g.When, err = parseDaytime(rec.Daytime, start)
		if err != nil {
			return nil, fmt.Errorf("game %v: unable to parse time %q: %w",
				g.Name, rec.Daytime, err)
		}
	}

	return g, nil
}

func (g *Game) readResult(opts Options) error {
	if !g.IsPlayerKnown(scores.PlayerA) || !g.IsPlayerKnown(scores.PlayerB) {
		return fmt.Errorf("game %v is missing a player: %w", g.Name,
			ErrInvalidStatus)
	}

	if g.Result[0] == g.Result[1] {
		// a bye hands the game to the other side without play
		if strings.EqualFold(g.Players[0], "bye") {
			g.Result = [2]bool{false, true}
			g.Status = StatusNotPlayed
		} else if strings.EqualFold(g.Players[1], "bye") {
			g.Result = [2]bool{true, false}
			g.Status = StatusNotPlayed
		} else {
			return fmt.Errorf("game %v needs exactly one winner: %w", g.Name,
				ErrInconsistentResult)
		}
	}

	s, remainder, err := scores.FromString(g.Comment, opts.Rules)
	if err != nil {
		return &ReadError{Game: g.Name, Err: err}
	}
	if s == nil {
		return nil
	}
	g.Comment = remainder

	if s.Winner() != g.Winner() {
		if !opts.AutoFlip {
			return fmt.Errorf("game %v: scores don't match result %v: %v: %w",
				g.Name, g.ResultString(), s, ErrInconsistentResult)
		}
		opts.Warnings.Add(fmt.Sprintf("Reading game %v", g.Name),
			"Scores recorded in wrong order: %v", s)
		s.Flip()
	}
	g.Scores = s

	return nil
}

func parseResult(s string) (bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return false, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return false, fmt.Errorf("invalid result %q: %w", s,
			ErrInconsistentResult)
	}
	return v != 0, nil
}

// Winner returns the side the recorded result names as the winner.
func (g *Game) Winner() scores.Player {
	if g.Result[0] && !g.Result[1] {
		return scores.PlayerA
	} else if g.Result[1] && !g.Result[0] {
		return scores.PlayerB
	}
	return scores.PlayerNone
}

// ResultString renders the recorded result, e.g. "1-0".
func (g *Game) ResultString() string {
	r := func(b bool) int {
		if b {
			return 1
		}
		return 0
	}
	return fmt.Sprintf("%d-%d", r(g.Result[0]), r(g.Result[1]))
}

func (g *Game) IsPlayed() bool {
	return g.Status.IsOver()
}

func (g *Game) IsScheduled() bool {
	return !g.Status.IsOver() && !g.When.IsZero()
}

// IsPlayerKnown reports whether side p is a named player rather than a
// reference to an earlier game.
func (g *Game) IsPlayerKnown(p scores.Player) bool {
	switch p {
	case scores.PlayerA:
		return g.Players[0] != ""
	case scores.PlayerB:
		return g.Players[1] != ""
	}
	return false
}

// PlayerName returns the player on side p, or the game they come from.
func (g *Game) PlayerName(p scores.Player) string {
	i := 0
	if p == scores.PlayerB {
		i = 1
	}
	if g.Players[i] != "" {
		return g.Players[i]
	}
	return g.From[i].String()
}

func (g *Game) String() string {
	return g.Name
}

func (g *Game) GoString() string {
	s := "<Game(" + g.Name
	if g.IsScheduled() {
		s += " on " + g.When.Format("Mon 15:04")
	}
	s = fmt.Sprintf("%v, %v: %v & %v", s, g.Status,
		g.PlayerName(scores.PlayerA), g.PlayerName(scores.PlayerB))
	if g.IsPlayed() && g.Scores != nil {
		s = fmt.Sprintf("%v: %v", s, g.Scores)
	}
	return s + ")>"
}

// Less orders scheduled games by time, unscheduled games last, and breaks
// ties by reverse name: the better games in a round usually have the lower
// number (M0301 is the final, M0304 the plate) and are played later.
func Less(a, b *Game) bool {
	if !a.When.Equal(b.When) {
		if a.When.IsZero() {
			return false
		}
		if b.When.IsZero() {
			return true
		}
		return a.When.Before(b.When)
	}
	return b.Name < a.Name
}

func SortGames(games []*Game) {
	sort.SliceStable(games, func(i, j int) bool {
		return Less(games[i], games[j])
	})
}
