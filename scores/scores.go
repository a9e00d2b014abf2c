/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package scores

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Player identifies one side of a match.
type Player int

const (
	PlayerNone Player = iota
	PlayerA
	PlayerB
)

func (p Player) String() string {
	switch p {
	case PlayerA:
		return "A"
	case PlayerB:
		return "B"
	default:
		return "?"
	}
}

// Other returns the opposing side.
func (p Player) Other() Player {
	switch p {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	default:
		return PlayerNone
	}
}

// Set is the rally points each side scored in one game of a match.
type Set struct {
	A int
	B int
}

func (s Set) String() string {
	return fmt.Sprintf("%d-%d", s.A, s.B)
}

func (s Set) Flip() Set {
	return Set{A: s.B, B: s.A}
}

// Winner returns the side with more points, or PlayerNone for a level set.
func (s Set) Winner() Player {
	if s.A > s.B {
		return PlayerA
	} else if s.B > s.A {
		return PlayerB
	}
	return PlayerNone
}

// IncompleteError reports that a list of sets doesn't form a complete,
// legal match under the configured rules.
type IncompleteError struct {
	Reason string
}

func (e *IncompleteError) Error() string {
	return e.Reason
}

func incomplete(format string, args ...any) error {
	return &IncompleteError{Reason: fmt.Sprintf(format, args...)}
}

// Scores is a validated match result. The only supported mutation after
// construction is Flip.
type Scores struct {
	sets   []Set
	rules  Rules
	winner Player
	tally  [2]int
}

// New validates sets against rules and returns the resulting match. On
// failure the error is always an *IncompleteError.
func New(sets []Set, rules Rules) (*Scores, error) {
	s := &Scores{
		sets:  slices.Clone(sets),
		rules: rules.normalized(),
	}
	if err := s.verify(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Scores) verify() error {
	minGames := s.rules.minGames()
	leastGames := slices.Min(minGames)
	mostGames := slices.Max(s.rules.BestOf)
	par := s.rules.Par
	minPar := slices.Min(par)

	if len(s.sets) < leastGames {
		return incomplete("at least %d sets must be played", leastGames)
	} else if len(s.sets) > mostGames {
		return incomplete("at most %d sets can be played", mostGames)
	}

	cntA, cntB := 0, 0
	maxPar := 0
	for i, set := range s.sets {
		a, b := set.A, set.B
		if (a-b > 2 && !slices.Contains(par, a)) ||
			(a-b == 2 && a < minPar) ||
			(a-b == 1) ||
			(b-a == 1) ||
			(b-a > 2 && !slices.Contains(par, b)) ||
			(b-a == 2 && b < minPar) {

			return incomplete("%v did not reach any PAR in %v in set %d",
				set, joinInts(par), i+1)
		}

		if a > b {
			cntA++
		} else if b > a {
			cntB++
		}

		// a decisive set can only end exactly on a PAR value, which then
		// becomes the bar for every other set
		if a-b > 2 {
			maxPar = a
		} else if b-a > 2 {
			maxPar = b
		}
	}

	if cntA == cntB {
		return incomplete("no winner at %d-%d", cntA, cntB)
	}

	if cntA == 0 && !slices.Contains(minGames, cntB) {
		return incomplete("cannot lose 0-%d in best-of %v", cntB,
			joinInts(s.rules.BestOf))
	} else if cntB == 0 && !slices.Contains(minGames, cntA) {
		return incomplete("cannot win %d-0 in best-of %v", cntA,
			joinInts(s.rules.BestOf))
	}

	for i, set := range s.sets {
		a, b := set.A, set.B
		if (a > b && a < maxPar) || (b > a && b < maxPar) {
			return incomplete("%v did not reach PAR %d in set %d", set,
				maxPar, i+1)
		}
	}

	if cntA > cntB {
		s.winner = PlayerA
	} else {
		s.winner = PlayerB
	}
	s.tally = [2]int{cntA, cntB}

	return nil
}

func (s *Scores) Winner() Player {
	return s.winner
}

func (s *Scores) Rules() Rules {
	return s.rules
}

// Tally returns the number of sets won by each side.
func (s *Scores) Tally() (int, int) {
	return s.tally[0], s.tally[1]
}

// TallyString renders the set tally, e.g. "3-1".
func (s *Scores) TallyString() string {
	return fmt.Sprintf("%d-%d", s.tally[0], s.tally[1])
}

// Sets returns a copy of the sets in the order they were played.
func (s *Scores) Sets() []Set {
	return slices.Clone(s.sets)
}

func (s *Scores) Len() int {
	return len(s.sets)
}

func (s *Scores) At(i int) Set {
	return s.sets[i]
}

// All iterates over the sets in the order they were played.
func (s *Scores) All() iter.Seq2[int, Set] {
	return func(yield func(int, Set) bool) {
		for i, set := range s.sets {
			if !yield(i, set) {
				return
			}
		}
	}
}

// Equal compares only the sets, not the rules the scores were validated
// against.
func (s *Scores) Equal(other *Scores) bool {
	if s == nil || other == nil {
		return s == other
	}
	return slices.Equal(s.sets, other.sets)
}

// Flip swaps sides, for results that were entered the wrong way around.
func (s *Scores) Flip() {
	s.winner = s.winner.Other()
	for i := range s.sets {
		s.sets[i] = s.sets[i].Flip()
	}
	s.tally[0], s.tally[1] = s.tally[1], s.tally[0]
}

func (s *Scores) String() string {
	strs := make([]string, len(s.sets))
	for i, set := range s.sets {
		strs[i] = set.String()
	}
	return strings.Join(strs, " ")
}

func (s *Scores) GoString() string {
	ret := fmt.Sprintf("<Scores(%v, %v", s, s.rules)
	if s.winner != PlayerNone {
		ret = fmt.Sprintf("%v: %v won %v", ret, s.winner, s.TallyString())
	}
	return ret + ")>"
}
