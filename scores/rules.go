/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package scores

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const (
	DefaultBestOf = 5
)

var defaultPar = []int{11, 15}

// Rules holds the candidate best-of counts and PAR values a match may have
// been played under. Historical data often doesn't say which applied, so
// the validator accepts any candidate consistent with the sets.
type Rules struct {
	BestOf []int
	Par    []int
}

// DefaultRules returns best-of 5 with PAR 11 or 15.
func DefaultRules() Rules {
	return Rules{
		BestOf: []int{DefaultBestOf},
		Par:    slices.Clone(defaultPar),
	}
}

// NewRules returns normalized rules: non-positive values are dropped,
// duplicates removed, candidates sorted, and an empty list replaced by its
// default.
func NewRules(bestOf []int, par []int) Rules {
	r := Rules{
		BestOf: normalizeCandidates(bestOf),
		Par:    normalizeCandidates(par),
	}
	if len(r.BestOf) == 0 {
		r.BestOf = []int{DefaultBestOf}
	}
	if len(r.Par) == 0 {
		r.Par = slices.Clone(defaultPar)
	}

	return r
}

// BestOf returns the default rules restricted to a single best-of count.
func BestOf(n int) Rules {
	return DefaultRules().WithBestOf(n)
}

// Par returns the default rules restricted to a single PAR value.
func Par(n int) Rules {
	return DefaultRules().WithPar(n)
}

func (r Rules) WithBestOf(vals ...int) Rules {
	return NewRules(vals, r.Par)
}

func (r Rules) WithPar(vals ...int) Rules {
	return NewRules(r.BestOf, vals)
}

func (r Rules) String() string {
	return fmt.Sprintf("best-of=%v, par=%v", joinInts(r.BestOf),
		joinInts(r.Par))
}

// ParseRules builds rules from comma separated lists such as "3,5" and
// "11,15"; an empty string selects the default for that field.
func ParseRules(bestOf string, par string) (Rules, error) {
	b, err := parseInts(bestOf)
	if err != nil {
		return Rules{}, fmt.Errorf("invalid best-of %q: %w", bestOf, err)
	}
	p, err := parseInts(par)
	if err != nil {
		return Rules{}, fmt.Errorf("invalid par %q: %w", par, err)
	}

	return NewRules(b, p), nil
}

// minGames returns the number of set wins that clinches each best-of
// candidate, e.g. 3 for best-of 5.
func (r Rules) minGames() []int {
	ret := make([]int, len(r.BestOf))
	for i, cnt := range r.BestOf {
		ret[i] = cnt/2 + 1
	}
	return ret
}

func (r Rules) normalized() Rules {
	return NewRules(r.BestOf, r.Par)
}

func normalizeCandidates(vals []int) []int {
	var ret []int
	for _, v := range vals {
		if v > 0 {
			ret = append(ret, v)
		}
	}
	slices.Sort(ret)
	return slices.Compact(ret)
}

func parseInts(s string) ([]int, error) {
	var ret []int
	for _, f := range strings.FieldsFunc(s, isSetDelim) {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		ret = append(ret, v)
	}
	return ret, nil
}

func joinInts(vals []int) string {
	strs := make([]string, len(vals))
	for i, v := range vals {
		strs[i] = strconv.Itoa(v)
	}
	return strings.Join(strs, ",")
}
