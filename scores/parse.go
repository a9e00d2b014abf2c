/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package scores

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	reGameDelimSpace = regexp.MustCompile(`\s*([-/:])\s*`)
	reGameDelim      = regexp.MustCompile(`[-/:]+`)
)

func isSetDelim(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

// Parse extracts the leading sets from free text such as
// "11-6, 6-11 11/8 keen contest". Parsing stops at the first token that
// isn't a set; that token and everything after it is returned as the
// remainder, joined with single spaces. If no sets are found, Parse
// returns nil and text unchanged.
func Parse(text string) ([]Set, string) {
	norm := reGameDelimSpace.ReplaceAllString(text, "$1")
	tokens := strings.FieldsFunc(norm, isSetDelim)

	var sets []Set
	i := 0
	for ; i < len(tokens); i++ {
		set, ok := parseSet(tokens[i])
		if !ok {
			break
		}
		sets = append(sets, set)
	}

	if len(sets) == 0 {
		return nil, text
	}

	return sets, strings.Join(tokens[i:], " ")
}

func parseSet(token string) (Set, bool) {
	parts := reGameDelim.Split(token, 2)
	if len(parts) != 2 {
		return Set{}, false
	}
	a, err := strconv.Atoi(parts[0])
	if err != nil || a < 0 {
		return Set{}, false
	}
	b, err := strconv.Atoi(parts[1])
	if err != nil || b < 0 {
		return Set{}, false
	}

	return Set{A: a, B: b}, true
}

// FromString parses text and validates any sets found against rules. When
// text holds no sets, both the scores and the error are nil and the
// remainder is text itself.
func FromString(text string, rules Rules) (*Scores, string, error) {
	sets, remainder := Parse(text)
	if sets == nil {
		return nil, remainder, nil
	}

	s, err := New(sets, rules)
	if err != nil {
		return nil, remainder, err
	}

	return s, remainder, nil
}
