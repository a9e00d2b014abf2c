/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package sheet

import (
	"fmt"
	"strings"

	"github.com/mikeb26/squashtd/game"
)

type column int

const (
	colName column = iota
	colPlayer1
	colPlayer2
	colFrom1
	colFrom2
	colScore1
	colScore2
	colStatus
	colComment
	colDaytime
	numColumns
)

var columnAliases = map[string]column{
	"game":     colName,
	"name":     colName,
	"match":    colName,
	"player1":  colPlayer1,
	"player 1": colPlayer1,
	"player a": colPlayer1,
	"player2":  colPlayer2,
	"player 2": colPlayer2,
	"player b": colPlayer2,
	"from1":    colFrom1,
	"from 1":   colFrom1,
	"from2":    colFrom2,
	"from 2":   colFrom2,
	"score1":   colScore1,
	"score 1":  colScore1,
	"score2":   colScore2,
	"score 2":  colScore2,
	"status":   colStatus,
	"comment":  colComment,
	"scores":   colComment,
	"result":   colComment,
	"daytime":  colDaytime,
	"time":     colDaytime,
	"when":     colDaytime,
}

// layout maps record fields to column indexes; -1 means absent.
type layout [numColumns]int

// findLayout returns the index of the header row and its column layout.
// The header is the first row naming at least the game and both players.
func findLayout(rows [][]string) (int, layout, error) {
	for i, row := range rows {
		var l layout
		for c := range l {
			l[c] = -1
		}
		for idx, cell := range row {
			key := strings.ToLower(strings.Join(strings.Fields(cell), " "))
			if c, ok := columnAliases[key]; ok && l[c] == -1 {
				l[c] = idx
			}
		}
		if l[colName] >= 0 && l[colPlayer1] >= 0 && l[colPlayer2] >= 0 {
			return i, l, nil
		}
	}

	return -1, layout{}, fmt.Errorf("no header row naming game, player1 and player2")
}

func (l layout) record(row []string) game.Record {
	get := func(c column) string {
		idx := l[c]
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	return game.Record{
		Name:    get(colName),
		Player1: get(colPlayer1),
		Player2: get(colPlayer2),
		From1:   get(colFrom1),
		From2:   get(colFrom2),
		Score1:  get(colScore1),
		Score2:  get(colScore2),
		Status:  get(colStatus),
		Comment: get(colComment),
		Daytime: get(colDaytime),
	}
}

// recordsFromRows converts the rows following the header into records,
// skipping blank rows and rows without a game name.
func recordsFromRows(rows [][]string) ([]game.Record, error) {
	headerIdx, l, err := findLayout(rows)
	if err != nil {
		return nil, err
	}

	var recs []game.Record
	for _, row := range rows[headerIdx+1:] {
		rec := l.record(row)
		if rec.Name == "" {
			continue
		}
		recs = append(recs, rec)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("no games found")
	}

	return recs, nil
}
