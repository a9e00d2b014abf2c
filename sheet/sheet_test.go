/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package sheet

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mikeb26/squashtd/game"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var resultRows = [][]string{
	{"Men's Open draw results"},
	{},
	{"Game", "Player 1", "From 1", "Score1", "Player 2", "From 2", "Score2", "Status", "Comment", "Daytime"},
	{"M0101", "Jane", "", "1", "Kate", "", "0", "-1", "11-6 11-8 11-2", "Thu 18:00"},
	{"M0102", "Ann", "", "0", "Bea", "", "1", "-1", "6-11 11-8 9-11 8-11 well played"},
	{"", "", "", "", "", "", "", "", "", ""},
	{"M0201", "", "W M0101", "", "", "W M0102", "", "99", "", "Sat 10:00"},
}

func TestFactory_GetParser(t *testing.T) {
	factory := NewFactory()
	tests := []struct {
		name     string
		filename string
		want     string
		wantErr  bool
	}{
		{name: "csv file", filename: "results.csv", want: "csv"},
		{name: "xlsx file", filename: "Results.XLSX", want: "xlsx"},
		{name: "xls file", filename: "results.xls", want: "xlsx"},
		{name: "unsupported file", filename: "results.txt", wantErr: true},
		{name: "no extension", filename: "results", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser, err := factory.GetParser(tt.filename)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			switch tt.want {
			case "csv":
				require.IsType(t, &CSVParser{}, parser)
			case "xlsx":
				require.IsType(t, &XLSXParser{}, parser)
			}
		})
	}
}

func checkResultRecords(t *testing.T, recs []game.Record) {
	t.Helper()
	require.Len(t, recs, 3)
	require.Equal(t, game.Record{
		Name:    "M0101",
		Player1: "Jane",
		Player2: "Kate",
		Score1:  "1",
		Score2:  "0",
		Status:  "-1",
		Comment: "11-6 11-8 11-2",
		Daytime: "Thu 18:00",
	}, recs[0])
	require.Equal(t, "6-11 11-8 9-11 8-11 well played", recs[1].Comment)
	require.Equal(t, "W M0101", recs[2].From1)
	require.Equal(t, "W M0102", recs[2].From2)
	require.Empty(t, recs[2].Player1)
}

func TestCSVParser_Parse(t *testing.T) {
	var buf bytes.Buffer
	for _, row := range resultRows {
		for i, cell := range row {
			if i > 0 {
				buf.WriteString(",")
			}
			buf.WriteString(cell)
		}
		buf.WriteString("\n")
	}

	recs, err := NewCSVParser().Parse(buf.Bytes())
	require.NoError(t, err)
	checkResultRecords(t, recs)
}

func TestCSVParser_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty", data: ""},
		{name: "no header", data: "M0101,Jane,Kate\n"},
		{name: "header only", data: "Game,Player1,Player2\n"},
		{name: "bad quoting", data: "Game,Player1,Player2\n\"M0101,Jane,Kate\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCSVParser().Parse([]byte(tt.data))
			require.Error(t, err)
		})
	}
}

func TestXLSXParser_Parse(t *testing.T) {
	recs, err := NewXLSXParser().Parse(buildXLSX(t, resultRows))
	require.NoError(t, err)
	checkResultRecords(t, recs)

	_, err = NewXLSXParser().Parse(buildXLSX(t, [][]string{}))
	require.Error(t, err)

	_, err = NewXLSXParser().Parse([]byte("not a workbook"))
	require.Error(t, err)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.xlsx")
	require.NoError(t, os.WriteFile(path, buildXLSX(t, resultRows), 0o600))

	recs, err := ReadFile(path)
	require.NoError(t, err)
	checkResultRecords(t, recs)

	_, err = ReadFile(filepath.Join(dir, "missing.csv"))
	require.Error(t, err)
}

func buildXLSX(t *testing.T, rows [][]string) []byte {
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	for idx, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, idx+1)
		require.NoError(t, err)
		cells := make([]interface{}, len(row))
		for i, val := range row {
			cells[i] = val
		}
		require.NoError(t, f.SetSheetRow(sheet, axis, &cells))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())
	return buf.Bytes()
}
