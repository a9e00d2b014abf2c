/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testSheet = `game,player1,player2,score1,score2,status,comment
M0101,Jane,Kate,1,0,played,11-6 11-8 11-2
M0102,Ann,Bea,0,1,played,11-4 11-5 11-6
M0201,,,,,scheduled,
`

func writeSheet(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "results.csv")
	if err := os.WriteFile(path, []byte(testSheet), 0o644); err != nil {
		t.Fatalf("failed to write sheet: %v", err)
	}
	return path
}

func TestHandleCheck(t *testing.T) {
	cases := []struct {
		name     string
		args     []string
		wantCode int
		want     []string
	}{
		{"valid", []string{"11-6", "6-11", "11-8", "11-4", "well played"}, 0,
			[]string{"Scores: 11-6 6-11 11-8 11-4", "Winner: A (3-1)",
				"Comment: well played"}},
		{"flipped", []string{"--flip", "11-6 6-11 11-8 11-4"}, 0,
			[]string{"Scores: 6-11 11-6 8-11 4-11", "Winner: B (1-3)"}},
		{"best of three", []string{"--bestof", "3", "--par", "15", "15-13 15-3"}, 0,
			[]string{"Winner: A (2-0)", "Rules: best-of=3, par=15"}},
		{"invalid", []string{"11-0 11-0"}, 1,
			[]string{"Invalid: at least 3 sets must be played"}},
		{"no scores", nil, 1, []string{"Please provide the scores"}},
		{"bad rules", []string{"--par", "eleven", "11-0 11-0 11-0"}, 1,
			[]string{"Error: invalid par"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var out bytes.Buffer
			code := handleCheck(context.Background(), c.args, &out)
			if code != c.wantCode {
				t.Errorf("exit code = %d; want %d\n%v", code, c.wantCode,
					out.String())
			}
			for _, w := range c.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("output missing %q:\n%v", w, out.String())
				}
			}
		})
	}
}

func TestHandleSheet(t *testing.T) {
	path := writeSheet(t)

	var out bytes.Buffer
	if code := handleSheet(context.Background(), []string{"--file", path},
		&out); code != 1 {
		t.Errorf("exit code = %d; want 1 for scores in the wrong order", code)
	}
	if !strings.Contains(out.String(), "ERROR: M0102") {
		t.Errorf("output missing M0102 problem:\n%v", out.String())
	}

	out.Reset()
	if code := handleSheet(context.Background(),
		[]string{"--autoflip", "--file", path}, &out); code != 0 {
		t.Errorf("exit code = %d; want 0 with --autoflip\n%v", code,
			out.String())
	}
	for _, w := range []string{
		"Jane beat Kate 3-0 (11-6 11-8 11-2)",
		"Bea beat Ann 0-3 (4-11 5-11 6-11)",
		"3 games, 2 played, 1 warnings, 0 problems",
		"WARNING: Reading game M0102: Scores recorded in wrong order",
	} {
		if !strings.Contains(out.String(), w) {
			t.Errorf("output missing %q:\n%v", w, out.String())
		}
	}
}

func TestHandleSheetErrors(t *testing.T) {
	var out bytes.Buffer
	if code := handleSheet(context.Background(), nil, &out); code != 1 {
		t.Errorf("exit code = %d without --file", code)
	}
	out.Reset()
	missing := filepath.Join(t.TempDir(), "missing.csv")
	if code := handleSheet(context.Background(), []string{"--file", missing},
		&out); code != 1 || !strings.Contains(out.String(), "Error:") {
		t.Errorf("exit code = %d, output %q for a missing file", code,
			out.String())
	}
}

func TestCommands(t *testing.T) {
	for _, name := range []string{"help", "check", "sheet", "draw"} {
		if _, ok := commands[name]; !ok {
			t.Errorf("command %q is not registered", name)
		}
	}
	var out bytes.Buffer
	if code := handleHelp(context.Background(), nil, &out); code != 0 ||
		!strings.Contains(out.String(), "Usage: squashtd") {
		t.Errorf("help = %d, %q", code, out.String())
	}
	out.Reset()
	if code := handleDraw(context.Background(), nil, &out); code != 1 {
		t.Errorf("draw without --url exit code = %d", code)
	}
}
