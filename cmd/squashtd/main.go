/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/mikeb26/squashtd/drawsite"
	"github.com/mikeb26/squashtd/game"
	"github.com/mikeb26/squashtd/results"
	"github.com/mikeb26/squashtd/scores"
	"github.com/mikeb26/squashtd/sheet"
)

//go:embed help.txt
var helpText string

// cmdHandler runs a command and returns the process exit status.
type cmdHandler func(ctx context.Context, args []string, out io.Writer) int

var commands = map[string]cmdHandler{
	"help":  handleHelp,
	"check": handleCheck,
	"sheet": handleSheet,
	"draw":  handleDraw,
}

func main() {
	ctx := context.Background()

	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(1)
	}
	cmd := os.Args[1]
	handler, ok := commands[cmd]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage(os.Stderr)
		os.Exit(1)
	}
	os.Exit(handler(ctx, os.Args[2:], os.Stdout))
}

func usage(out io.Writer) {
	fmt.Fprintf(out, "%v", helpText)
}

func handleHelp(ctx context.Context, args []string, out io.Writer) int {
	usage(out)
	return 0
}

type rulesFlags struct {
	bestOf *string
	par    *string
}

func addRulesFlags(fs *flag.FlagSet) rulesFlags {
	return rulesFlags{
		bestOf: fs.String("bestof", "5", "Allowed best-of counts, comma separated"),
		par:    fs.String("par", "11,15", "Allowed PAR values, comma separated"),
	}
}

func (rf rulesFlags) rules() (scores.Rules, error) {
	return scores.ParseRules(*rf.bestOf, *rf.par)
}

func handleCheck(ctx context.Context, args []string, out io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(out)
	rf := addRulesFlags(fs)
	flip := fs.Bool("flip", false, "Show the scores from the other side")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	text := strings.Join(fs.Args(), " ")
	if text == "" {
		fmt.Fprintln(out, "Please provide the scores to check.")
		fs.Usage()
		return 1
	}
	rules, err := rf.rules()
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return 1
	}

	s, remainder, err := results.CheckScores(text, rules)
	if err != nil {
		fmt.Fprintf(out, "Invalid: %v\n", err)
		return 1
	}
	if *flip {
		s.Flip()
	}

	fmt.Fprintf(out, "Scores: %v\n", s)
	fmt.Fprintf(out, "Winner: %v (%v)\n", s.Winner(), s.TallyString())
	fmt.Fprintf(out, "Rules: %v\n", s.Rules())
	if remainder != "" {
		fmt.Fprintf(out, "Comment: %v\n", remainder)
	}
	return 0
}

type batchFlags struct {
	rulesFlags
	autoFlip *bool
}

func addBatchFlags(fs *flag.FlagSet) batchFlags {
	return batchFlags{
		rulesFlags: addRulesFlags(fs),
		autoFlip: fs.Bool("autoflip", false,
			"Flip scores recorded in the wrong order instead of failing"),
	}
}

func (bf batchFlags) options() (results.Options, error) {
	rules, err := bf.rules()
	if err != nil {
		return results.Options{}, err
	}
	return results.Options{
		Game: game.Options{
			Rules:    rules,
			AutoFlip: *bf.autoFlip,
		},
	}, nil
}

func handleSheet(ctx context.Context, args []string, out io.Writer) int {
	fs := flag.NewFlagSet("sheet", flag.ContinueOnError)
	fs.SetOutput(out)
	bf := addBatchFlags(fs)
	file := fs.String("file", "", "Results sheet (.xlsx or .csv)")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if *file == "" {
		fmt.Fprintln(out, "Please provide a results sheet with --file.")
		fs.Usage()
		return 1
	}
	opts, err := bf.options()
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return 1
	}

	recs, err := sheet.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return 1
	}

	return reportGames(ctx, recs, opts, out)
}

func handleDraw(ctx context.Context, args []string, out io.Writer) int {
	fs := flag.NewFlagSet("draw", flag.ContinueOnError)
	fs.SetOutput(out)
	bf := addBatchFlags(fs)
	url := fs.String("url", "", "Draw results page")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if *url == "" {
		fmt.Fprintln(out, "Please provide a results page with --url.")
		fs.Usage()
		return 1
	}
	opts, err := bf.options()
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return 1
	}

	recs, err := drawsite.NewClient(ctx).FetchGames(ctx, *url)
	if err != nil {
		log.Printf("squashtd.draw: %v", err)
		fmt.Fprintf(out, "Error fetching %v: %v\n", *url, err)
		return 1
	}

	return reportGames(ctx, recs, opts, out)
}

func reportGames(ctx context.Context, recs []game.Record,
	opts results.Options, out io.Writer) int {

	report, err := results.Check(ctx, recs, opts)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return 1
	}

	fmt.Fprint(out, report.Summary())
	if !report.OK() {
		return 1
	}
	return 0
}
