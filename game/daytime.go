/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package game

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mikeb26/squashtd/internal"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/en"
)

var reWeekdayTime = regexp.MustCompile(`(?i)^(mon|tue|wed|thu|fri|sat|sun)[a-z]*\.?\s+(.+)$`)

var weekdays = map[string]time.Weekday{
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
	"sun": time.Sunday,
}

var clockLayouts = []string{"15:04", "3:04pm", "3:04 pm", "3pm", "3 pm"}

var clockParser = newClockParser()

func newClockParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	return w
}

// parseDaytime turns a game time into an absolute time. Draw sheets only
// carry a weekday and a clock time ("Thu 7:30pm"), so those are resolved
// against the first matching weekday on or after start. Anything else is a
// full date and handed to dateparse.
func parseDaytime(s string, start time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	m := reWeekdayTime.FindStringSubmatch(s)
	if m == nil {
		return internal.ParseDateOrZero(s)
	}

	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0,
		start.Location())
	want := weekdays[strings.ToLower(m[1])]
	for day.Weekday() != want {
		day = day.AddDate(0, 0, 1)
	}

	clock, err := parseClock(m[2], day)
	if err != nil {
		return time.Time{}, err
	}

	return day.Add(time.Duration(clock.Hour())*time.Hour +
		time.Duration(clock.Minute())*time.Minute), nil
}

// parseClock reads a time of day. when handles the free-form spellings;
// the fixed layouts catch the terse ones it skips.
func parseClock(s string, day time.Time) (time.Time, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	r, err := clockParser.Parse(s, day)
	if err == nil && r != nil && strings.TrimSpace(r.Text) == s {
		return r.Time, nil
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time of day %q", s)
}

// nextMonday returns midnight of the coming Monday, or of today when today
// is a Monday. Using a fixed anchor means "Thu 7:30pm" resolves to the same
// date whether the draw is read on a Thursday or a Friday.
func nextMonday(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0,
		now.Location())
	for day.Weekday() != time.Monday {
		day = day.AddDate(0, 0, 1)
	}
	return day
}
