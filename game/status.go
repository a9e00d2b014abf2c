/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Status is the state of a game as exported by the tournament system.
// Values up to StatusJustFinished mean the game is over; small positive
// values count down towards the game going on court.
type Status int

const (
	StatusNotPlayed    Status = -2
	StatusPlayed       Status = -1
	StatusJustFinished Status = 0
	StatusOn           Status = 1
	StatusNext         Status = 2
	StatusSoon         Status = 3
	StatusScheduled    Status = 99
	StatusUnknown      Status = 100
	StatusInvalid      Status = 101
)

var statusNames = map[Status]string{
	StatusNotPlayed:    "notplayed",
	StatusPlayed:       "played",
	StatusJustFinished: "justfinished",
	StatusOn:           "on",
	StatusNext:         "next",
	StatusSoon:         "soon",
	StatusScheduled:    "scheduled",
	StatusUnknown:      "unknown",
	StatusInvalid:      "invalid",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// IsOver reports whether the game has finished (or will never be played).
func (s Status) IsOver() bool {
	return s <= StatusJustFinished
}

// StatusFromInt maps a raw status code. Codes between StatusSoon and
// StatusScheduled are queue positions and all map to StatusSoon.
func StatusFromInt(i int) (Status, error) {
	s := Status(i)
	if _, ok := statusNames[s]; ok {
		return s, nil
	}
	if s > StatusSoon && s < StatusScheduled {
		return StatusSoon, nil
	}

	return StatusInvalid, fmt.Errorf("%d is not a valid game status: %w", i,
		ErrInvalidStatus)
}

// ParseStatus accepts either a numeric status code or a status name. An
// empty string is StatusUnknown.
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return StatusUnknown, nil
	}
	if i, err := strconv.Atoi(s); err == nil {
		return StatusFromInt(i)
	}
	for st, name := range statusNames {
		if strings.EqualFold(name, s) {
			return st, nil
		}
	}

	return StatusInvalid, fmt.Errorf("%q is not a valid game status: %w", s,
		ErrInvalidStatus)
}
