// Turns vendor relative-date phrases ("posted 3 days ago", "yesterday")
// into calendar dates.

package dateparse

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrUnrecognized is returned when the phrase does not look like any
// known relative-date form. Callers decide whether to skip the record.
var ErrUnrecognized = errors.New("dateparse: unrecognized phrase")

// ParsePast resolves a lowercase phrase of the form "today", "yesterday"
// or "<N> <unit>" to the date that far in the past, relative to now.
// Hour-granularity phrases subtract from the timestamp; everything else
// works on whole days.
func ParsePast(phrase string, now time.Time) (time.Time, error) {
	fields := strings.Fields(strings.TrimSpace(phrase))
	today := now.Truncate(24 * time.Hour)

	if len(fields) == 1 {
		switch strings.ToLower(fields[0]) {
		case "today":
			return today, nil
		case "yesterday":
			return today.AddDate(0, 0, -1), nil
		}
		return time.Time{}, ErrUnrecognized
	}
	if len(fields) < 2 {
		return time.Time{}, ErrUnrecognized
	}

	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return time.Time{}, ErrUnrecognized
	}

	switch strings.ToLower(fields[1]) {
	case "hour", "hours", "hr", "hrs", "h":
		return now.Add(-time.Duration(n) * time.Hour), nil
	case "day", "days", "d":
		return today.AddDate(0, 0, -n), nil
	case "week", "weeks", "wk", "wks", "w":
		return today.AddDate(0, 0, -7*n), nil
	case "month", "months", "mon", "mons", "m":
		return today.AddDate(0, -n, 0), nil
	case "year", "years", "yr", "yrs", "y":
		return today.AddDate(-n, 0, 0), nil
	}
	return time.Time{}, ErrUnrecognized
}
