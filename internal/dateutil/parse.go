package dateutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	agoPattern      = regexp.MustCompile(`^(\d+)\s*(d|day|days|w|week|weeks)\s+ago$`)
	relativePattern = regexp.MustCompile(`^([+-]\d+)\s*(d|day|days|w|week|weeks)$`)
)

var inputLayouts = []string{
	KeyLayout,
	"2006/01/02",
	"2006.01.02",
	"20060102",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"2 January 2006",
}

// ParseFlexibleDate parses user supplied dates such as "today", "yesterday",
// "3 days ago", "-2d", "last week" or any of the usual calendar layouts, and
// returns midnight of that day in loc.
func ParseFlexibleDate(input string, loc *time.Location, now time.Time) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	in := strings.TrimSpace(strings.ToLower(input))
	if in == "" {
		return time.Time{}, fmt.Errorf("empty date input")
	}
	now = now.In(loc)
	day := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	}

	switch in {
	case "today", "now":
		return day(now), nil
	case "yesterday":
		return day(now.AddDate(0, 0, -1)), nil
	case "tomorrow":
		return day(now.AddDate(0, 0, 1)), nil
	case "last week":
		return day(now.AddDate(0, 0, -7)), nil
	case "next week":
		return day(now.AddDate(0, 0, 7)), nil
	}

	if m := agoPattern.FindStringSubmatch(in); m != nil {
		n, _ := strconv.Atoi(m[1])
		return day(now.AddDate(0, 0, -n*unitDays(m[2]))), nil
	}
	if m := relativePattern.FindStringSubmatch(in); m != nil {
		n, _ := strconv.Atoi(m[1])
		return day(now.AddDate(0, 0, n*unitDays(m[2]))), nil
	}

	for _, layout := range inputLayouts {
		if t, err := time.ParseInLocation(layout, strings.TrimSpace(input), loc); err == nil {
			return day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", input)
}

func unitDays(unit string) int {
	if strings.HasPrefix(unit, "w") {
		return 7
	}
	return 1
}

// ResolveKey turns command-line input into a date key. Empty input means
// today; input that is not a recognisable date is returned verbatim because
// synthetic keys are opaque.
func ResolveKey(input string, loc *time.Location, now time.Time) string {
	in := strings.TrimSpace(input)
	if in == "" {
		return Key(now, loc)
	}
	t, err := ParseFlexibleDate(in, loc, now)
	if err != nil {
		return in
	}
	return t.Format(KeyLayout)
}
