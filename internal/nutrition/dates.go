package nutrition

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar-day format used by the ledger.
const DateLayout = "2006-01-02"

// Today is the sentinel accepted in place of a date for the current day.
const Today = "now"

const readDateLayout = "2006-1-2"

var offsetPattern = regexp.MustCompile(`^([+-]?)(\d+)\s*(d|days?|w|weeks?|m|months?|y|years?)$`)

// CalendarDay is the single rule deriving a ledger date from a timestamp: the
// date in the timestamp's own location.
func CalendarDay(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDay parses a YYYY-MM-DD date (single digit month/day tolerated) or the
// Today sentinel. A blank value also means today.
func ParseDay(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, Today) {
		return startOfDay(now), nil
	}
	day, err := time.ParseInLocation(readDateLayout, value, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return day, nil
}

// ApplyOffset shifts day by a relative offset such as "-1d", "-1 day" or "+2w".
// A blank offset returns day unchanged.
func ApplyOffset(day time.Time, offset string) (time.Time, error) {
	offset = strings.ToLower(strings.TrimSpace(offset))
	if offset == "" {
		return day, nil
	}
	match := offsetPattern.FindStringSubmatch(offset)
	if match == nil {
		return time.Time{}, fmt.Errorf("%w: offset %q", ErrInvalidDate, offset)
	}
	n, err := strconv.Atoi(match[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: offset %q", ErrInvalidDate, offset)
	}
	if match[1] == "-" {
		n = -n
	}
	switch match[3][0] {
	case 'd':
		return day.AddDate(0, 0, n), nil
	case 'w':
		return day.AddDate(0, 0, 7*n), nil
	case 'm':
		return day.AddDate(0, n, 0), nil
	default:
		return day.AddDate(n, 0, 0), nil
	}
}

// ResolveDay combines ParseDay and ApplyOffset and returns the ledger date.
func ResolveDay(date, offset string, now time.Time) (string, error) {
	day, err := ParseDay(date, now)
	if err != nil {
		return "", err
	}
	day, err = ApplyOffset(day, offset)
	if err != nil {
		return "", err
	}
	return CalendarDay(day), nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
