package nutrition

import (
	"errors"
	"testing"
	"time"
)

func TestResolveDay(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.January, 31, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		date, offset string
		want         string
	}{
		{"", "", "2024-01-31"},
		{"now", "", "2024-01-31"},
		{"NOW", "+1d", "2024-02-01"},
		{"2024-03-01", "-1d", "2024-02-29"},
		{"2024-3-1", "", "2024-03-01"},
		{"2024-01-01", "2 weeks", "2024-01-15"},
		{"2024-01-01", "-1y", "2023-01-01"},
		{"2024-01-01", "-3 days", "2023-12-29"},
		{" 2024-01-01 ", " -1D ", "2023-12-31"},
	}

	for _, tt := range cases {
		got, err := ResolveDay(tt.date, tt.offset, now)
		if err != nil {
			t.Fatalf("ResolveDay(%q, %q) returned error: %v", tt.date, tt.offset, err)
		}
		if got != tt.want {
			t.Fatalf("ResolveDay(%q, %q) = %q, want %q", tt.date, tt.offset, got, tt.want)
		}
	}
}

func TestResolveDayRejectsGarbage(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.January, 31, 9, 0, 0, 0, time.UTC)
	cases := []struct{ date, offset string }{
		{"31/01/2024", ""},
		{"2024-13-01", ""},
		{"tomorrow", ""},
		{"now", "1h"},
		{"now", "-d"},
		{"now", "yesterday"},
	}
	for _, tt := range cases {
		if _, err := ResolveDay(tt.date, tt.offset, now); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("ResolveDay(%q, %q) error = %v, want ErrInvalidDate", tt.date, tt.offset, err)
		}
	}
}

func TestCalendarDayKeepsLocation(t *testing.T) {
	t.Parallel()

	west := time.FixedZone("UTC-8", -8*60*60)
	stamp := time.Date(2024, time.June, 1, 1, 0, 0, 0, time.UTC).In(west)
	if got := CalendarDay(stamp); got != "2024-05-31" {
		t.Fatalf("CalendarDay = %q, want 2024-05-31", got)
	}
}
