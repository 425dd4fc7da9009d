package nutrition

import (
	"context"
	"fmt"
	"time"

	"nutrilog/models"
)

// MaxRangeDays bounds the number of days a gap-filled range may span.
const MaxRangeDays = 3660

// WeightPoint is one weigh-in on the history chart.
type WeightPoint struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

// Aggregator reads the ledger back as daily totals.
type Aggregator struct {
	store Store
	now   func() time.Time
}

// NewAggregator builds an Aggregator reading from store.
func NewAggregator(store Store) *Aggregator {
	return &Aggregator{store: store, now: time.Now}
}

// WithClock replaces the clock used to resolve "now".
func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.now = now
	return a
}

// TotalsForDate sums the ledger for date shifted by offset. A day without
// entries yields a single zero record rather than nothing.
func (a *Aggregator) TotalsForDate(ctx context.Context, date, offset string) (models.DailyTotals, error) {
	day, err := ResolveDay(date, offset, a.now())
	if err != nil {
		return models.DailyTotals{}, err
	}

	rows, err := a.store.QueryDailyTotals(ctx, day)
	if err != nil {
		return models.DailyTotals{}, fmt.Errorf("query totals for %s: %w", day, err)
	}

	totals := models.DailyTotals{EntryDate: day}
	for _, row := range rows {
		totals.Nutrients = totals.Nutrients.Add(row.Nutrients)
	}
	return totals, nil
}

// TotalsByDate returns one record per day present in the ledger, oldest first.
func (a *Aggregator) TotalsByDate(ctx context.Context) ([]models.DailyTotals, error) {
	rows, err := a.store.QueryAllDailyTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("query daily totals: %w", err)
	}
	if rows == nil {
		rows = []models.DailyTotals{}
	}
	return rows, nil
}

// TotalsBetween returns exactly one record per day in [from, to], zero-filling
// days without entries.
func (a *Aggregator) TotalsBetween(ctx context.Context, from, to time.Time) ([]models.DailyTotals, error) {
	from, to = startOfDay(from), startOfDay(to)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range ends %s before it starts %s", ErrInvalidDate, CalendarDay(to), CalendarDay(from))
	}
	if from.AddDate(0, 0, MaxRangeDays-1).Before(to) {
		return nil, fmt.Errorf("%w: range %s..%s spans more than %d days", ErrInvalidDate, CalendarDay(from), CalendarDay(to), MaxRangeDays)
	}

	rows, err := a.store.QueryDailyTotalsBetween(ctx, CalendarDay(from), CalendarDay(to))
	if err != nil {
		return nil, fmt.Errorf("query daily totals: %w", err)
	}
	byDay := make(map[string]models.Nutrients, len(rows))
	for _, row := range rows {
		byDay[row.EntryDate] = byDay[row.EntryDate].Add(row.Nutrients)
	}

	var result []models.DailyTotals
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		key := CalendarDay(day)
		result = append(result, models.DailyTotals{EntryDate: key, Nutrients: byDay[key]})
	}
	return result, nil
}

// Recent returns the gap-filled totals for the days-long window ending today.
func (a *Aggregator) Recent(ctx context.Context, days int) ([]models.DailyTotals, error) {
	if days <= 0 {
		days = 1
	}
	if days > MaxRangeDays {
		return nil, fmt.Errorf("%w: window of %d days exceeds %d", ErrInvalidDate, days, MaxRangeDays)
	}
	today := startOfDay(a.now())
	return a.TotalsBetween(ctx, today.AddDate(0, 0, -(days-1)), today)
}

// WeighInHistory returns every weigh-in as a (date, weight) point.
func (a *Aggregator) WeighInHistory(ctx context.Context) ([]WeightPoint, error) {
	entries, err := a.store.QueryWeighIns(ctx)
	if err != nil {
		return nil, fmt.Errorf("query weigh-ins: %w", err)
	}
	points := make([]WeightPoint, 0, len(entries))
	for _, entry := range entries {
		points = append(points, WeightPoint{Date: entry.EntryDate, Weight: entry.Weight})
	}
	return points, nil
}
