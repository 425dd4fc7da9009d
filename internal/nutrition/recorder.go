package nutrition

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	applog "nutrilog/internal/log"
	"nutrilog/models"
)

// Recorder appends resolved consumption and weigh-ins to the ledger.
type Recorder struct {
	store Store
	now   func() time.Time
}

// NewRecorder builds a Recorder persisting into store, stamping entries with time.Now.
func NewRecorder(store Store) *Recorder {
	return &Recorder{store: store, now: time.Now}
}

// WithClock replaces the clock used to stamp entries.
func (r *Recorder) WithClock(now func() time.Time) *Recorder {
	r.now = now
	return r
}

// Record resolves ref and appends it to the consumption ledger. The resolved
// totals are returned even when the append fails so callers can still show them.
func (r *Recorder) Record(ctx context.Context, ref Reference) (Totals, error) {
	var totals Totals
	resolved := false
	err := r.store.Transaction(ctx, func(tx Store) error {
		var err error
		totals, err = NewResolver(tx).Resolve(ctx, ref)
		if err != nil {
			return err
		}
		resolved = true

		stamp := r.now()
		entry := models.ConsumptionEntry{
			Name:      totals.Name,
			Amount:    totals.Amount,
			Unit:      totals.Unit,
			Nutrients: totals.Nutrients,
			EntryTime: stamp,
			EntryDate: CalendarDay(stamp),
		}
		if err := tx.AppendConsumption(ctx, &entry); err != nil {
			return fmt.Errorf("append consumption %q: %w", totals.Name, err)
		}
		return nil
	})
	if err != nil {
		if resolved {
			return totals, err
		}
		return Totals{}, err
	}

	applog.Debug(ctx, "consumption recorded", "name", totals.Name, "amount", totals.Amount, "unit", totals.Unit, "kcals", totals.Kcals)
	return totals, nil
}

// RecordWeighIn appends a body weight measurement.
func (r *Recorder) RecordWeighIn(ctx context.Context, weight string) (models.WeighIn, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(weight))
	if err != nil || !value.IsPositive() {
		return models.WeighIn{}, fmt.Errorf("%w: %q", ErrInvalidWeight, weight)
	}

	stamp := r.now()
	entry := models.WeighIn{
		Weight:    value.InexactFloat64(),
		EntryTime: stamp,
		EntryDate: CalendarDay(stamp),
	}
	if err := r.store.AppendWeighIn(ctx, &entry); err != nil {
		return models.WeighIn{}, fmt.Errorf("append weigh-in: %w", err)
	}

	applog.Debug(ctx, "weigh-in recorded", "weight", entry.Weight, "date", entry.EntryDate)
	return entry, nil
}
