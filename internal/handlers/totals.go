package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"nutrilog/internal/metrics"
	"nutrilog/internal/nutrition"
	"nutrilog/models"
)

// Totals returns the zero-filled totals for ?date= (default now) shifted by ?offset=.
func (h *Handlers) Totals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	ctx := r.Context()
	query := r.URL.Query()
	var totals models.DailyTotals
	err := metrics.Track(ctx, h.metrics, metrics.OpTotals, func() error {
		var err error
		totals, err = h.aggregator.TotalsForDate(ctx, query.Get("date"), query.Get("offset"))
		return err
	})
	if err != nil {
		writeEngineError(w, r, err, "unable to load totals", "date", query.Get("date"), "offset", query.Get("offset"))
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

// DailyTotals returns per-day totals. With ?from= and ?to= (or ?days=) the
// range is gap-filled; without them every ledger day is returned.
func (h *Handlers) DailyTotals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	ctx := r.Context()
	query := r.URL.Query()
	from, to, days := strings.TrimSpace(query.Get("from")), strings.TrimSpace(query.Get("to")), strings.TrimSpace(query.Get("days"))

	var (
		rows []models.DailyTotals
		err  error
	)
	switch {
	case from != "" || to != "":
		rows, err = h.totalsBetween(r, from, to)
	case days != "":
		n, convErr := strconv.Atoi(days)
		if convErr != nil || n <= 0 {
			writeJSONError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		rows, err = h.aggregator.Recent(ctx, n)
	default:
		rows, err = h.aggregator.TotalsByDate(ctx)
	}
	if err != nil {
		writeEngineError(w, r, err, "unable to load daily totals", "from", from, "to", to)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *Handlers) totalsBetween(r *http.Request, from, to string) ([]models.DailyTotals, error) {
	now := h.now()
	start, err := nutrition.ParseDay(from, now)
	if err != nil {
		return nil, err
	}
	end, err := nutrition.ParseDay(to, now)
	if err != nil {
		return nil, err
	}
	return h.aggregator.TotalsBetween(r.Context(), start, end)
}
