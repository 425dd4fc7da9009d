package handlers

import (
	"net/http"

	applog "nutrilog/internal/log"
	"nutrilog/internal/metrics"
	"nutrilog/internal/nutrition"
	"nutrilog/models"
)

type recordResponse struct {
	Error  string           `json:"error"`
	Totals nutrition.Totals `json:"totals"`
}

type weighInRequest struct {
	Weight amountValue `json:"weight"`
}

// Resolve previews the totals of a reference without logging it.
func (h *Handlers) Resolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	ctx := r.Context()
	var payload referenceRequest
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid resolve payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	totals, err := h.resolve(r, payload.reference())
	if err != nil {
		writeEngineError(w, r, err, "unable to resolve food", "name", payload.Name, "unit", payload.Unit)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

func (h *Handlers) resolve(r *http.Request, ref nutrition.Reference) (nutrition.Totals, error) {
	var totals nutrition.Totals
	err := metrics.Track(r.Context(), h.metrics, metrics.OpResolve, func() error {
		var err error
		totals, err = h.resolver.Resolve(r.Context(), ref)
		return err
	})
	return totals, err
}

// Consumption records a reference in the ledger.
func (h *Handlers) Consumption(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	ctx := r.Context()
	var payload referenceRequest
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid consumption payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	totals, err := h.record(r, payload.reference())
	if err != nil {
		if writeUnstored(w, r, totals, err) {
			return
		}
		writeEngineError(w, r, err, "unable to record consumption", "name", payload.Name, "unit", payload.Unit)
		return
	}

	applog.Info(ctx, "consumption recorded", "name", totals.Name, "amount", totals.Amount, "unit", totals.Unit)
	triggerHTMX(w, ledgerUpdatedEvent)
	writeJSON(w, http.StatusCreated, totals)
}

// writeUnstored answers 500 with the resolved totals when a reference resolved
// but its ledger append failed. It reports false when nothing was resolved.
func writeUnstored(w http.ResponseWriter, r *http.Request, totals nutrition.Totals, err error) bool {
	if totals == (nutrition.Totals{}) {
		return false
	}
	applog.Error(r.Context(), "failed to append consumption", "name", totals.Name, "error", err)
	writeJSON(w, http.StatusInternalServerError, recordResponse{Error: "unable to record consumption", Totals: totals})
	return true
}

func (h *Handlers) record(r *http.Request, ref nutrition.Reference) (nutrition.Totals, error) {
	var totals nutrition.Totals
	err := metrics.Track(r.Context(), h.metrics, metrics.OpRecord, func() error {
		var err error
		totals, err = h.recorder.Record(r.Context(), ref)
		return err
	})
	return totals, err
}

// Weight lists weigh-ins (GET) or records one (POST).
func (h *Handlers) Weight(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		points, err := h.aggregator.WeighInHistory(ctx)
		if err != nil {
			writeEngineError(w, r, err, "unable to load weigh-ins")
			return
		}
		writeJSON(w, http.StatusOK, points)
	case http.MethodPost:
		var payload weighInRequest
		if err := decodeJSON(r, &payload); err != nil {
			applog.Debug(ctx, "invalid weigh-in payload", "error", err)
			writeJSONError(w, http.StatusBadRequest, "invalid request payload")
			return
		}
		var entry models.WeighIn
		err := metrics.Track(ctx, h.metrics, metrics.OpWeighIn, func() error {
			var err error
			entry, err = h.recorder.RecordWeighIn(ctx, string(payload.Weight))
			return err
		})
		if err != nil {
			writeEngineError(w, r, err, "unable to record weigh-in")
			return
		}
		triggerHTMX(w, ledgerUpdatedEvent)
		writeJSON(w, http.StatusCreated, entry)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}
