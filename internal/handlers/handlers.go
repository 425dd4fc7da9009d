package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	applog "nutrilog/internal/log"
	"nutrilog/internal/metrics"
	"nutrilog/internal/nutrition"
)

const maxBodyBytes = 1 << 20

// Options configures the optional collaborators of Handlers.
type Options struct {
	Sessions    *scs.SessionManager
	Metrics     metrics.Recorder
	HistoryDays int
	Now         func() time.Time
}

// Handlers serves the JSON API, the MCP tool endpoint and the dashboard.
type Handlers struct {
	store       nutrition.Store
	resolver    *nutrition.Resolver
	composer    *nutrition.Composer
	recorder    *nutrition.Recorder
	aggregator  *nutrition.Aggregator
	catalog     *nutrition.Catalog
	sessions    *scs.SessionManager
	metrics     metrics.Recorder
	historyDays int
	now         func() time.Time
}

// New wires the engine components over store.
func New(store nutrition.Store, opts Options) (*Handlers, error) {
	if store == nil {
		return nil, errors.New("handlers: store is nil")
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.Nop{}
	}
	if opts.HistoryDays <= 0 {
		opts.HistoryDays = 30
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Handlers{
		store:       store,
		resolver:    nutrition.NewResolver(store),
		composer:    nutrition.NewComposer(store),
		recorder:    nutrition.NewRecorder(store).WithClock(opts.Now),
		aggregator:  nutrition.NewAggregator(store).WithClock(opts.Now),
		catalog:     nutrition.NewCatalog(store),
		sessions:    opts.Sessions,
		metrics:     opts.Metrics,
		historyDays: opts.HistoryDays,
		now:         opts.Now,
	}, nil
}

// amountValue accepts a JSON number or string and keeps its literal text so
// decimal parsing sees exactly what the client sent.
type amountValue string

func (a *amountValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = amountValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount must be a number or string: %w", err)
	}
	*a = amountValue(n.String())
	return nil
}

type referenceRequest struct {
	Name   string      `json:"name"`
	Amount amountValue `json:"amount"`
	Unit   string      `json:"unit"`
}

func (r referenceRequest) reference() nutrition.Reference {
	return nutrition.Reference{Name: r.Name, Amount: string(r.Amount), Unit: r.Unit}
}

func decodeJSON(r *http.Request, target any) error {
	if r.Body == nil {
		return errors.New("request body is empty")
	}
	return json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(target)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// engineStatus maps an engine error onto an HTTP status.
func engineStatus(err error) int {
	switch {
	case errors.Is(err, nutrition.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, nutrition.ErrDuplicateName):
		return http.StatusConflict
	case nutrition.IsInputError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeEngineError(w http.ResponseWriter, r *http.Request, err error, fallback string, attrs ...any) {
	status := engineStatus(err)
	if status == http.StatusInternalServerError {
		applog.Error(r.Context(), fallback, append(attrs, "error", err)...)
		writeJSONError(w, status, fallback)
		return
	}
	applog.Debug(r.Context(), "request rejected", append(attrs, "status", status, "error", err)...)
	writeJSONError(w, status, err.Error())
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	w.WriteHeader(http.StatusMethodNotAllowed)
}
