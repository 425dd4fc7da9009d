package handlers

import (
	"net/http"

	templpkg "github.com/a-h/templ"

	applog "nutrilog/internal/log"
	"nutrilog/internal/nutrition"
	"nutrilog/internal/views/pages"
	"nutrilog/internal/views/theme"
)

const sessionThemeKey = "dashboard:theme"

// Dashboard renders today's totals, the recent history and the weigh-ins.
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	data, err := h.dashboardData(r)
	if err != nil {
		applog.Error(r.Context(), "failed to load dashboard", "error", err)
		http.Error(w, "unable to load dashboard", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	var component templpkg.Component
	if isHTMX(r) {
		component = pages.DashboardPartial(data)
	} else {
		component = pages.Dashboard(data)
	}

	if err := component.Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handlers) dashboardData(r *http.Request) (pages.DashboardData, error) {
	ctx := r.Context()
	today, err := h.aggregator.TotalsForDate(ctx, nutrition.Today, "")
	if err != nil {
		return pages.DashboardData{}, err
	}
	history, err := h.aggregator.Recent(ctx, h.historyDays)
	if err != nil {
		return pages.DashboardData{}, err
	}
	weights, err := h.aggregator.WeighInHistory(ctx)
	if err != nil {
		return pages.DashboardData{}, err
	}
	names, err := h.catalog.Names(ctx)
	if err != nil {
		return pages.DashboardData{}, err
	}
	return pages.DashboardData{
		Today:       today,
		History:     history,
		Weights:     weights,
		Names:       names,
		HistoryDays: h.historyDays,
		Theme:       h.dashboardTheme(r),
	}, nil
}

// dashboardTheme applies a ?theme= selection, remembering it in the session
// when one is available.
func (h *Handlers) dashboardTheme(r *http.Request) theme.Theme {
	ctx := r.Context()
	if requested, ok := theme.Lookup(r.URL.Query().Get("theme")); ok {
		if h.sessions != nil {
			h.sessions.Put(ctx, sessionThemeKey, requested.Key)
		}
		return requested
	}
	if h.sessions == nil {
		return theme.Resolve(theme.DefaultKey)
	}
	return theme.Resolve(h.sessions.GetString(ctx, sessionThemeKey))
}
