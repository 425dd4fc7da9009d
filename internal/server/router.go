package server

import (
	"context"
	"net/http"

	"nutrilog/internal/handlers"
	applog "nutrilog/internal/log"
)

func newRouter(h *handlers.Handlers, metricsHandler http.Handler) http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")

	routes := []struct {
		path    string
		handler http.HandlerFunc
	}{
		{"/healthz", h.Health},
		{"/api/names", h.Names},
		{"/api/ingredients", h.Ingredients},
		{"/api/recipes", h.Recipes},
		{"/api/recipes/draft", h.RecipeDraft},
		{"/api/recipes/draft/commit", h.CommitRecipeDraft},
		{"/api/resolve", h.Resolve},
		{"/api/consumption", h.Consumption},
		{"/api/weight", h.Weight},
		{"/api/totals", h.Totals},
		{"/api/totals/daily", h.DailyTotals},
		{"/mcp", h.MCP},
		{"/", h.Dashboard},
	}
	for _, route := range routes {
		mux.HandleFunc(route.path, route.handler)
		applog.Debug(context.Background(), "route registered", "path", route.path)
	}

	if metricsHandler != nil {
		mux.Handle("/metrics", metricsHandler)
		applog.Debug(context.Background(), "route registered", "path", "/metrics")
	}
	return mux
}
