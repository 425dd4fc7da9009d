package handlers

import (
	"context"
	"net/http"
	"time"

	applog "nutrilog/internal/log"
)

// pinger is implemented by stores that can check their connection.
type pinger interface {
	Ping(ctx context.Context) error
}

type healthResponse struct {
	Status   string    `json:"status"`
	Database string    `json:"database"`
	Time     time.Time `json:"time"`
}

// Health is a readiness handler for infrastructure probes. It reports 503
// when the store cannot be reached.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	applog.Debug(ctx, "health check requested", "method", r.Method)

	resp := healthResponse{Status: "ok", Database: "unchecked", Time: h.now().UTC()}
	status := http.StatusOK
	if p, ok := h.store.(pinger); ok {
		if err := p.Ping(ctx); err != nil {
			applog.Warn(ctx, "database ping failed", "error", err)
			resp.Status = "degraded"
			resp.Database = "unreachable"
			status = http.StatusServiceUnavailable
		} else {
			resp.Database = "ok"
		}
	}

	writeJSON(w, status, resp)
}
