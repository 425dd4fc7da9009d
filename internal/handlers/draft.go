package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	applog "nutrilog/internal/log"
	"nutrilog/internal/nutrition"
)

const sessionRecipeDraftKey = "recipe:draft"

type draftResponse struct {
	Components []nutrition.Reference `json:"components"`
	Totals     []nutrition.Totals    `json:"totals"`
	// Errors is parallel to Components; an empty string marks a component
	// that resolved.
	Errors []string `json:"errors"`
}

type draftCommitRequest struct {
	Name     string      `json:"name"`
	Portions amountValue `json:"portions"`
}

// RecipeDraft reads (GET), extends (POST) or clears (DELETE) the session's
// recipe draft. Appended components are resolved first so bad input never
// reaches the draft.
func (h *Handlers) RecipeDraft(w http.ResponseWriter, r *http.Request) {
	if h.sessions == nil {
		http.Error(w, "sessions not available", http.StatusServiceUnavailable)
		return
	}

	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		h.writeDraft(w, r, h.loadDraft(ctx))
	case http.MethodPost:
		var payload referenceRequest
		if err := decodeJSON(r, &payload); err != nil {
			applog.Debug(ctx, "invalid draft component payload", "error", err)
			writeJSONError(w, http.StatusBadRequest, "invalid request payload")
			return
		}
		ref := payload.reference()
		if _, err := h.resolve(r, ref); err != nil {
			writeEngineError(w, r, err, "unable to resolve component", "name", ref.Name, "unit", ref.Unit)
			return
		}
		draft := append(h.loadDraft(ctx), ref)
		if err := h.saveDraft(ctx, draft); err != nil {
			applog.Error(ctx, "failed to store recipe draft", "error", err)
			writeJSONError(w, http.StatusInternalServerError, "unable to store recipe draft")
			return
		}
		h.writeDraft(w, r, draft)
	case http.MethodDelete:
		h.sessions.Remove(ctx, sessionRecipeDraftKey)
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost, http.MethodDelete)
	}
}

// CommitRecipeDraft composes the session draft into a recipe and clears the
// draft on success.
func (h *Handlers) CommitRecipeDraft(w http.ResponseWriter, r *http.Request) {
	if h.sessions == nil {
		http.Error(w, "sessions not available", http.StatusServiceUnavailable)
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	ctx := r.Context()
	var payload draftCommitRequest
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid draft commit payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if h.compose(w, r, payload.Name, h.loadDraft(ctx), string(payload.Portions)) {
		h.sessions.Remove(ctx, sessionRecipeDraftKey)
	}
}

func (h *Handlers) loadDraft(ctx context.Context) []nutrition.Reference {
	raw := h.sessions.GetBytes(ctx, sessionRecipeDraftKey)
	if len(raw) == 0 {
		return nil
	}
	var draft []nutrition.Reference
	if err := json.Unmarshal(raw, &draft); err != nil {
		applog.Warn(ctx, "discarding unreadable recipe draft", "error", err)
		return nil
	}
	return draft
}

func (h *Handlers) saveDraft(ctx context.Context, draft []nutrition.Reference) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	h.sessions.Put(ctx, sessionRecipeDraftKey, raw)
	return nil
}

func (h *Handlers) writeDraft(w http.ResponseWriter, r *http.Request, draft []nutrition.Reference) {
	ctx := r.Context()
	resp := draftResponse{
		Components: make([]nutrition.Reference, 0, len(draft)),
		Totals:     make([]nutrition.Totals, 0, len(draft)),
		Errors:     make([]string, 0, len(draft)),
	}
	for _, ref := range draft {
		totals, err := h.resolver.Resolve(ctx, ref)
		resp.Components = append(resp.Components, ref)
		resp.Totals = append(resp.Totals, totals)
		resp.Errors = append(resp.Errors, draftComponentError(ctx, ref, err))
	}
	writeJSON(w, http.StatusOK, resp)
}

func draftComponentError(ctx context.Context, ref nutrition.Reference, err error) string {
	switch {
	case err == nil:
		return ""
	case engineStatus(err) == http.StatusInternalServerError:
		applog.Error(ctx, "failed to resolve draft component", "name", ref.Name, "error", err)
		return "unable to resolve component"
	default:
		applog.Debug(ctx, "draft component no longer resolves", "name", ref.Name, "error", err)
		return err.Error()
	}
}
