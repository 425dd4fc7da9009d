package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"nutrilog/internal/nutrition"
	"nutrilog/models"
)

type toolResult struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func toolPayload[T any](t *testing.T, body []byte) T {
	t.Helper()
	var result toolResult
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("decode tool result %s: %v", body, err)
	}
	if len(result.Content) != 1 || result.Content[0].Type != "text" {
		t.Fatalf("expected a single text content, got %+v", result)
	}
	var out T
	if err := json.Unmarshal([]byte(result.Content[0].Text), &out); err != nil {
		t.Fatalf("decode tool text %q: %v", result.Content[0].Text, err)
	}
	return out
}

func TestMCPTools(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, Options{})

	rr := serve(h.MCP, http.MethodPost, "/mcp", `{"name":"resolve_food","arguments":{"name":"egg","amount":3,"unit":"each"}}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("resolve_food status %d body %s", rr.Code, rr.Body.String())
	}
	if totals := toolPayload[nutrition.Totals](t, rr.Body.Bytes()); !closeTo(totals.Kcals, 465) {
		t.Fatalf("unexpected resolve_food totals: %+v", totals)
	}

	rr = serve(h.MCP, http.MethodPost, "/mcp", `{"name":"log_food","arguments":{"name":"rice","amount":"100","unit":"grams"}}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("log_food status %d body %s", rr.Code, rr.Body.String())
	}

	rr = serve(h.MCP, http.MethodPost, "/mcp", `{"name":"daily_totals","arguments":{"date":"now"}}`)
	if day := toolPayload[models.DailyTotals](t, rr.Body.Bytes()); day.EntryDate != "2024-01-01" || day.Kcals != 130 {
		t.Fatalf("unexpected daily_totals: %+v", day)
	}

	rr = serve(h.MCP, http.MethodPost, "/mcp", `{"name":"list_foods","arguments":{}}`)
	if names := toolPayload[nutrition.Names](t, rr.Body.Bytes()); len(names.Ingredients) != 4 {
		t.Fatalf("unexpected list_foods: %+v", names)
	}
}

func TestMCPErrors(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, Options{})
	tests := []struct {
		name string
		body string
		want int
	}{
		{"unknown tool", `{"name":"delete_everything","arguments":{}}`, http.StatusNotFound},
		{"unknown food", `{"name":"resolve_food","arguments":{"name":"durian","amount":"1","unit":"each"}}`, http.StatusNotFound},
		{"bad unit", `{"name":"log_food","arguments":{"name":"rice","amount":"1","unit":"kg"}}`, http.StatusBadRequest},
		{"bad offset", `{"name":"daily_totals","arguments":{"offset":"soon"}}`, http.StatusBadRequest},
		{"malformed", `[1,2`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if rr := serve(h.MCP, http.MethodPost, "/mcp", tt.body); rr.Code != tt.want {
				t.Fatalf("status = %d, want %d (body %s)", rr.Code, tt.want, rr.Body.String())
			}
		})
	}

	if rr := serve(h.MCP, http.MethodGet, "/mcp", ""); rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 for GET, got %d", rr.Code)
	}
}

func TestMCPLogFoodReportsTotalsWhenAppendFails(t *testing.T) {
	t.Parallel()

	h := newHandlersOver(t, failingAppendStore{Store: newTestStore(t)}, Options{})
	rr := serve(h.MCP, http.MethodPost, "/mcp", `{"name":"log_food","arguments":{"name":"egg","amount":"2","unit":"each"}}`)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d body %s", rr.Code, rr.Body.String())
	}
	resp := decode[recordResponse](t, rr)
	if resp.Error != "unable to record consumption" || !closeTo(resp.Totals.Kcals, 310) || resp.Totals.Name != "egg" {
		t.Fatalf("expected error with resolved totals, got %+v", resp)
	}
}
