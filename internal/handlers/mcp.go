package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"

	applog "nutrilog/internal/log"
	"nutrilog/internal/metrics"
	"nutrilog/internal/nutrition"
	"nutrilog/models"
)

// MCP tool names.
const (
	ToolResolveFood = "resolve_food"
	ToolLogFood     = "log_food"
	ToolDailyTotals = "daily_totals"
	ToolListFoods   = "list_foods"
)

type totalsParams struct {
	Date   string `json:"date,omitempty" description:"Calendar day (YYYY-MM-DD) or now"`
	Offset string `json:"offset,omitempty" description:"Relative shift such as -1d"`
}

// extractParams converts the loosely typed tool arguments into target.
func extractParams(req *protocol.CallToolRequest, target any) error {
	raw, err := json.Marshal(req.Arguments)
	if err != nil {
		return fmt.Errorf("marshal arguments: %w", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("unmarshal arguments: %w", err)
	}
	return nil
}

func jsonToolResult(data any) (*protocol.CallToolResult, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal tool result: %w", err)
	}
	return &protocol.CallToolResult{
		Content: []protocol.Content{
			&protocol.TextContent{
				Type: "text",
				Text: string(raw),
			},
		},
	}, nil
}

// MCP answers tool calls from assistants over plain HTTP POST.
func (h *Handlers) MCP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	ctx := r.Context()
	var request protocol.CallToolRequest
	if err := decodeJSON(r, &request); err != nil {
		applog.Debug(ctx, "invalid mcp request", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	ctx = applog.WithFields(ctx, "tool", request.Name)
	r = r.WithContext(ctx)

	var (
		data any
		err  error
	)
	switch request.Name {
	case ToolResolveFood, ToolLogFood:
		var params referenceRequest
		if err := extractParams(&request, &params); err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		if request.Name == ToolResolveFood {
			data, err = h.resolve(r, params.reference())
			break
		}
		var totals nutrition.Totals
		totals, err = h.record(r, params.reference())
		if err != nil && writeUnstored(w, r, totals, err) {
			return
		}
		data = totals
	case ToolDailyTotals:
		var params totalsParams
		if err := extractParams(&request, &params); err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		var totals models.DailyTotals
		err = metrics.Track(ctx, h.metrics, metrics.OpTotals, func() error {
			var err error
			totals, err = h.aggregator.TotalsForDate(ctx, params.Date, params.Offset)
			return err
		})
		data = totals
	case ToolListFoods:
		data, err = h.catalog.Names(ctx)
	default:
		applog.Debug(ctx, "unknown mcp tool")
		writeJSONError(w, http.StatusNotFound, fmt.Sprintf("unknown tool: %s", request.Name))
		return
	}
	if err != nil {
		writeEngineError(w, r, err, "tool call failed")
		return
	}

	result, err := jsonToolResult(data)
	if err != nil {
		applog.Error(ctx, "failed to build tool result", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "tool call failed")
		return
	}
	applog.Debug(ctx, "mcp tool answered")
	writeJSON(w, http.StatusOK, result)
}
