package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

// capture routes the global logger into a buffer for the duration of t.
func capture(t *testing.T, format Format) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	original := Logger()
	ReplaceLogger(New(buf, format))
	t.Cleanup(func() {
		ReplaceLogger(original)
		_ = SetLevel("info")
	})
	return buf
}

func TestTextLinesUseShortKeys(t *testing.T) {
	buf := capture(t, FormatText)

	Info(context.Background(), "consumption recorded", "name", "egg")

	line := strings.TrimSpace(buf.String())
	for _, want := range []string{"ts=", "level=info", `msg="consumption recorded"`, "name=egg"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %q", want, line)
		}
	}
	if strings.Contains(line, "time=") {
		t.Fatalf("time key was not renamed: %q", line)
	}
}

func TestJSONLinesUseShortKeys(t *testing.T) {
	buf := capture(t, FormatJSON)

	Warn(context.Background(), "unit unknown", "unit", "kg")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected a JSON log line, got %q: %v", buf.String(), err)
	}
	if record["level"] != "warn" || record["msg"] != "unit unknown" || record["unit"] != "kg" {
		t.Fatalf("unexpected record: %v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", record)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "", want: slog.LevelInfo},
		{in: " DEBUG ", want: slog.LevelDebug},
		{in: "warning", want: slog.LevelWarn},
		{in: "Error", want: slog.LevelError},
		{in: "verbose", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) error = %v, wantErr %t", tt.in, err, tt.wantErr)
		}
		if !tt.wantErr && got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetLevelFiltersBelowMinimum(t *testing.T) {
	buf := capture(t, FormatText)

	if err := SetLevel("WARN"); err != nil {
		t.Fatalf("SetLevel returned error: %v", err)
	}
	Info(context.Background(), "hidden")
	Debug(context.Background(), "hidden")
	Error(context.Background(), "shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "msg=shown") {
		t.Fatalf("unexpected output for warn level: %q", out)
	}
	if err := SetLevel("verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestSetFormat(t *testing.T) {
	original := Logger()
	t.Cleanup(func() {
		ReplaceLogger(original)
	})

	if err := SetFormat("JSON"); err != nil {
		t.Fatalf("SetFormat(JSON) returned error: %v", err)
	}
	if _, ok := Logger().Handler().(*slog.JSONHandler); !ok {
		t.Fatalf("expected JSON handler, got %T", Logger().Handler())
	}
	if err := SetFormat("yaml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
	if _, ok := Logger().Handler().(*slog.JSONHandler); !ok {
		t.Fatalf("rejected format must keep the current handler, got %T", Logger().Handler())
	}
}

func TestWithFieldsPrefixesLines(t *testing.T) {
	buf := capture(t, FormatText)

	ctx := WithFields(context.Background(), "tool", "log_food")
	ctx = WithFields(ctx, "request", "r1")
	Info(ctx, "mcp tool answered", "status", 200)
	Info(context.Background(), "plain")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	first := lines[0]
	tool, request, status := strings.Index(first, "tool=log_food"), strings.Index(first, "request=r1"), strings.Index(first, "status=200")
	if tool < 0 || request < tool || status < request {
		t.Fatalf("expected context fields before call-site fields, got %q", first)
	}
	if strings.Contains(lines[1], "tool=") {
		t.Fatalf("fields leaked into an unrelated line: %q", lines[1])
	}
}
