package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLogger_JSONWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, false, slog.LevelInfo).Info("records saved", "rois", 3)
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "records saved" || entry["rois"] != float64(3) {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestNewLogger_TextAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, true, slog.LevelWarn)
	l.Info("hidden")
	l.Warn("shown", "path", "a.json")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "msg=shown") {
		t.Fatalf("unexpected output %q", out)
	}
}
