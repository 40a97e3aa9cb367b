package trace

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestWriterProducesBeginEndPair(t *testing.T) {
	path := filepath.Join(t.TempDir(), "browser.json")
	w := NewWriter(path, "wisp")
	w.Span(0, "paint", func() {})
	if err := w.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var events []Event
	if err := json.Unmarshal(data, &events); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var gotBegin, gotEnd bool
	for _, e := range events {
		if e.Name == "paint" && e.Ph == "B" {
			gotBegin = true
		}
		if e.Name == "paint" && e.Ph == "E" {
			gotEnd = true
		}
	}
	if !gotBegin || !gotEnd {
		t.Fatalf("expected begin/end pair, got %+v", events)
	}
}

func TestNewWriterRecordsProcessNameMetadata(t *testing.T) {
	path := filepath.Join(t.TempDir(), "browser.json")
	w := NewWriter(path, "wisp")
	if len(w.events) != 1 || w.events[0].Ph != "M" {
		t.Fatalf("got %+v", w.events)
	}
}
