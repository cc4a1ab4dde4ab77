package analytics

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func setupStore(t *testing.T) *SourceStore {
	t.Helper()
	return NewSourceStore(filepath.Join(t.TempDir(), "sources.jsonl"))
}

func writeStore(t *testing.T, store *SourceStore, lines ...string) {
	t.Helper()
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(store.Path(), []byte(content), 0644); err != nil {
		t.Fatalf("write store fixture: %v", err)
	}
}

func TestTally(t *testing.T) {
	store := setupStore(t)
	writeStore(t, store,
		`{"timestamp":"2026-08-01T10:00:00Z","ip":"10.0.0.1","source":"twitter","referrer":"","user_agent":"ua"}`,
		`{"timestamp":"2026-08-01T10:01:00Z","ip":"10.0.0.2","source":"twitter","referrer":"","user_agent":"ua"}`,
		`{"timestamp":"2026-08-01T10:02:00Z","ip":"10.0.0.3","referrer":"","user_agent":"ua"}`,
	)

	got := store.Tally()
	want := map[string]int{"twitter": 2, "direct": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tally() = %v, want %v", got, want)
	}
}

func TestTallySkipsBadLines(t *testing.T) {
	store := setupStore(t)
	writeStore(t, store,
		`{"source":"newsletter"}`,
		`{truncated`,
		``,
		`null`,
		`[1,2,3]`,
		`not json at all`,
		`{"source":"newsletter"}`,
	)

	got := store.Tally()
	want := map[string]int{"newsletter": 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tally() = %v, want %v", got, want)
	}
}

func TestTallyEmptySourceLabel(t *testing.T) {
	// A present but empty source is its own label; only an absent field
	// falls back to "direct".
	store := setupStore(t)
	writeStore(t, store,
		`{"source":""}`,
		`{"ip":"10.0.0.1"}`,
	)

	got := store.Tally()
	want := map[string]int{"": 1, "direct": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tally() = %v, want %v", got, want)
	}
}

func TestTallyMissingStore(t *testing.T) {
	store := setupStore(t)
	got := store.Tally()
	if got == nil {
		t.Fatalf("Tally() = nil, want empty map")
	}
	if len(got) != 0 {
		t.Errorf("Tally() = %v, want empty", got)
	}
}

func TestRecordAppendsOneLine(t *testing.T) {
	store := setupStore(t)
	if err := store.Record("203.0.113.5", "newsletter", "https://example.org/", "Mozilla/5.0"); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	raw, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("read store: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("store has %d lines, want 1", len(lines))
	}

	var event SourceEvent
	if err := json.Unmarshal([]byte(lines[0]), &event); err != nil {
		t.Fatalf("decode appended line: %v", err)
	}
	if event.IP != "203.0.113.5" {
		t.Errorf("IP = %q, want %q", event.IP, "203.0.113.5")
	}
	if event.Source != "newsletter" {
		t.Errorf("Source = %q, want %q", event.Source, "newsletter")
	}
	if event.Referrer != "https://example.org/" {
		t.Errorf("Referrer = %q, want %q", event.Referrer, "https://example.org/")
	}
	if event.UserAgent != "Mozilla/5.0" {
		t.Errorf("UserAgent = %q, want %q", event.UserAgent, "Mozilla/5.0")
	}
	if _, err := time.Parse(time.RFC3339, event.Timestamp); err != nil {
		t.Errorf("Timestamp %q is not RFC 3339: %v", event.Timestamp, err)
	}
}

func TestRecordDefaultsEmptySource(t *testing.T) {
	store := setupStore(t)
	if err := store.Record("10.0.0.1", "", "", ""); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	got := store.Tally()
	want := map[string]int{"direct": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tally() = %v, want %v", got, want)
	}
}

func TestRecordCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "sources.jsonl")
	store := NewSourceStore(path)

	if err := store.Record("10.0.0.1", "rss", "", ""); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("store file not created: %v", err)
	}
}

func TestRecordAppendsWithoutTruncating(t *testing.T) {
	store := setupStore(t)
	for i, source := range []string{"twitter", "twitter", "hn"} {
		if err := store.Record("10.0.0.1", source, "", ""); err != nil {
			t.Fatalf("Record() %d error = %v", i, err)
		}
	}

	got := store.Tally()
	want := map[string]int{"twitter": 2, "hn": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tally() = %v, want %v", got, want)
	}
}
