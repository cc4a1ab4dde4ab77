package analytics

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrAppend reports a failure after the tracking store was already open. The
// append was attempted and the event may be lost, but per the write path's
// best-effort contract the caller's request should still succeed. Failures
// before the store could be opened are returned as ordinary errors.
var ErrAppend = errors.New("analytics: source append failed")

// SourceStore reads and appends traffic-source events in a JSON-lines file.
// The file is append-only and never rewritten. Every append is a single
// write of one complete line, so concurrent recorders cannot interleave.
type SourceStore struct {
	path string
}

// NewSourceStore returns a store over the JSON-lines file at path. The file
// does not need to exist yet.
func NewSourceStore(path string) *SourceStore {
	return &SourceStore{path: path}
}

// Path returns the store's file path.
func (s *SourceStore) Path() string { return s.path }

// Tally counts recorded events grouped by source label. Records without a
// source field count under "direct"; a present but empty source counts under
// the empty label. Lines that are blank, are not JSON objects, or fail to
// decode are skipped. A missing store yields an empty tally.
func (s *SourceStore) Tally() map[string]int {
	tally := make(map[string]int)
	f, err := os.Open(s.path)
	if err != nil {
		return tally
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || !strings.HasPrefix(line, "{") {
			continue
		}
		var rec struct {
			Source *string `json:"source"`
		}
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			continue
		}
		label := "direct"
		if rec.Source != nil {
			label = *rec.Source
		}
		tally[label]++
	}
	return tally
}

// Record appends one event line for ip, stamped with the current time. An
// empty source is stored as "direct". Errors before the store is open mean
// the append could not be attempted and are returned directly; later
// failures are wrapped in ErrAppend so callers can log them and move on.
func (s *SourceStore) Record(ip, source, referrer, userAgent string) error {
	if source == "" {
		source = "direct"
	}
	event := SourceEvent{
		Timestamp: time.Now().Format(time.RFC3339),
		IP:        ip,
		Source:    source,
		Referrer:  referrer,
		UserAgent: userAgent,
	}
	line, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("analytics: encode event: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("analytics: create store dir: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("analytics: open store: %w", err)
	}

	_, werr := f.Write(append(line, '\n'))
	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("%w: %v", ErrAppend, werr)
	}
	if cerr != nil {
		return fmt.Errorf("%w: %v", ErrAppend, cerr)
	}
	return nil
}
