package analytics

import (
	"sort"
	"strings"

	"github.com/nginsight/logboard/logtail"
)

// DefaultWindow bounds how many trailing log lines a stats pass scans.
const DefaultWindow = 1000

const (
	rankingSize  = 10
	recentWindow = 20
)

// staticSuffixes lists the asset extensions excluded from page rankings.
var staticSuffixes = []string{".ico", ".png", ".jpg", ".css", ".js"}

// Analyzer computes visit statistics from a single access log. It holds only
// configuration; every call re-reads the file, so results always reflect
// what is on disk at request time.
type Analyzer struct {
	logPath string
	window  int
}

// NewAnalyzer returns an analyzer over the log at logPath. A window of zero
// or less falls back to DefaultWindow.
func NewAnalyzer(logPath string, window int) *Analyzer {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Analyzer{logPath: logPath, window: window}
}

// Window returns the configured trailing-window size.
func (a *Analyzer) Window() int { return a.window }

// RecentEntries reads the last limit lines of the log and returns the ones
// that parse, most recent first. A missing or unreadable log yields an empty
// slice rather than an error.
func (a *Analyzer) RecentEntries(limit int) []LogEntry {
	lines, err := logtail.Read(a.logPath, limit)
	if err != nil {
		// An unreadable log counts as empty data, not a failure.
		lines = nil
	}
	entries := make([]LogEntry, 0, len(lines))
	for i := len(lines) - 1; i >= 0; i-- {
		if entry, ok := ParseLine(lines[i]); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// Stats aggregates the trailing window of the log. Unparseable lines are
// excluded from every figure. The summary's Sources map is left empty here;
// callers that also hold a SourceStore attach its tally.
func (a *Analyzer) Stats() Summary {
	entries := a.RecentEntries(a.window)

	ips := newCounter()
	pages := newCounter()
	for _, entry := range entries {
		ips.add(entry.IP)
		if !isStaticAsset(entry.Path) {
			pages.add(entry.Path)
		}
	}

	recent := entries
	if len(recent) > recentWindow {
		recent = recent[:recentWindow]
	}

	return Summary{
		TotalRequests:  len(entries),
		UniqueIPs:      ips.distinct(),
		TopIPs:         ips.top(rankingSize),
		TopPages:       pages.top(rankingSize),
		RecentVisitors: recent,
		Sources:        map[string]int{},
	}
}

// isStaticAsset reports whether path ends in an extension excluded from the
// page ranking. The empty path (lenient request-line fallback) is not an
// asset and ranks like any other page.
func isStaticAsset(path string) bool {
	for _, suffix := range staticSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

// counter accumulates frequencies while remembering first-seen order, so
// equal counts rank deterministically in scan order.
type counter struct {
	counts map[string]int
	seen   map[string]int
}

func newCounter() *counter {
	return &counter{
		counts: make(map[string]int),
		seen:   make(map[string]int),
	}
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.seen[key] = len(c.seen)
	}
	c.counts[key]++
}

func (c *counter) distinct() int { return len(c.counts) }

// top returns the n highest-count keys, count descending, ties broken by
// first-seen order.
func (c *counter) top(n int) []PairCount {
	ranked := make([]PairCount, 0, len(c.counts))
	for key, count := range c.counts {
		ranked = append(ranked, PairCount{Name: key, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return c.seen[ranked[i].Name] < c.seen[ranked[j].Name]
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
