// Package analytics turns web-server access-log lines into visit statistics
// and tallies client-reported traffic sources from an append-only store.
package analytics

import "encoding/json"

// LogEntry is one parsed access-log line. The timestamp is kept as the raw
// bracketed text; nothing in the aggregation compares times, so it is never
// parsed into a time.Time.
type LogEntry struct {
	IP        string `json:"ip"`        // client token, any non-whitespace run
	Timestamp string `json:"timestamp"` // raw text between the brackets
	Method    string `json:"method"`    // empty unless the request line had exactly 3 tokens
	Path      string `json:"path"`
	Protocol  string `json:"-"` // carried for callers, not part of the wire format
	Status    int    `json:"status"`
	Bytes     int    `json:"bytes"`
	Referrer  string `json:"referrer"`
	UserAgent string `json:"user_agent"`
}

// PairCount is one ranking entry. It serializes as a two-element array,
// ["10.0.0.1", 3], which is the shape the dashboard consumes.
type PairCount struct {
	Name  string
	Count int
}

// MarshalJSON encodes the pair as [name, count].
func (p PairCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{p.Name, p.Count})
}

// UnmarshalJSON decodes a [name, count] array.
func (p *PairCount) UnmarshalJSON(data []byte) error {
	var (
		name  string
		count int
	)
	pair := []any{&name, &count}
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	p.Name = name
	p.Count = count
	return nil
}

// Summary is the aggregated view served by the stats endpoint and the CLI.
// Collections are always non-nil so the JSON form uses [] and {} rather
// than null.
type Summary struct {
	TotalRequests  int            `json:"total_requests"`
	UniqueIPs      int            `json:"unique_ips"`
	TopIPs         []PairCount    `json:"top_ips"`
	TopPages       []PairCount    `json:"top_pages"`
	RecentVisitors []LogEntry     `json:"recent_visitors"`
	Sources        map[string]int `json:"sources"`
}

// SourceEvent is one tracking-store record, stored as one JSON object per line.
type SourceEvent struct {
	Timestamp string `json:"timestamp"`
	IP        string `json:"ip"`
	Source    string `json:"source"`
	Referrer  string `json:"referrer"`
	UserAgent string `json:"user_agent"`
}
