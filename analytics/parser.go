package analytics

import (
	"regexp"
	"strconv"
	"strings"
)

// lineRe matches the nginx combined log format. Anchored at the start only;
// trailing text after the user-agent quote does not invalidate a line.
var lineRe = regexp.MustCompile(`^(\S+) - - \[(.*?)\] "(.*?)" (\d+) (\d+) "(.*?)" "(.*?)"`)

// ParseLine parses one access-log line. It reports ok=false for lines that do
// not match the expected shape; callers skip those without treating them as
// errors. The request line is split on whitespace and must yield exactly
// three tokens to populate method, path, and protocol. Any other token count
// leaves all three empty while the entry itself stays valid.
func ParseLine(line string) (LogEntry, bool) {
	m := lineRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return LogEntry{}, false
	}
	status, err := strconv.Atoi(m[4])
	if err != nil {
		return LogEntry{}, false
	}
	size, err := strconv.Atoi(m[5])
	if err != nil {
		return LogEntry{}, false
	}

	entry := LogEntry{
		IP:        m[1],
		Timestamp: m[2],
		Status:    status,
		Bytes:     size,
		Referrer:  m[6],
		UserAgent: m[7],
	}
	if tokens := strings.Fields(m[3]); len(tokens) == 3 {
		entry.Method = tokens[0]
		entry.Path = tokens[1]
		entry.Protocol = tokens[2]
	}
	return entry, true
}
