package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/nginsight/logboard/analytics"
)

// Renderer writes a traffic summary to an output stream.
type Renderer interface {
	Render(s analytics.Summary) error
}

// ---------------------------------------------------------------------------
// Text Renderer (colorized terminal output)
// ---------------------------------------------------------------------------

var (
	styleTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true) // cyan bold
	styleHead  = lipgloss.NewStyle().Bold(true)
	styleDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")) // gray
	styleCount = lipgloss.NewStyle().Foreground(lipgloss.Color("220")) // yellow
)

// TextRenderer prints a summary as styled sections for the terminal.
type TextRenderer struct {
	w io.Writer
}

// NewTextRenderer returns a Renderer that writes colorized text to w.
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

func (r *TextRenderer) Render(s analytics.Summary) error {
	fmt.Fprintln(r.w, styleTitle.Render("logboard summary"))
	fmt.Fprintf(r.w, "  %s %s   %s %s\n\n",
		styleDim.Render("requests:"), styleCount.Render(strconv.Itoa(s.TotalRequests)),
		styleDim.Render("unique visitors:"), styleCount.Render(strconv.Itoa(s.UniqueIPs)))

	r.renderRanking("Top visitors", s.TopIPs)
	r.renderRanking("Top pages", s.TopPages)
	r.renderSources(s.Sources)

	fmt.Fprintln(r.w, styleHead.Render("Recent"))
	if len(s.RecentVisitors) == 0 {
		fmt.Fprintf(r.w, "  %s\n", styleDim.Render("(no entries)"))
	}
	for _, e := range s.RecentVisitors {
		fmt.Fprintf(r.w, "  %s  %-15s %s %s\n",
			styleDim.Render(e.Timestamp), e.IP, e.Path, styleCount.Render(strconv.Itoa(e.Status)))
	}
	return nil
}

func (r *TextRenderer) renderRanking(title string, pairs []analytics.PairCount) {
	fmt.Fprintln(r.w, styleHead.Render(title))
	if len(pairs) == 0 {
		fmt.Fprintf(r.w, "  %s\n", styleDim.Render("(no entries)"))
	}
	for i, p := range pairs {
		fmt.Fprintf(r.w, "  %s %-30s %s\n",
			styleDim.Render(fmt.Sprintf("%2d.", i+1)), p.Name, styleCount.Render(strconv.Itoa(p.Count)))
	}
	fmt.Fprintln(r.w)
}

func (r *TextRenderer) renderSources(sources map[string]int) {
	fmt.Fprintln(r.w, styleHead.Render("Sources"))
	if len(sources) == 0 {
		fmt.Fprintf(r.w, "  %s\n", styleDim.Render("(no events)"))
	}
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if sources[names[i]] != sources[names[j]] {
			return sources[names[i]] > sources[names[j]]
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		label := name
		if label == "" {
			label = "(blank)"
		}
		fmt.Fprintf(r.w, "  %-20s %s\n", label, styleCount.Render(strconv.Itoa(sources[name])))
	}
	fmt.Fprintln(r.w)
}

// ---------------------------------------------------------------------------
// JSON Renderer (structured output for piping)
// ---------------------------------------------------------------------------

// JSONRenderer prints the summary as one indented JSON document.
type JSONRenderer struct {
	enc *json.Encoder
}

// NewJSONRenderer returns a Renderer that writes JSON to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return &JSONRenderer{enc: enc}
}

func (r *JSONRenderer) Render(s analytics.Summary) error {
	return r.enc.Encode(s)
}
