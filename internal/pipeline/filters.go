package pipeline

import (
	"html/template"
	"regexp"
	"strings"
	"time"

	"github.com/abalbekov/go-nbsave/internal/transform"
)

// State is the mutable state of one conversion. Templates reach it only
// through the filter table, and cells are rendered in document order, so
// heading numbers and timing slots follow the notebook.
type State struct {
	Headings *transform.HeaderCounter
	Timing   *transform.Timing
	Images   *transform.ImageEmbedder

	// MissingImages counts image sources that could not be read.
	MissingImages int
}

// NewState returns fresh conversion state. Finish times are shown in loc
// using layout (a Go time layout; empty means the default).
func NewState(loc *time.Location, layout string) *State {
	timing := transform.NewTiming(loc)
	timing.Layout = layout
	return &State{
		Headings: transform.NewHeaderCounter(),
		Timing:   timing,
		Images:   &transform.ImageEmbedder{},
	}
}

// Filters returns the functions available to templates:
//
//	storeStartTime, storeEndTime   remember a cell's timestamps, render ""
//	renderElapsed                  interval between them, e.g. "1.042s"
//	renderEndLocal                 finish time in the display zone
//	numberHeadings                 "## Intro" -> "## 1 Intro"
//	fixTocAnchors                  strip toc2 outline suffixes from hrefs
//	embedImages                    inline local <img> files as data URIs
//	markdown                       markdown cell -> HTML
//	highlight                      code cell -> highlighted HTML
//	outputText                     output text without ANSI escapes
//	join                           strings.Join
func Filters(state *State, md MarkdownRenderer, hl CodeHighlighter) template.FuncMap {
	return template.FuncMap{
		"storeStartTime": state.Timing.StoreStart,
		"storeEndTime":   state.Timing.StoreEnd,
		"renderElapsed":  state.Timing.RenderElapsed,
		"renderEndLocal": state.Timing.RenderEndLocal,
		"numberHeadings": func(markdown string) string {
			return transform.NumberHeadings(state.Headings, markdown)
		},
		"fixTocAnchors": transform.FixTocAnchors,
		"embedImages":   state.Images.Embed,
		"markdown":      md.Render,
		"highlight":     hl.Highlight,
		"outputText":    StripANSI,
		"join":          strings.Join,
	}
}

// ansiEscape matches CSI sequences (colors, cursor moves), OSC sequences
// (hyperlinks, titles) and two-byte escapes.
var ansiEscape = regexp.MustCompile(`\x1b\[[0-?]*[ -/]*[@-~]|\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)|\x1b[@-Z\\-_]`)

// StripANSI removes terminal escape sequences, as found in tracebacks and
// colored stream output.
func StripANSI(s string) string {
	if !strings.Contains(s, "\x1b") {
		return s
	}
	return ansiEscape.ReplaceAllString(s, "")
}
