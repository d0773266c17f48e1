package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrMarkdownRender indicates a markdown cell could not be converted to HTML.
var ErrMarkdownRender = errors.New("markdown rendering failed")

// MarkdownRenderer converts one markdown cell to an HTML fragment.
type MarkdownRenderer interface {
	Render(markdown string) (template.HTML, error)
}

// GoldmarkRenderer converts markdown cells using goldmark (pure Go).
//
// Heading IDs are tracked across calls, so a renderer belongs to a single
// conversion: two cells with the same heading get "Intro" and "Intro-1".
type GoldmarkRenderer struct {
	md  goldmark.Markdown
	ids *HeadingIDs
}

// NewGoldmarkRenderer creates a GoldmarkRenderer with GFM extensions and
// syntax highlighting. codeStyle names the chroma style for fenced code;
// colors come from the style sheet since classes are emitted.
func NewGoldmarkRenderer(codeStyle string) *GoldmarkRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithStyle(resolveCodeStyle(codeStyle)),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			// Markdown cells carry raw HTML, including inlined <img> tags.
			html.WithUnsafe(),
		),
	)
	return &GoldmarkRenderer{md: md, ids: NewHeadingIDs()}
}

// Render converts markdown to an HTML fragment.
func (r *GoldmarkRenderer) Render(markdown string) (template.HTML, error) {
	var buf bytes.Buffer
	pc := parser.NewContext(parser.WithIDs(r.ids))
	if err := r.md.Convert([]byte(markdown), &buf, parser.WithContext(pc)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMarkdownRender, err)
	}
	return template.HTML(buf.String()), nil // #nosec G203 -- notebook content is trusted
}

// HeadingIDs generates heading anchors the way notebook front ends do, so
// links written in a notebook keep working in the export. Whitespace runs
// become '-', case and punctuation are kept, and repeats get a numeric
// suffix.
type HeadingIDs struct {
	used map[string]bool
}

// NewHeadingIDs returns an empty ID registry.
func NewHeadingIDs() *HeadingIDs {
	return &HeadingIDs{used: make(map[string]bool)}
}

// Generate implements parser.IDs.
func (s *HeadingIDs) Generate(value []byte, kind ast.NodeKind) []byte {
	id := HeadingID(string(value))
	if id == "" {
		if kind == ast.KindHeading {
			id = "heading"
		} else {
			id = "id"
		}
	}

	if !s.used[id] {
		s.used[id] = true
		return []byte(id)
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", id, i)
		if !s.used[candidate] {
			s.used[candidate] = true
			return []byte(candidate)
		}
	}
}

// Put implements parser.IDs.
func (s *HeadingIDs) Put(value []byte) {
	s.used[string(value)] = true
}

// HeadingID converts heading text to its anchor. Inline code and emphasis
// markers are dropped.
func HeadingID(text string) string {
	text = strings.Map(func(r rune) rune {
		if r == '`' || r == '*' {
			return -1
		}
		return r
	}, text)
	return strings.Join(strings.Fields(text), "-")
}

var _ parser.IDs = (*HeadingIDs)(nil)
