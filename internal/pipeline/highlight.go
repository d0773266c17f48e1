package pipeline

import (
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrHighlight indicates a code cell could not be highlighted.
var ErrHighlight = errors.New("syntax highlighting failed")

// DefaultCodeStyle is the chroma style used when none is configured.
const DefaultCodeStyle = "github"

// CodeHighlighter converts the source of a code cell to highlighted HTML.
type CodeHighlighter interface {
	Highlight(source string) (template.HTML, error)
}

// ChromaHighlighter highlights code cells with chroma, emitting CSS classes.
type ChromaHighlighter struct {
	lexer     chroma.Lexer
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewChromaHighlighter creates a highlighter for the notebook language.
// Unknown languages fall back to plain text.
func NewChromaHighlighter(language, codeStyle string) *ChromaHighlighter {
	lexer := lexers.Get(strings.ToLower(language))
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return &ChromaHighlighter{
		lexer:     chroma.Coalesce(lexer),
		style:     styles.Get(resolveCodeStyle(codeStyle)),
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
	}
}

// Highlight implements CodeHighlighter.
func (h *ChromaHighlighter) Highlight(source string) (template.HTML, error) {
	it, err := h.lexer.Tokenise(nil, source)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHighlight, err)
	}

	var sb strings.Builder
	if err := h.formatter.Format(&sb, h.style, it); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHighlight, err)
	}
	return template.HTML(sb.String()), nil // #nosec G203 -- chroma escapes token text
}

// CSS returns the style sheet for the classes emitted by Highlight and by
// fenced code in markdown cells.
func (h *ChromaHighlighter) CSS() (string, error) {
	var sb strings.Builder
	if err := h.formatter.WriteCSS(&sb, h.style); err != nil {
		return "", fmt.Errorf("%w: writing CSS: %v", ErrHighlight, err)
	}
	return sb.String(), nil
}

// CodeStyles lists the available chroma style names.
func CodeStyles() []string {
	return styles.Names()
}

func resolveCodeStyle(name string) string {
	if _, ok := styles.Registry[name]; ok {
		return name
	}
	return DefaultCodeStyle
}
