package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"

	"github.com/abalbekov/go-nbsave/internal/assets"
)

// Sentinel errors for template rendering.
var (
	ErrTemplateParse  = errors.New("template parsing failed")
	ErrTemplateRender = errors.New("template rendering failed")
)

// DocumentRenderer renders a document with the filters of one conversion.
type DocumentRenderer interface {
	Render(ctx context.Context, doc *Document, funcs template.FuncMap) (string, error)
}

// TemplateRenderer executes the index template of a template set.
// It is safe for concurrent use: each Render works on a clone.
type TemplateRenderer struct {
	tmpl *template.Template
}

// NewTemplateRenderer parses the index template of ts. Filters are bound
// per conversion, so parsing uses throwaway ones with the same names.
func NewTemplateRenderer(ts *assets.TemplateSet) (*TemplateRenderer, error) {
	if ts == nil {
		return nil, fmt.Errorf("%w: nil template set", ErrTemplateParse)
	}

	parseFuncs := Filters(NewState(nil, ""), NewGoldmarkRenderer(""), NewChromaHighlighter("", ""))
	tmpl, err := template.New(ts.Name).Funcs(parseFuncs).Parse(ts.Index)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateParse, ts.Name, err)
	}
	return &TemplateRenderer{tmpl: tmpl}, nil
}

// Render executes the template for doc. Supports context cancellation via
// goroutine + select since html/template doesn't natively support context.
func (r *TemplateRenderer) Render(ctx context.Context, doc *Document, funcs template.FuncMap) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tmpl, err := r.tmpl.Clone()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	tmpl.Funcs(funcs)

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, doc); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrTemplateRender, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

var _ DocumentRenderer = (*TemplateRenderer)(nil)
