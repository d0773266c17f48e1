package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/abalbekov/go-nbsave/internal/notebook"
	"github.com/abalbekov/go-nbsave/internal/transform"
)

// Preprocessor mutates a notebook before it is rendered.
type Preprocessor interface {
	Preprocess(ctx context.Context, nb *notebook.Notebook) error
}

// RunPreprocessors applies pps to nb in order, stopping at the first error.
func RunPreprocessors(ctx context.Context, nb *notebook.Notebook, pps ...Preprocessor) error {
	for _, pp := range pps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := pp.Preprocess(ctx, nb); err != nil {
			return err
		}
	}
	return nil
}

// TagRemoval drops every cell carrying one of Tags.
type TagRemoval struct {
	Tags []string
}

// Preprocess implements Preprocessor.
func (p *TagRemoval) Preprocess(_ context.Context, nb *notebook.Notebook) error {
	if len(p.Tags) == 0 {
		return nil
	}

	kept := make([]*notebook.Cell, 0, len(nb.Cells))
	for _, cell := range nb.Cells {
		if !hasAnyTag(cell, p.Tags) {
			kept = append(kept, cell)
		}
	}
	nb.Cells = kept
	return nil
}

func hasAnyTag(cell *notebook.Cell, tags []string) bool {
	for _, tag := range tags {
		if cell.HasTag(tag) {
			return true
		}
	}
	return false
}

// ClearOutput removes outputs and execution counts from code cells.
type ClearOutput struct{}

// Preprocess implements Preprocessor.
func (ClearOutput) Preprocess(_ context.Context, nb *notebook.Notebook) error {
	for _, cell := range nb.Cells {
		if !cell.IsCode() {
			continue
		}
		cell.Outputs = nil
		cell.ExecutionCount = nil
	}
	return nil
}

// CellHook rewrites cell sources for instructions exports:
//   - code cells get {name} placeholders substituted from Namespace
//   - markdown cells get local images inlined and headings numbered
//   - markdown cells flagged with toc get their anchors fixed
//
// Headings must be shared with the rest of the conversion so numbering runs
// across cells.
type CellHook struct {
	Namespace transform.Namespace
	Headings  *transform.HeaderCounter
	Images    *transform.ImageEmbedder
	Logger    *zap.Logger
}

// ProcessCell applies the hook to one cell and returns it.
func (h *CellHook) ProcessCell(cell *notebook.Cell) *notebook.Cell {
	if h.Headings == nil {
		h.Headings = transform.NewHeaderCounter()
	}

	switch {
	case cell.IsCode():
		cell.Source = notebook.MultilineString(transform.Substitute(cell.Source.String(), h.Namespace))

	case cell.IsMarkdown():
		src := h.images().Embed(cell.Source.String())
		src = transform.NumberHeadings(h.Headings, src)
		if cell.Metadata.TOC {
			src = transform.FixTocAnchors(src)
		}
		cell.Source = notebook.MultilineString(src)
	}
	return cell
}

// Preprocess implements Preprocessor.
func (h *CellHook) Preprocess(ctx context.Context, nb *notebook.Notebook) error {
	logger := h.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	for i, cell := range nb.Cells {
		if err := ctx.Err(); err != nil {
			return err
		}
		nb.Cells[i] = h.ProcessCell(cell)
		logger.Debug("cell processed", zap.Int("index", i), zap.String("type", cell.CellType))
	}
	return nil
}

func (h *CellHook) images() *transform.ImageEmbedder {
	if h.Images == nil {
		return &transform.ImageEmbedder{}
	}
	return h.Images
}

// Compile-time interface checks.
var (
	_ Preprocessor = (*TagRemoval)(nil)
	_ Preprocessor = ClearOutput{}
	_ Preprocessor = (*CellHook)(nil)
)
