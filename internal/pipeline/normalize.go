package pipeline

import (
	"context"
	"regexp"

	"github.com/abalbekov/go-nbsave/internal/notebook"
)

// crlfOrCR matches Windows and classic Mac line endings.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// LineEndings converts \r\n and \r in cell sources to \n, so that
// line-based rewrites such as heading numbering see every line.
type LineEndings struct{}

// Preprocess implements Preprocessor.
func (LineEndings) Preprocess(ctx context.Context, nb *notebook.Notebook) error {
	for _, cell := range nb.Cells {
		if err := ctx.Err(); err != nil {
			return err
		}
		cell.Source = notebook.MultilineString(normalizeLineEndings(cell.Source.String()))
	}
	return nil
}

func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

var _ Preprocessor = LineEndings{}
