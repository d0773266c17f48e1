package pipeline

import (
	"html/template"
	"strconv"
	"strings"

	"github.com/abalbekov/go-nbsave/internal/notebook"
)

// Output kinds, in the order a mime bundle is searched.
const (
	OutputKindHTML   = "html"
	OutputKindImage  = "image"
	OutputKindText   = "text"
	OutputKindStream = "stream"
	OutputKindError  = "error"
)

// Document is the data a template set renders.
type Document struct {
	Title    string
	Mode     string
	Language string
	Source   string
	RecordID string
	SavedOn  string
	Cells    []*CellView
}

// DocumentInfo carries the document fields that do not come from cells.
type DocumentInfo struct {
	Title    string
	Mode     string
	Source   string
	RecordID string
	SavedOn  string
}

// CellView is one cell as seen by templates.
type CellView struct {
	Index    int
	Type     string
	Source   string
	Prompt   string
	Tags     []string
	TOC      bool
	Started  string
	Finished string
	Outputs  []*OutputView
}

// IsCode reports whether the cell is a code cell.
func (c *CellView) IsCode() bool { return c.Type == notebook.CellCode }

// IsMarkdown reports whether the cell is a markdown cell.
func (c *CellView) IsMarkdown() bool { return c.Type == notebook.CellMarkdown }

// IsRaw reports whether the cell is a raw cell.
func (c *CellView) IsRaw() bool { return c.Type == notebook.CellRaw }

// OutputView is one cell output. Exactly one of HTML, Image and Text is
// meaningful, chosen by Kind.
type OutputView struct {
	Kind  string
	Name  string
	Text  string
	HTML  template.HTML
	Image template.URL
}

// NewDocument builds the view model of nb. Cells are numbered from 1 in
// their current order, after preprocessing.
func NewDocument(nb *notebook.Notebook, info DocumentInfo) *Document {
	doc := &Document{
		Title:    info.Title,
		Mode:     info.Mode,
		Language: nb.Metadata.Language(),
		Source:   info.Source,
		RecordID: info.RecordID,
		SavedOn:  info.SavedOn,
		Cells:    make([]*CellView, 0, len(nb.Cells)),
	}
	for i, cell := range nb.Cells {
		doc.Cells = append(doc.Cells, newCellView(i+1, cell))
	}
	return doc
}

func newCellView(index int, cell *notebook.Cell) *CellView {
	view := &CellView{
		Index:    index,
		Type:     cell.CellType,
		Source:   cell.Source.String(),
		Prompt:   " ",
		Tags:     cell.Metadata.Tags,
		TOC:      bool(cell.Metadata.TOC),
		Started:  cell.Metadata.ExecutionStarted(),
		Finished: cell.Metadata.ExecutionFinished(),
	}
	if cell.ExecutionCount != nil {
		view.Prompt = strconv.Itoa(*cell.ExecutionCount)
	}
	for _, out := range cell.Outputs {
		if ov := newOutputView(out); ov != nil {
			view.Outputs = append(view.Outputs, ov)
		}
	}
	return view
}

// newOutputView picks the richest representation of out. It returns nil
// for bundles with nothing displayable.
func newOutputView(out *notebook.Output) *OutputView {
	switch out.OutputType {
	case notebook.OutputStream:
		return &OutputView{Kind: OutputKindStream, Name: out.Name, Text: out.Text.String()}

	case notebook.OutputError:
		text := strings.Join(out.Traceback, "\n")
		if text == "" {
			text = out.EName + ": " + out.EValue
		}
		return &OutputView{Kind: OutputKindError, Name: out.EName, Text: text}
	}

	switch {
	case out.HasData("text/html"):
		return &OutputView{Kind: OutputKindHTML, HTML: template.HTML(out.DataText("text/html"))} // #nosec G203 -- kernel output is trusted
	case out.HasData("image/svg+xml"):
		return &OutputView{Kind: OutputKindHTML, HTML: template.HTML(out.DataText("image/svg+xml"))} // #nosec G203 -- kernel output is trusted
	case out.HasData("image/png"):
		return &OutputView{Kind: OutputKindImage, Image: imageURL("image/png", out.DataText("image/png"))}
	case out.HasData("image/jpeg"):
		return &OutputView{Kind: OutputKindImage, Image: imageURL("image/jpeg", out.DataText("image/jpeg"))}
	case out.HasData("text/plain"):
		return &OutputView{Kind: OutputKindText, Text: out.DataText("text/plain")}
	default:
		return nil
	}
}

// imageURL builds a data URI from base64 bundle data, which nbformat may
// wrap across lines.
func imageURL(mime, payload string) template.URL {
	payload = strings.Join(strings.Fields(payload), "")
	return template.URL("data:" + mime + ";base64," + payload) // #nosec G203 -- base64 payload
}
