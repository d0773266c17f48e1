// Package notebook reads nbformat v4 notebook documents.
//
// Only the parts the exporters use are modelled; everything else in the
// document is ignored on read.
package notebook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Sentinel errors for notebook reading.
var (
	ErrReadNotebook      = errors.New("failed to read notebook")
	ErrParseNotebook     = errors.New("failed to parse notebook")
	ErrUnsupportedFormat = errors.New("unsupported notebook format")
	ErrEmptyNotebook     = errors.New("notebook content cannot be empty")
)

// SupportedMajorVersion is the only nbformat major version accepted.
const SupportedMajorVersion = 4

// Cell types.
const (
	CellCode     = "code"
	CellMarkdown = "markdown"
	CellRaw      = "raw"
)

// Execution metadata keys recorded by JupyterLab's "record timing" setting.
const (
	ExecuteInputKey = "iopub.execute_input"
	ExecuteReplyKey = "shell.execute_reply"
)

// Notebook is an nbformat v4 document.
type Notebook struct {
	Metadata      Metadata `json:"metadata"`
	NBFormat      int      `json:"nbformat"`
	NBFormatMinor int      `json:"nbformat_minor"`
	Cells         []*Cell  `json:"cells"`
}

// Metadata is the notebook-level metadata.
type Metadata struct {
	Title        string        `json:"title,omitempty"`
	Kernelspec   *Kernelspec   `json:"kernelspec,omitempty"`
	LanguageInfo *LanguageInfo `json:"language_info,omitempty"`
}

// Kernelspec names the kernel that produced the notebook.
type Kernelspec struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Language    string `json:"language,omitempty"`
}

// LanguageInfo describes the kernel language.
type LanguageInfo struct {
	Name          string `json:"name"`
	Version       string `json:"version,omitempty"`
	FileExtension string `json:"file_extension,omitempty"`
	PygmentsLexer string `json:"pygments_lexer,omitempty"`
}

// Language returns the best guess at the notebook's programming language.
func (m Metadata) Language() string {
	switch {
	case m.LanguageInfo != nil && m.LanguageInfo.Name != "":
		return m.LanguageInfo.Name
	case m.Kernelspec != nil && m.Kernelspec.Language != "":
		return m.Kernelspec.Language
	default:
		return ""
	}
}

// Cell is one code, markdown or raw cell.
type Cell struct {
	ID             string          `json:"id,omitempty"`
	CellType       string          `json:"cell_type"`
	Source         MultilineString `json:"source"`
	Metadata       CellMetadata    `json:"metadata"`
	ExecutionCount *int            `json:"execution_count,omitempty"`
	Outputs        []*Output       `json:"outputs,omitempty"`
}

// IsCode reports whether c is a code cell.
func (c *Cell) IsCode() bool { return c.CellType == CellCode }

// IsMarkdown reports whether c is a markdown cell.
func (c *Cell) IsMarkdown() bool { return c.CellType == CellMarkdown }

// HasTag reports whether the cell carries tag.
func (c *Cell) HasTag(tag string) bool {
	for _, t := range c.Metadata.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// CellMetadata holds the cell metadata keys the exporters read.
type CellMetadata struct {
	Tags      []string       `json:"tags,omitempty"`
	TOC       Flag           `json:"toc,omitempty"`
	Execution map[string]any `json:"execution,omitempty"`
}

// ExecutionStarted returns the recorded execution start timestamp, if any.
func (m CellMetadata) ExecutionStarted() string {
	s, _ := m.Execution[ExecuteInputKey].(string)
	return s
}

// ExecutionFinished returns the recorded execution end timestamp, if any.
func (m CellMetadata) ExecutionFinished() string {
	s, _ := m.Execution[ExecuteReplyKey].(string)
	return s
}

// Flag is a metadata switch. Extensions write booleans, but any JSON value
// is accepted and judged by truthiness: false, null, 0, "" and empty
// containers are off.
type Flag bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*f = false
	case bool:
		*f = Flag(x)
	case float64:
		*f = x != 0
	case string:
		*f = x != ""
	case []any:
		*f = len(x) > 0
	case map[string]any:
		*f = len(x) > 0
	}
	return nil
}

// Output types.
const (
	OutputStream        = "stream"
	OutputExecuteResult = "execute_result"
	OutputDisplayData   = "display_data"
	OutputError         = "error"
)

// Output is one entry of a code cell's outputs list.
type Output struct {
	OutputType     string                     `json:"output_type"`
	Name           string                     `json:"name,omitempty"`
	Text           MultilineString            `json:"text,omitempty"`
	Data           map[string]json.RawMessage `json:"data,omitempty"`
	ExecutionCount *int                       `json:"execution_count,omitempty"`
	EName          string                     `json:"ename,omitempty"`
	EValue         string                     `json:"evalue,omitempty"`
	Traceback      []string                   `json:"traceback,omitempty"`
}

// DataText returns the text of a mime bundle entry, or "" when absent.
// Structured entries (e.g. application/json) are returned as raw JSON.
func (o *Output) DataText(mime string) string {
	raw, ok := o.Data[mime]
	if !ok {
		return ""
	}
	var text MultilineString
	if err := json.Unmarshal(raw, &text); err != nil {
		return string(raw)
	}
	return text.String()
}

// HasData reports whether the mime bundle carries mime.
func (o *Output) HasData(mime string) bool {
	_, ok := o.Data[mime]
	return ok
}

// MultilineString is a notebook text field. On disk it is either a single
// string or a list of lines that concatenate to the full text.
type MultilineString string

// UnmarshalJSON accepts both a JSON string and a list of strings.
func (m *MultilineString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = ""
		return nil
	}

	if data[0] == '[' {
		var lines []string
		if err := json.Unmarshal(data, &lines); err != nil {
			return err
		}
		*m = MultilineString(strings.Join(lines, ""))
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*m = MultilineString(s)
	return nil
}

// String returns the text.
func (m MultilineString) String() string { return string(m) }

// Read loads and parses a notebook from path.
func Read(path string) (*Notebook, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided notebook path
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadNotebook, err)
	}
	nb, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return nb, nil
}

// Parse decodes notebook JSON and checks its format version.
func Parse(data []byte) (*Notebook, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyNotebook
	}

	var nb Notebook
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseNotebook, err)
	}

	if nb.NBFormat != SupportedMajorVersion {
		return nil, fmt.Errorf("%w: nbformat %d (want %d)", ErrUnsupportedFormat, nb.NBFormat, SupportedMajorVersion)
	}

	for i, cell := range nb.Cells {
		if cell == nil {
			return nil, fmt.Errorf("%w: cell %d is null", ErrParseNotebook, i)
		}
		switch cell.CellType {
		case CellCode, CellMarkdown, CellRaw:
		default:
			return nil, fmt.Errorf("%w: cell %d has unknown type %q", ErrParseNotebook, i, cell.CellType)
		}
	}

	return &nb, nil
}
