package nbsave

import (
	"fmt"
	"strings"

	"github.com/abalbekov/go-nbsave/internal/transform"
)

// Mode selects the kind of document an export produces.
type Mode string

// Export modes.
const (
	// ModeEvidence keeps outputs and annotates every executed code cell with
	// its finish time and duration.
	ModeEvidence Mode = "evidence"

	// ModeInstructions drops hidden cells and outputs, substitutes {name}
	// placeholders in code and numbers markdown headings.
	ModeInstructions Mode = "instructions"
)

// ParseMode converts a mode name (case-insensitive) to a Mode.
func ParseMode(name string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(name)))
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

// Validate checks that m is a known mode.
func (m Mode) Validate() error {
	switch m {
	case ModeEvidence, ModeInstructions:
		return nil
	default:
		return fmt.Errorf("%w: %q (must be evidence or instructions)", ErrInvalidMode, string(m))
	}
}

// String returns the mode name.
func (m Mode) String() string { return string(m) }

// Namespace resolves {name} placeholders in code cells.
type Namespace = transform.Namespace

// Vars is a Namespace backed by a map.
type Vars = transform.MapNamespace

// EnvVars is a Namespace backed by the process environment.
type EnvVars = transform.EnvNamespace

// ChainNamespace consults each Namespace in order; the first hit wins.
type ChainNamespace = transform.ChainNamespace

// Input contains export parameters.
type Input struct {
	Notebook   []byte    // nbformat v4 JSON (required)
	Mode       Mode      // ModeEvidence or ModeInstructions (required)
	SourceName string    // Shown in the document header, e.g. "run.ipynb" (optional)
	SourceDir  string    // Resolves relative <img> paths (optional, default: working directory)
	Namespace  Namespace // Placeholder values for instructions (optional)
}

// Validate checks that required fields are present and valid.
func (in *Input) Validate() error {
	if len(in.Notebook) == 0 {
		return ErrEmptyNotebook
	}
	return in.Mode.Validate()
}

// Result is the outcome of an export.
type Result struct {
	HTML     []byte // Rendered document
	Title    string // Resolved document title
	RecordID string // Unique ID of this export, shown in evidence headers
	Cells    int    // Cells rendered, after hidden cells were dropped

	// UntimedCells counts executed code cells without recorded execution
	// timestamps. Evidence exports show no timing for them.
	UntimedCells int

	// MissingImages counts local image sources that could not be read and
	// were left out of the document.
	MissingImages int
}
