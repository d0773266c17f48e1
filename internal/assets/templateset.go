package assets

// TemplateSet holds the HTML template of one export mode.
type TemplateSet struct {
	Name  string // Identifier (name or directory path)
	Index string // Document template, html/template syntax
}

// IndexFile is the required file of every template set.
const IndexFile = "index.html"

// Built-in template set names, one per export mode.
const (
	EvidenceTemplateSetName     = "evidence"
	InstructionsTemplateSetName = "instructions"
)

// DefaultStyleName is the name of the built-in CSS style.
const DefaultStyleName = "default"
