package nbsave

import (
	"time"

	"go.uber.org/zap"
)

// Option configures an Exporter.
type Option func(*Exporter)

// exporterConfig holds internal configuration for Exporter.
type exporterConfig struct {
	assetPath     string
	styleInput    string
	resolvedStyle string
	codeStyle     string
	templateSet   string
	location      *time.Location
	imageDir      string
	removeTags    []string
	namespace     Namespace
	now           func() time.Time
	timeFormat    string
	date          string
	title         string
}

// DefaultHiddenTag marks cells dropped from instructions exports.
const DefaultHiddenTag = "hide_cell"

// defaultDate renders the save date of evidence exports.
const defaultDate = "auto"

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Exporter) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithAssetPath sets a custom directory for styles and templates.
// Assets not found there fall back to the embedded ones.
func WithAssetPath(path string) Option {
	return func(e *Exporter) {
		e.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom asset loader. It takes precedence over
// WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(e *Exporter) {
		e.publicAssetLoader = loader
	}
}

// WithStyle sets the CSS style by name ("default", "compact") or by file
// path (anything containing a path separator).
func WithStyle(style string) Option {
	return func(e *Exporter) {
		e.cfg.styleInput = style
	}
}

// WithCodeStyle sets the chroma style of highlighted code, e.g. "monokai".
// Unknown names fall back to the default.
func WithCodeStyle(name string) Option {
	return func(e *Exporter) {
		e.cfg.codeStyle = name
	}
}

// WithTemplateSet renders both modes with the named template set instead of
// the mode's own ("evidence" or "instructions").
func WithTemplateSet(name string) Option {
	return func(e *Exporter) {
		e.cfg.templateSet = name
	}
}

// WithLocation sets the zone finish times are shown in. Default: time.Local.
func WithLocation(loc *time.Location) Option {
	return func(e *Exporter) {
		e.cfg.location = loc
	}
}

// WithImageDir sets the directory relative <img> sources are read from.
// It overrides Input.SourceDir.
func WithImageDir(dir string) Option {
	return func(e *Exporter) {
		e.cfg.imageDir = dir
	}
}

// WithRemoveTags sets the tags whose cells instructions exports drop.
// Default: ["hide_cell"].
func WithRemoveTags(tags ...string) Option {
	return func(e *Exporter) {
		e.cfg.removeTags = tags
	}
}

// WithNamespace sets the placeholder values used when Input.Namespace is nil.
func WithNamespace(ns Namespace) Option {
	return func(e *Exporter) {
		e.cfg.namespace = ns
	}
}

// WithNow sets the clock used for the save date. Intended for tests.
func WithNow(now func() time.Time) Option {
	return func(e *Exporter) {
		if now != nil {
			e.cfg.now = now
		}
	}
}

// WithTimeFormat sets the format of finish times using date tokens
// (YYYY, MM, DD, HH, mm, ss, ...) or a preset name.
// Default: "HH:mm:ss YYYY-MM-DD".
func WithTimeFormat(format string) Option {
	return func(e *Exporter) {
		e.cfg.timeFormat = format
	}
}

// WithDate sets the save date shown in evidence headers: "auto",
// "auto:FORMAT" or a literal value. Default: "auto".
func WithDate(date string) Option {
	return func(e *Exporter) {
		e.cfg.date = date
	}
}

// WithTitle sets the document title. Default: the notebook's title metadata,
// then its first top-level heading, then its file name.
func WithTitle(title string) Option {
	return func(e *Exporter) {
		e.cfg.title = title
	}
}
