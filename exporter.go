package nbsave

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abalbekov/go-nbsave/internal/assets"
	"github.com/abalbekov/go-nbsave/internal/dateutil"
	"github.com/abalbekov/go-nbsave/internal/fileutil"
	"github.com/abalbekov/go-nbsave/internal/notebook"
	"github.com/abalbekov/go-nbsave/internal/pipeline"
	"github.com/abalbekov/go-nbsave/internal/transform"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.CSSInjector      = (*pipeline.CSSInjection)(nil)
	_ pipeline.DocumentRenderer = (*pipeline.TemplateRenderer)(nil)
	_ assets.AssetLoader        = (*publicToInternalAdapter)(nil)
)

// Exporter turns notebooks into evidence or instructions HTML documents.
// Create with NewExporter() and reuse it: an Exporter holds no per-export
// state, so concurrent Export calls are safe.
type Exporter struct {
	cfg               exporterConfig
	logger            *zap.Logger
	assetLoader       assets.AssetLoader // internal loader
	publicAssetLoader AssetLoader        // public loader (from WithAssetLoader)
	cssInjector       pipeline.CSSInjector
	renderers         map[Mode]pipeline.DocumentRenderer
	timeLayout        string
}

// NewExporter creates an Exporter with default configuration.
// Use options to customize behavior (e.g., WithStyle, WithAssetPath, WithLogger).
// Returns error if asset loading, template parsing or format validation fails.
func NewExporter(opts ...Option) (*Exporter, error) {
	e := &Exporter{
		cfg: exporterConfig{
			now:        time.Now,
			date:       defaultDate,
			removeTags: []string{DefaultHiddenTag},
		},
		logger:      zap.NewNop(),
		assetLoader: assets.NewEmbeddedLoader(),
		cssInjector: &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(e)
	}

	// Handle WithAssetPath: resolve to internal loader
	if e.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(e.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		e.assetLoader = resolver
	}

	// Handle WithAssetLoader (public interface): wrap to internal interface
	if e.publicAssetLoader != nil {
		e.assetLoader = &publicToInternalAdapter{pub: e.publicAssetLoader}
	}

	if err := e.resolveStyle(); err != nil {
		return nil, err
	}

	layout, err := dateutil.ParseLayout(e.cfg.timeFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeFormat, err)
	}
	e.timeLayout = layout

	if _, err := dateutil.ResolveDate(e.cfg.date, e.cfg.now()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	if err := e.loadRenderers(); err != nil {
		return nil, err
	}

	return e, nil
}

// loadRenderers parses the template set of each mode.
func (e *Exporter) loadRenderers() error {
	e.renderers = make(map[Mode]pipeline.DocumentRenderer, 2)
	for _, mode := range []Mode{ModeEvidence, ModeInstructions} {
		name := e.cfg.templateSet
		if name == "" {
			name = mode.String()
		}

		ts, err := e.assetLoader.LoadTemplateSet(name)
		if err != nil {
			return fmt.Errorf("loading template set %q: %w", name, convertAssetError(err))
		}
		renderer, err := pipeline.NewTemplateRenderer(ts)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrRender, err)
		}
		e.renderers[mode] = renderer
	}
	return nil
}

// resolveStyle resolves the style input (name or path) to CSS content.
func (e *Exporter) resolveStyle() error {
	input := e.cfg.styleInput
	if input == "" {
		input = DefaultStyle
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("%w: loading style file %q: %v", ErrStyleNotFound, input, err)
		}
		e.cfg.resolvedStyle = string(content)
		return nil
	}

	css, err := e.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, convertAssetError(err))
	}
	e.cfg.resolvedStyle = css
	return nil
}

// Export runs the pipeline of input.Mode and returns the rendered document.
// The context is used for cancellation.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (e *Exporter) Export(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := input.Validate(); err != nil {
		return nil, err
	}

	nb, err := notebook.Parse(input.Notebook)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	logger := e.logger.With(zap.String("mode", input.Mode.String()), zap.String("source", input.SourceName))

	state := e.newState(input, logger)
	if err := pipeline.RunPreprocessors(ctx, nb, e.preprocessors(input, state, logger)...); err != nil {
		return nil, fmt.Errorf("preprocessing notebook: %w", err)
	}

	savedOn, err := dateutil.ResolveDate(e.cfg.date, e.cfg.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	doc := pipeline.NewDocument(nb, pipeline.DocumentInfo{
		Title:    e.title(nb, input.SourceName),
		Mode:     input.Mode.String(),
		Source:   input.SourceName,
		RecordID: uuid.NewString(),
		SavedOn:  savedOn,
	})

	highlighter := pipeline.NewChromaHighlighter(doc.Language, e.cfg.codeStyle)
	funcs := pipeline.Filters(state, pipeline.NewGoldmarkRenderer(e.cfg.codeStyle), highlighter)

	htmlContent, err := e.renderers[input.Mode].Render(ctx, doc, funcs)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}

	if pendingStart, pendingEnd := state.Timing.Pending(); pendingStart != "" || pendingEnd != "" {
		logger.Debug("timing left unrendered", zap.String("start", pendingStart), zap.String("end", pendingEnd))
	}

	// Inject CSS: page style first, highlighting classes after
	codeCSS, err := highlighter.CSS()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	htmlContent = e.cssInjector.InjectCSS(ctx, htmlContent, e.cfg.resolvedStyle+"\n"+codeCSS)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	res := &Result{
		HTML:          []byte(htmlContent),
		Title:         doc.Title,
		RecordID:      doc.RecordID,
		Cells:         len(doc.Cells),
		UntimedCells:  countUntimed(doc),
		MissingImages: state.MissingImages,
	}

	logger.Debug("notebook exported",
		zap.String("record_id", res.RecordID),
		zap.Int("cells", res.Cells),
		zap.Int("untimed_cells", res.UntimedCells),
		zap.Int("missing_images", res.MissingImages),
		zap.Duration("took", time.Since(start)),
	)
	return res, nil
}

// ExportFile reads the notebook at nbPath, exports it and writes the result
// to outPath, creating parent directories as needed. ns is only used by
// instructions exports.
func (e *Exporter) ExportFile(ctx context.Context, nbPath, outPath string, mode Mode, ns Namespace) (*Result, error) {
	if outPath == "" {
		return nil, ErrEmptyOutputPath
	}

	data, err := os.ReadFile(nbPath) // #nosec G304 -- user-provided notebook path
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadNotebook, err)
	}

	res, err := e.Export(ctx, Input{
		Notebook:   data,
		Mode:       mode,
		SourceName: filepath.Base(nbPath),
		SourceDir:  filepath.Dir(nbPath),
		Namespace:  ns,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", nbPath, err)
	}

	if err := fileutil.WriteFile(outPath, res.HTML); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	e.logger.Info("document written",
		zap.String("mode", mode.String()),
		zap.String("notebook", nbPath),
		zap.String("output", outPath),
		zap.Int("bytes", len(res.HTML)),
	)
	return res, nil
}

// newState creates the mutable state of one export.
func (e *Exporter) newState(input Input, logger *zap.Logger) *pipeline.State {
	state := pipeline.NewState(e.cfg.location, e.timeLayout)

	imageDir := e.cfg.imageDir
	if imageDir == "" {
		imageDir = input.SourceDir
	}
	state.Images = &transform.ImageEmbedder{
		BaseDir: imageDir,
		OnReadError: func(path string, err error) {
			state.MissingImages++
			logger.Debug("image not embedded", zap.String("path", path), zap.Error(err))
		},
	}
	state.Timing.OnParseError = func(value string, err error) {
		logger.Debug("timestamp not parsed", zap.String("value", value), zap.Error(err))
	}
	return state
}

// preprocessors returns the notebook preprocessors of input.Mode.
// Hidden cells are removed before the hook runs so they never consume a
// heading number.
func (e *Exporter) preprocessors(input Input, state *pipeline.State, logger *zap.Logger) []pipeline.Preprocessor {
	pps := []pipeline.Preprocessor{pipeline.LineEndings{}}
	if input.Mode != ModeInstructions {
		return pps
	}

	ns := input.Namespace
	if ns == nil {
		ns = e.cfg.namespace
	}
	return append(pps,
		&pipeline.TagRemoval{Tags: e.cfg.removeTags},
		pipeline.ClearOutput{},
		&pipeline.CellHook{
			Namespace: ns,
			Headings:  state.Headings,
			Images:    state.Images,
			Logger:    logger,
		},
	)
}

// title picks the document title: the configured one, the notebook's title
// metadata, its first "# " heading, then the file name without extension.
func (e *Exporter) title(nb *notebook.Notebook, sourceName string) string {
	if e.cfg.title != "" {
		return e.cfg.title
	}
	if t := strings.TrimSpace(nb.Metadata.Title); t != "" {
		return t
	}
	if t := firstTitleHeading(nb); t != "" {
		return t
	}
	if sourceName != "" {
		return strings.TrimSuffix(sourceName, filepath.Ext(sourceName))
	}
	return "Notebook"
}

// firstTitleHeading returns the text of the first depth-1 heading found in
// a markdown cell.
func firstTitleHeading(nb *notebook.Notebook) string {
	for _, cell := range nb.Cells {
		if !cell.IsMarkdown() {
			continue
		}
		for _, line := range strings.Split(cell.Source.String(), "\n") {
			line = strings.TrimSpace(line)
			if text, ok := strings.CutPrefix(line, "# "); ok {
				return strings.TrimSpace(text)
			}
		}
	}
	return ""
}

// countUntimed counts executed code cells without execution timestamps.
func countUntimed(doc *pipeline.Document) int {
	n := 0
	for _, cell := range doc.Cells {
		if cell.IsCode() && strings.TrimSpace(cell.Prompt) != "" && cell.Finished == "" {
			n++
		}
	}
	return n
}
