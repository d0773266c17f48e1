package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	nbsave "github.com/abalbekov/go-nbsave"
	"github.com/abalbekov/go-nbsave/internal/config"
	"github.com/abalbekov/go-nbsave/internal/fileutil"
	"github.com/abalbekov/go-nbsave/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput          = errors.New("no notebook specified")
	ErrTooManyArgs      = errors.New("too many arguments")
	ErrUnknownCommand   = errors.New("unknown command")
	ErrInvalidExtension = errors.New("notebook must have .ipynb extension")
	ErrInvalidVar       = errors.New("invalid --var")
	ErrVarsFile         = errors.New("failed to read vars file")
)

// notebookExt is the required extension of input notebooks.
const notebookExt = ".ipynb"

// runExport loads configuration, merges flags into it and exports the
// notebook named in positionalArgs.
func runExport(ctx context.Context, mode nbsave.Mode, positionalArgs []string, flags *exportFlags, env *Environment, logger *zap.Logger) error {
	nbPath, outArg, err := splitArgs(positionalArgs)
	if err != nil {
		return err
	}
	if err := validateNotebookExtension(nbPath); err != nil {
		return err
	}

	envCfg := loadEnvConfig(env.Getenv)
	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(mode, flags, cfg)

	outPath, err := resolveOutputPath(nbPath, outArg, cfg)
	if err != nil {
		return err
	}

	var ns nbsave.Namespace
	if mode == nbsave.ModeInstructions {
		if ns, err = buildNamespace(flags.instructions, cfg); err != nil {
			return err
		}
	}

	exp, err := nbsave.NewExporter(buildOptions(mode, cfg, env, logger)...)
	if err != nil {
		return err
	}

	res, err := exp.ExportFile(ctx, nbPath, outPath, mode, ns)
	if err != nil {
		return err
	}

	printResult(env, flags.common, mode, outPath, res)
	return nil
}

// splitArgs returns the notebook path and the optional output argument.
func splitArgs(args []string) (nbPath, outArg string, err error) {
	switch len(args) {
	case 0:
		return "", "", ErrNoInput
	case 1:
		return args[0], "", nil
	case 2:
		return args[0], args[1], nil
	default:
		return "", "", fmt.Errorf("%w: %s", ErrTooManyArgs, strings.Join(args[2:], " "))
	}
}

// validateNotebookExtension checks that path names a .ipynb file.
func validateNotebookExtension(path string) error {
	if !strings.EqualFold(filepath.Ext(path), notebookExt) {
		return fmt.Errorf("%w: %s", ErrInvalidExtension, path)
	}
	return nil
}

// loadConfig loads the config named by the flag, then NBSAVE_CONFIG.
// Without either, the defaults apply.
func loadConfig(flagConfig string, envCfg *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(mode nbsave.Mode, flags *exportFlags, cfg *config.Config) {
	if flags.assets.style != "" {
		cfg.Style = flags.assets.style
	}
	if flags.assets.codeStyle != "" {
		cfg.CodeStyle = flags.assets.codeStyle
	}
	if flags.assets.template != "" {
		cfg.Template = flags.assets.template
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}
	if flags.document.imagesDir != "" {
		cfg.Images.BaseDir = flags.document.imagesDir
	}

	switch mode {
	case nbsave.ModeEvidence:
		if flags.document.title != "" {
			cfg.Evidence.Title = flags.document.title
		}
		if flags.document.timeFormat != "" {
			cfg.Evidence.TimeFormat = flags.document.timeFormat
		}
		if flags.document.date != "" {
			cfg.Evidence.Date = flags.document.date
		}
	case nbsave.ModeInstructions:
		if flags.document.title != "" {
			cfg.Instructions.Title = flags.document.title
		}
		if len(flags.instructions.removeTags) > 0 {
			cfg.Instructions.RemoveTags = flags.instructions.removeTags
		}
		if flags.instructions.varsFile != "" {
			cfg.Instructions.VarsFile = flags.instructions.varsFile
		}
		if flags.instructions.envVars {
			cfg.Instructions.EnvVars = true
		}
	}
}

// resolveOutputPath picks the output file. An explicit file is used as is;
// a directory (existing, or written with a trailing separator) receives the
// notebook name with .html. Without an argument the file goes to
// output.defaultDir, or next to the notebook.
func resolveOutputPath(nbPath, outArg string, cfg *config.Config) (string, error) {
	name, err := fileutil.ReplaceExt(filepath.Base(nbPath), "html")
	if err != nil {
		return "", err
	}

	if outArg == "" {
		dir := cfg.Output.DefaultDir
		if dir == "" {
			dir = filepath.Dir(nbPath)
		}
		return filepath.Join(dir, name), nil
	}

	if strings.HasSuffix(outArg, "/") || strings.HasSuffix(outArg, string(filepath.Separator)) {
		return filepath.Join(outArg, name), nil
	}
	if info, err := os.Stat(outArg); err == nil && info.IsDir() {
		return filepath.Join(outArg, name), nil
	}
	return outArg, nil
}

// buildOptions converts the merged configuration to exporter options.
func buildOptions(mode nbsave.Mode, cfg *config.Config, env *Environment, logger *zap.Logger) []nbsave.Option {
	opts := []nbsave.Option{
		nbsave.WithLogger(logger),
		nbsave.WithNow(env.Now),
		nbsave.WithStyle(cfg.Style),
		nbsave.WithCodeStyle(cfg.CodeStyle),
		nbsave.WithTemplateSet(cfg.Template),
		nbsave.WithAssetPath(cfg.Assets.BasePath),
		nbsave.WithImageDir(cfg.Images.BaseDir),
	}

	switch mode {
	case nbsave.ModeEvidence:
		opts = append(opts,
			nbsave.WithTitle(cfg.Evidence.Title),
			nbsave.WithTimeFormat(cfg.Evidence.TimeFormat),
			nbsave.WithDate(cfg.Evidence.Date),
		)
	case nbsave.ModeInstructions:
		opts = append(opts,
			nbsave.WithTitle(cfg.Instructions.Title),
			nbsave.WithRemoveTags(cfg.HiddenTags()...),
		)
	}
	return opts
}

// printResult reports the written file and any degraded content.
func printResult(env *Environment, common commonFlags, mode nbsave.Mode, outPath string, res *nbsave.Result) {
	if common.quiet {
		return
	}

	fmt.Fprintf(env.Stdout, "%s -> %s (%d cells)\n", mode, outPath, res.Cells)
	if common.verbose {
		fmt.Fprintf(env.Stdout, "  title: %s\n  record: %s\n", res.Title, res.RecordID)
	}

	if mode == nbsave.ModeEvidence && res.UntimedCells > 0 {
		fmt.Fprintf(env.Stderr, "warning: %d executed cell(s) have no timing metadata%s\n",
			res.UntimedCells, hints.ForMissingTiming())
	}
	if res.MissingImages > 0 {
		fmt.Fprintf(env.Stderr, "warning: %d image(s) could not be read%s\n",
			res.MissingImages, hints.ForImagesNotFound())
	}
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error, flags *exportFlags) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		if flags.common.config == "" || fileutil.IsFilePath(flags.common.config) {
			return hints.ForConfigNotFound(nil)
		}
		return hints.ForConfigNotFound(config.SearchPaths(flags.common.config))
	case errors.Is(err, nbsave.ErrStyleNotFound):
		return hints.ForStyleNotFound(nbsave.Styles())
	case errors.Is(err, nbsave.ErrTemplateSetNotFound):
		return hints.ForTemplateNotFound(nbsave.TemplateSets())
	case errors.Is(err, nbsave.ErrUnsupportedFormat):
		return hints.ForNotebookFormat()
	case errors.Is(err, ErrVarsFile):
		return hints.ForVarsFile()
	case errors.Is(err, nbsave.ErrWriteOutput):
		return hints.ForOutputDirectory()
	default:
		return ""
	}
}
