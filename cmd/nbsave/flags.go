package main

import (
	"io"

	flag "github.com/spf13/pflag"

	nbsave "github.com/abalbekov/go-nbsave"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// assetFlags holds asset-related flags (CSS, templates, custom asset path).
type assetFlags struct {
	style     string // Name or path of the page CSS
	codeStyle string // Chroma style name
	template  string // Template set overriding the mode's own
	assetPath string // Override asset directory
}

// documentFlags holds flags shaping the rendered document.
type documentFlags struct {
	title      string
	imagesDir  string
	timeFormat string // evidence only
	date       string // evidence only
}

// instructionsFlags holds the flags of the instructions command.
type instructionsFlags struct {
	vars       []string // name=value, repeatable
	varsFile   string
	envVars    bool
	removeTags []string
}

// exportFlags holds all flags of an export command.
type exportFlags struct {
	common       commonFlags
	assets       assetFlags
	document     documentFlags
	instructions instructionsFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.codeStyle, "code-style", "", "code highlighting style name")
	fs.StringVar(&f.template, "template", "", "template set name")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// addDocumentFlags adds document flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags, mode nbsave.Mode) {
	fs.StringVar(&f.title, "title", "", "document title (\"\" = auto)")
	fs.StringVar(&f.imagesDir, "images-dir", "", "directory relative images are read from")
	if mode == nbsave.ModeEvidence {
		fs.StringVar(&f.timeFormat, "time-format", "", "finish time format, e.g. \"HH:mm:ss YYYY-MM-DD\"")
		fs.StringVar(&f.date, "date", "", "save date (\"auto\" = today)")
	}
}

// addInstructionsFlags adds instructions-only flags to a FlagSet.
func addInstructionsFlags(fs *flag.FlagSet, f *instructionsFlags) {
	fs.StringArrayVar(&f.vars, "var", nil, "placeholder value as name=value (repeatable)")
	fs.StringVar(&f.varsFile, "vars-file", "", "YAML or JSON file of placeholder values")
	fs.BoolVar(&f.envVars, "env-vars", false, "resolve remaining placeholders from the environment")
	fs.StringArrayVar(&f.removeTags, "remove-tag", nil, "drop cells with this tag (repeatable)")
}

// parseExportFlags parses the flags of an export command and returns the
// positional args. Usage and parse errors are written to stderr.
func parseExportFlags(mode nbsave.Mode, args []string, stderr io.Writer) (*exportFlags, []string, error) {
	fs := flag.NewFlagSet(mode.String(), flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &exportFlags{}

	addCommonFlags(fs, &f.common)
	addAssetFlags(fs, &f.assets)
	addDocumentFlags(fs, &f.document, mode)
	if mode == nbsave.ModeInstructions {
		addInstructionsFlags(fs, &f.instructions)
	}

	fs.Usage = func() { printExportUsage(stderr, mode) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
