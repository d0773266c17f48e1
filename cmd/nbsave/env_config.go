package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/abalbekov/go-nbsave/internal/config"
)

// envPrefix starts every environment variable read by the CLI.
const envPrefix = "NBSAVE_"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // NBSAVE_CONFIG: config file name or path
	Style      string // NBSAVE_STYLE: CSS style name or path
	CodeStyle  string // NBSAVE_CODE_STYLE: chroma style name
	AssetPath  string // NBSAVE_ASSET_PATH: custom asset directory
	OutputDir  string // NBSAVE_OUTPUT_DIR: default output directory
	ImagesDir  string // NBSAVE_IMAGES_DIR: base directory of relative images
	VarsFile   string // NBSAVE_VARS_FILE: instructions variables file
}

// knownEnvVars lists valid NBSAVE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"NBSAVE_CONFIG":     true,
	"NBSAVE_STYLE":      true,
	"NBSAVE_CODE_STYLE": true,
	"NBSAVE_ASSET_PATH": true,
	"NBSAVE_OUTPUT_DIR": true,
	"NBSAVE_IMAGES_DIR": true,
	"NBSAVE_VARS_FILE":  true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig(getenv func(string) string) *envConfig {
	return &envConfig{
		ConfigPath: getenv("NBSAVE_CONFIG"),
		Style:      getenv("NBSAVE_STYLE"),
		CodeStyle:  getenv("NBSAVE_CODE_STYLE"),
		AssetPath:  getenv("NBSAVE_ASSET_PATH"),
		OutputDir:  getenv("NBSAVE_OUTPUT_DIR"),
		ImagesDir:  getenv("NBSAVE_IMAGES_DIR"),
		VarsFile:   getenv("NBSAVE_VARS_FILE"),
	}
}

// warnUnknownEnvVars writes a warning for each unrecognized NBSAVE_* variable.
// Helps catch typos like NBSAVE_STYEL.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" && cfg.Style == "" {
		cfg.Style = env.Style
	}
	if env.CodeStyle != "" && cfg.CodeStyle == "" {
		cfg.CodeStyle = env.CodeStyle
	}
	if env.AssetPath != "" && cfg.Assets.BasePath == "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.ImagesDir != "" && cfg.Images.BaseDir == "" {
		cfg.Images.BaseDir = env.ImagesDir
	}
	if env.VarsFile != "" && cfg.Instructions.VarsFile == "" {
		cfg.Instructions.VarsFile = env.VarsFile
	}
}
