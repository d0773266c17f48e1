// Package config loads and validates nbsave YAML configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abalbekov/go-nbsave/internal/dateutil"
	"github.com/abalbekov/go-nbsave/internal/fileutil"
	"github.com/abalbekov/go-nbsave/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound   = errors.New("config file not found")
	ErrEmptyConfigName  = errors.New("config name cannot be empty")
	ErrConfigParse      = errors.New("failed to parse config")
	ErrFieldTooLong     = errors.New("field exceeds maximum length")
	ErrInvalidVariable  = errors.New("invalid variable name")
	ErrInvalidTag       = errors.New("invalid cell tag")
	ErrInvalidTimestamp = errors.New("invalid evidence.timeFormat")
)

// DirName is the directory under the user config dir searched for configs.
const DirName = "nbsave"

// DefaultHiddenTag marks cells dropped from instructions exports.
const DefaultHiddenTag = "hide_cell"

// Field length limits.
const (
	MaxNameLength     = 100  // Style or template name
	MaxTitleLength    = 200  // Document title
	MaxDateLength     = 30   // "2025-12-31" or "auto:DD/MM/YYYY"
	MaxTagLength      = 100  // Cell tag
	MaxVariableLength = 100  // Variable name
	MaxValueLength    = 4096 // Variable value
	MaxPathLength     = 4096 // Filesystem path
)

// Config holds all configuration for notebook exports.
type Config struct {
	Style        string             `yaml:"style"`     // Name or path of the CSS style (empty = "default")
	Template     string             `yaml:"template"`  // Template set override (empty = mode name)
	CodeStyle    string             `yaml:"codeStyle"` // Chroma style of highlighted code (empty = "github")
	Assets       AssetsConfig       `yaml:"assets"`
	Output       OutputConfig       `yaml:"output"`
	Images       ImagesConfig       `yaml:"images"`
	Evidence     EvidenceConfig     `yaml:"evidence"`
	Instructions InstructionsConfig `yaml:"instructions"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = next to the notebook
}

// ImagesConfig defines image embedding options.
type ImagesConfig struct {
	BaseDir string `yaml:"baseDir"` // Empty = notebook directory
}

// EvidenceConfig defines options of the timestamped evidence export.
type EvidenceConfig struct {
	Title      string `yaml:"title"`      // Empty = notebook title, then file name
	TimeFormat string `yaml:"timeFormat"` // dateutil tokens, default "HH:mm:ss YYYY-MM-DD"
	Date       string `yaml:"date"`       // "auto" or "auto:FORMAT" or literal (default "auto")
}

// InstructionsConfig defines options of the clean instructions export.
type InstructionsConfig struct {
	Title      string            `yaml:"title"`
	RemoveTags []string          `yaml:"removeTags"` // Empty = ["hide_cell"]
	Variables  map[string]string `yaml:"variables"`
	VarsFile   string            `yaml:"varsFile"`
	EnvVars    bool              `yaml:"envVars"` // Resolve remaining names from the environment
}

// Validate checks field lengths and formats.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("style", c.Style, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("template", c.Template, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("codeStyle", c.CodeStyle, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("images.baseDir", c.Images.BaseDir, MaxPathLength); err != nil {
		return err
	}

	// Validate evidence fields
	if err := validateFieldLength("evidence.title", c.Evidence.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("evidence.date", c.Evidence.Date, MaxDateLength); err != nil {
		return err
	}
	if c.Evidence.TimeFormat != "" {
		if _, err := dateutil.ParseLayout(c.Evidence.TimeFormat); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidTimestamp, err)
		}
	}

	// Validate instructions fields
	if err := validateFieldLength("instructions.title", c.Instructions.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("instructions.varsFile", c.Instructions.VarsFile, MaxPathLength); err != nil {
		return err
	}
	for i, tag := range c.Instructions.RemoveTags {
		field := fmt.Sprintf("instructions.removeTags[%d]", i)
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("%w: %s is empty", ErrInvalidTag, field)
		}
		if err := validateFieldLength(field, tag, MaxTagLength); err != nil {
			return err
		}
	}
	for name, value := range c.Instructions.Variables {
		if err := ValidateVariableName(name); err != nil {
			return fmt.Errorf("instructions.variables: %w", err)
		}
		if err := validateFieldLength("instructions.variables."+name, value, MaxValueLength); err != nil {
			return err
		}
	}

	return nil
}

// ValidateVariableName rejects names that could never match a placeholder:
// empty names, names containing braces or backslashes, and overlong names.
func ValidateVariableName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidVariable)
	}
	if strings.ContainsAny(name, "{}\\") {
		return fmt.Errorf("%w: %q contains a brace or backslash", ErrInvalidVariable, name)
	}
	if len(name) > MaxVariableLength {
		return fmt.Errorf("%w: %q (%d chars, max %d)", ErrInvalidVariable, name, len(name), MaxVariableLength)
	}
	return nil
}

// HiddenTags returns the tags whose cells instructions exports drop.
func (c *Config) HiddenTags() []string {
	if len(c.Instructions.RemoveTags) == 0 {
		return []string{DefaultHiddenTag}
	}
	return c.Instructions.RemoveTags
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Style:    "",
		Template: "",
		Assets:   AssetsConfig{BasePath: ""},
		Evidence: EvidenceConfig{
			TimeFormat: dateutil.DefaultTimestampFormat,
			Date:       "auto",
		},
		Instructions: InstructionsConfig{
			RemoveTags: []string{DefaultHiddenTag},
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the candidate files for a config name, in lookup order.
// Locations: current directory, then the user config dir ($XDG_CONFIG_HOME/nbsave).
// Extensions: .yaml, then .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, DirName, name+ext))
		}
	}

	return paths
}

// resolveConfigPath returns the first existing file among SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	triedPaths := SearchPaths(name)
	for _, p := range triedPaths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
