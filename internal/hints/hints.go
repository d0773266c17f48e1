// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"
)

// InJupyter detects if running from a Jupyter kernel or terminal, where the
// notebook UI settings are one click away.
var InJupyter = func() bool {
	return os.Getenv("JPY_SESSION_NAME") != "" ||
		os.Getenv("JUPYTERHUB_USER") != "" ||
		os.Getenv("JPY_PARENT_PID") != ""
}

// ForMissingTiming returns hints for evidence exports of notebooks that carry
// no execution timestamps.
func ForMissingTiming() string {
	var hints []string

	hints = append(hints, "enable Settings > Notebook > Record Cell Timing and re-run the notebook")

	if !InJupyter() {
		hints = append(hints, "classic Notebook needs the ExecuteTime extension")
	}

	return formatHints(hints)
}

// ForNotebookFormat returns a hint for notebooks in an unsupported nbformat.
func ForNotebookFormat() string {
	return format("upgrade with: jupyter nbconvert --to notebook --nbformat 4 --inplace <file>")
}

// ForImagesNotFound returns a hint when referenced images could not be read.
func ForImagesNotFound() string {
	return format("image paths resolve against the notebook directory; set images.baseDir to change it")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/nbsave/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/nbsave) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/nbsave") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForVarsFile returns a hint for unreadable variables files.
func ForVarsFile() string {
	return format("vars file must be a YAML or JSON mapping of names to scalar values")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForTemplateNotFound returns hints for template set not found errors.
func ForTemplateNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available templates: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
