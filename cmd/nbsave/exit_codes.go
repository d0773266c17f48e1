package main

import (
	"errors"
	"os"

	nbsave "github.com/abalbekov/go-nbsave"
	"github.com/abalbekov/go-nbsave/internal/config"
)

// Exit codes for nbsave CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful export
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, notebook or validation
	ExitIO      = 3 // File not found, permission denied, write failure
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, nbsave.ErrReadNotebook) ||
		errors.Is(err, nbsave.ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrVarsFile) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidVariable) ||
		errors.Is(err, config.ErrInvalidTag) ||
		errors.Is(err, config.ErrInvalidTimestamp) ||
		errors.Is(err, nbsave.ErrInvalidMode) ||
		errors.Is(err, nbsave.ErrEmptyNotebook) ||
		errors.Is(err, nbsave.ErrParseNotebook) ||
		errors.Is(err, nbsave.ErrUnsupportedFormat) ||
		errors.Is(err, nbsave.ErrEmptyOutputPath) ||
		errors.Is(err, nbsave.ErrInvalidTimeFormat) ||
		errors.Is(err, nbsave.ErrInvalidDate) ||
		errors.Is(err, nbsave.ErrStyleNotFound) ||
		errors.Is(err, nbsave.ErrTemplateSetNotFound) ||
		errors.Is(err, nbsave.ErrIncompleteTemplateSet) ||
		errors.Is(err, nbsave.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidVar) ||
		errors.Is(err, ErrTooManyArgs) ||
		errors.Is(err, ErrUnknownCommand) {
		return ExitUsage
	}

	return ExitGeneral
}
