package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	nbsave "github.com/abalbekov/go-nbsave"
	"github.com/abalbekov/go-nbsave/internal/config"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read notebook", nbsave.ErrReadNotebook, ExitIO},
		{"write output", nbsave.ErrWriteOutput, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"vars file", ErrVarsFile, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid variable", config.ErrInvalidVariable, ExitUsage},
		{"invalid tag", config.ErrInvalidTag, ExitUsage},
		{"invalid timestamp", config.ErrInvalidTimestamp, ExitUsage},
		{"invalid mode", nbsave.ErrInvalidMode, ExitUsage},
		{"empty notebook", nbsave.ErrEmptyNotebook, ExitUsage},
		{"parse notebook", nbsave.ErrParseNotebook, ExitUsage},
		{"unsupported format", nbsave.ErrUnsupportedFormat, ExitUsage},
		{"empty output path", nbsave.ErrEmptyOutputPath, ExitUsage},
		{"invalid time format", nbsave.ErrInvalidTimeFormat, ExitUsage},
		{"invalid date", nbsave.ErrInvalidDate, ExitUsage},
		{"style not found", nbsave.ErrStyleNotFound, ExitUsage},
		{"template set not found", nbsave.ErrTemplateSetNotFound, ExitUsage},
		{"incomplete template set", nbsave.ErrIncompleteTemplateSet, ExitUsage},
		{"invalid asset path", nbsave.ErrInvalidAssetPath, ExitUsage},
		{"invalid extension", ErrInvalidExtension, ExitUsage},
		{"invalid var", ErrInvalidVar, ExitUsage},
		{"too many args", ErrTooManyArgs, ExitUsage},
		{"unknown command", ErrUnknownCommand, ExitUsage},
		{"wrapped style", fmt.Errorf("loading: %w", nbsave.ErrStyleNotFound), ExitUsage},

		// General errors (exit 1)
		{"render", nbsave.ErrRender, ExitGeneral},
		{"unknown", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Error("exit codes must follow Unix conventions: 0=success, 1=general, 2=usage")
	}
	for _, code := range []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO} {
		if code >= 126 {
			t.Errorf("exit code %d collides with shell-reserved codes", code)
		}
	}
}
