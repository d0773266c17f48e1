package nbsave

import (
	"errors"

	"github.com/abalbekov/go-nbsave/internal/notebook"
)

// Sentinel errors for library operations.
var (
	ErrInvalidMode       = errors.New("invalid export mode")
	ErrEmptyNotebook     = notebook.ErrEmptyNotebook
	ErrReadNotebook      = notebook.ErrReadNotebook
	ErrParseNotebook     = notebook.ErrParseNotebook
	ErrUnsupportedFormat = notebook.ErrUnsupportedFormat
	ErrRender            = errors.New("notebook rendering failed")
	ErrEmptyOutputPath   = errors.New("output path cannot be empty")
	ErrWriteOutput       = errors.New("failed to write output")
	ErrInvalidTimeFormat = errors.New("invalid time format")
	ErrInvalidDate       = errors.New("invalid date")

	// Asset loading errors.
	ErrStyleNotFound         = errors.New("style not found")
	ErrTemplateSetNotFound   = errors.New("template set not found")
	ErrIncompleteTemplateSet = errors.New("template set missing required template")
	ErrInvalidAssetPath      = errors.New("invalid asset path")
)
