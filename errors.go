package sitegen

import "errors"

// Sentinel errors for library operations.
var (
	ErrNoConfig        = errors.New("builder configuration is required")
	ErrReadPage        = errors.New("failed to read page")
	ErrWriteOutput     = errors.New("failed to write output")
	ErrRender          = errors.New("page rendering failed")
	ErrInvalidSite     = errors.New("invalid site settings")
	ErrInvalidStrategy = errors.New("invalid URL strategy")

	// Asset loading errors.
	ErrScriptNotFound        = errors.New("script not found")
	ErrTemplateNotFound      = errors.New("template not found")
	ErrIncompleteTemplateSet = errors.New("template set missing required template")
	ErrInvalidAssetPath      = errors.New("invalid asset path")
)
