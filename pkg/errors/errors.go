package errors

import (
	"fmt"
	"strings"
)

// ParseError represents a wizard input decoding failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError carries every rule failure reported for a site
// configuration. Saving a configuration that fails validation raises one of
// these with the full accumulated list, never just the first failure.
type ValidationError struct {
	SiteID string
	Issues []string
}

// NewValidationError constructs a ValidationError.
func NewValidationError(siteID string, issues []string) error {
	return &ValidationError{SiteID: siteID, Issues: issues}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	joined := strings.Join(e.Issues, "; ")
	if e.SiteID != "" {
		return fmt.Sprintf("invalid configuration for %s: %s", e.SiteID, joined)
	}
	return fmt.Sprintf("invalid configuration: %s", joined)
}

// TemplateNotFoundError indicates a template load by a name with no
// corresponding file.
type TemplateNotFoundError struct {
	Name string
}

// NewTemplateNotFoundError constructs a TemplateNotFoundError.
func NewTemplateNotFoundError(name string) error {
	return &TemplateNotFoundError{Name: name}
}

func (e *TemplateNotFoundError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("template not found: %s", e.Name)
}

// ProcessingError represents a contained per-file failure during image
// processing. The processor downgrades these to a plain copy of the
// original; they never abort the pipeline.
type ProcessingError struct {
	File string
	Err  error
}

// NewProcessingError constructs a ProcessingError for the given file.
func NewProcessingError(file string, err error) error {
	return &ProcessingError{File: file, Err: err}
}

func (e *ProcessingError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("processing error [%s]: %v", e.File, e.Err)
}

// Unwrap exposes the underlying error.
func (e *ProcessingError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
