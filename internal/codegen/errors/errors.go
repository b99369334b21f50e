// Package errors defines the failures a generation run can end with. Every
// failure is fatal for the run; the typed errors carry the type, line or file
// that triggered them.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors, matched with errors.Is.
var (
	// ErrMetadataNotFound is returned when a requested type declaration is absent.
	ErrMetadataNotFound = errors.New("metadata not found")

	// ErrMalformedField is returned when a field line does not have the
	// "<identifier> <type>" shape.
	ErrMalformedField = errors.New("malformed field")

	// ErrDuplicateSchemaName is returned when two sibling attributes derive the
	// same schema name.
	ErrDuplicateSchemaName = errors.New("duplicate schema name")

	// ErrTemplateRead is returned when a template cannot be read.
	ErrTemplateRead = errors.New("template read failed")

	// ErrOutputWrite is returned when a generated file cannot be written.
	ErrOutputWrite = errors.New("output write failed")
)

// MetadataNotFoundError reports a missing type declaration. Parent is empty
// for the root type.
type MetadataNotFoundError struct {
	Type   string
	Parent string
}

func (e *MetadataNotFoundError) Error() string {
	if e.Parent != "" {
		return fmt.Sprintf("type %s (referenced by attribute %s) not found in declarations", e.Type, e.Parent)
	}
	return fmt.Sprintf("type %s not found in declarations", e.Type)
}

func (e *MetadataNotFoundError) Is(target error) bool {
	return target == ErrMetadataNotFound
}

// MalformedFieldError identifies the offending line of a type declaration.
type MalformedFieldError struct {
	Type string
	Line int
	Text string
}

func (e *MalformedFieldError) Error() string {
	return fmt.Sprintf("malformed field in type %s at line %d: %q", e.Type, e.Line, e.Text)
}

func (e *MalformedFieldError) Is(target error) bool {
	return target == ErrMalformedField
}

// DuplicateSchemaNameError reports two fields of Owner mapping to SchemaName.
type DuplicateSchemaNameError struct {
	Owner      string
	SchemaName string
	First      string
	Second     string
}

func (e *DuplicateSchemaNameError) Error() string {
	return fmt.Sprintf("fields %s and %s of type %s both map to schema name %q", e.First, e.Second, e.Owner, e.SchemaName)
}

func (e *DuplicateSchemaNameError) Is(target error) bool {
	return target == ErrDuplicateSchemaName
}

// TemplateReadError wraps the failure to read a template.
type TemplateReadError struct {
	Template string
	Err      error
}

func (e *TemplateReadError) Error() string {
	return fmt.Sprintf("read template %s: %v", e.Template, e.Err)
}

func (e *TemplateReadError) Is(target error) bool {
	return target == ErrTemplateRead
}

func (e *TemplateReadError) Unwrap() error { return e.Err }

// OutputWriteError wraps the failure to write a generated file.
type OutputWriteError struct {
	Path string
	Err  error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *OutputWriteError) Is(target error) bool {
	return target == ErrOutputWrite
}

func (e *OutputWriteError) Unwrap() error { return e.Err }
