package common

import (
	"fmt"

	"github.com/pkg/errors"
)

// The failure taxonomy. File-level errors skip the file and keep the
// batch going; field-level errors drop a single row. Nothing here is
// fatal to a run.

// FileAccessError covers missing files and unsupported extensions.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot read %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("cannot read %s", e.Path)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// NewFileAccessError wraps err with the offending path.
func NewFileAccessError(path string, err error) *FileAccessError {
	return &FileAccessError{Path: path, Err: errors.WithStack(err)}
}

// DecodeError means the underlying format decoder gave up on the file.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// NewDecodeError wraps a decoder failure with the offending path.
func NewDecodeError(path string, err error) *DecodeError {
	return &DecodeError{Path: path, Err: errors.WithStack(err)}
}

// FieldParseError means a single date or amount string could not be
// parsed. The caller decides whether the row is dropped.
type FieldParseError struct {
	Field string
	Value string
}

func (e *FieldParseError) Error() string {
	return fmt.Sprintf("cannot parse %s from %q", e.Field, e.Value)
}

// SchemaError means a source bound none of the required columns even
// after positional fallback; the whole source yields zero rows.
type SchemaError struct {
	Path    string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: required columns missing: %v", e.Path, e.Missing)
}
