package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Base error types (sentinel errors).
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnsupported  = errors.New("unsupported")
	ErrInternal     = errors.New("internal error")
	ErrUnavailable  = errors.New("service unavailable")
)

// Specific errors.
var (
	ErrDatasetNotFound = fmt.Errorf("dataset: %w", ErrNotFound)
	ErrUnknownUnit     = fmt.Errorf("unit: %w", ErrUnsupported)
	ErrUnknownEpoch    = fmt.Errorf("epoch: %w", ErrInvalidInput)
	ErrUnknownAxisKind = fmt.Errorf("axis kind: %w", ErrInvalidInput)
	ErrNotReady        = fmt.Errorf("service not ready: %w", ErrUnavailable)
)

// ErrComposition is the base of every composition failure. A coordinate
// system that fails to compose is permanently unrepresentable; callers must
// not retry with the same input.
var ErrComposition = fmt.Errorf("coordinate system composition: %w", ErrUnsupported)

// UnsupportedAxisTopologyError rejects a coordinate system that is not a
// simple cartesian product of one-dimensional axes.
type UnsupportedAxisTopologyError struct {
	CoordSystem string // Coordinate system name
	Reason      string // What about the topology is unsupported
}

// Error implements the error interface.
func (e *UnsupportedAxisTopologyError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("coordinate system %s: unsupported axis topology: %s",
			e.CoordSystem, e.Reason)
	}
	return fmt.Sprintf("coordinate system %s: not a cartesian product of one-dimensional axes",
		e.CoordSystem)
}

// Unwrap returns the underlying error type.
func (e *UnsupportedAxisTopologyError) Unwrap() error {
	return ErrComposition
}

// AmbiguousHorizontalError rejects a coordinate system that declares both a
// geographic and a projected horizontal axis pair.
type AmbiguousHorizontalError struct {
	CoordSystem string   // Coordinate system name
	Geographic  []string // Names of the geographic axes
	Projected   []string // Names of the projected axes
}

// Error implements the error interface.
func (e *AmbiguousHorizontalError) Error() string {
	return fmt.Sprintf("coordinate system %s: both geographic (%s) and projected (%s) horizontal axes",
		e.CoordSystem, strings.Join(e.Geographic, ", "), strings.Join(e.Projected, ", "))
}

// Unwrap returns the underlying error type.
func (e *AmbiguousHorizontalError) Unwrap() error {
	return ErrComposition
}

// IncompleteAxesError rejects an axis group that is missing a required axis
// or the projection operation.
type IncompleteAxesError struct {
	Group   string   // Affected group: "geographic" or "projected"
	Missing string   // What the group lacks
	Have    []string // Names of the axes the group does have
}

// Error implements the error interface.
func (e *IncompleteAxesError) Error() string {
	if len(e.Have) > 0 {
		return fmt.Sprintf("%s axes incomplete: missing %s (have %s)",
			e.Group, e.Missing, strings.Join(e.Have, ", "))
	}
	return fmt.Sprintf("%s axes incomplete: missing %s", e.Group, e.Missing)
}

// Unwrap returns the underlying error type.
func (e *IncompleteAxesError) Unwrap() error {
	return ErrComposition
}

// UnparsableEpochError rejects a temporal axis whose unit string does not
// parse as "<unit> since <date>".
type UnparsableEpochError struct {
	Axis string // Axis name
	Spec string // The unit string that failed to parse
	Err  error  // Underlying parse error
}

// Error implements the error interface.
func (e *UnparsableEpochError) Error() string {
	return fmt.Sprintf("temporal axis %s: cannot parse epoch from %q: %v",
		e.Axis, e.Spec, e.Err)
}

// Unwrap returns the underlying error type.
func (e *UnparsableEpochError) Unwrap() error {
	return ErrComposition
}

// NoRecognizedAxesError rejects a coordinate system in which every axis was
// classified Unknown.
type NoRecognizedAxesError struct {
	CoordSystem string   // Coordinate system name
	Dropped     []string // Names of the dropped axes
}

// Error implements the error interface.
func (e *NoRecognizedAxesError) Error() string {
	return fmt.Sprintf("coordinate system %s: no recognized axes (dropped: %s)",
		e.CoordSystem, strings.Join(e.Dropped, ", "))
}

// Unwrap returns the underlying error type.
func (e *NoRecognizedAxesError) Unwrap() error {
	return ErrComposition
}

// ReaderError represents a failure in the array-format reader.
type ReaderError struct {
	Location string // Dataset path or URI
	Op       string // Operation that failed (open, read, close)
	Err      error  // Underlying error
}

// Error implements the error interface.
func (e *ReaderError) Error() string {
	return fmt.Sprintf("reader error during %s of %s: %v", e.Op, e.Location, e.Err)
}

// Unwrap returns the underlying error.
func (e *ReaderError) Unwrap() error {
	return e.Err
}

// StorageError represents an error during storage operations.
type StorageError struct {
	Operation string // Operation that failed (fetch, list, etc.)
	Key       string // Object key or URI
	Err       error  // Underlying error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("storage error during %s for %s: %v",
			e.Operation, e.Key, e.Err)
	}
	return fmt.Sprintf("storage error during %s: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying error.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// IndexError represents an error in the dataset index.
type IndexError struct {
	Dataset string // Dataset ID
	Op      string // Operation that failed
	Err     error  // Underlying error
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	if e.Dataset != "" {
		return fmt.Sprintf("index error during %s for %s: %v", e.Op, e.Dataset, e.Err)
	}
	return fmt.Sprintf("index error during %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *IndexError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Field   string // Configuration field
	Message string // Error message
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error for %s: %s", e.Field, e.Message)
}

// Unwrap returns the underlying error type.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidInput
}
