// =============================================================================
// Auto SYSCO - Error Taxonomy
// =============================================================================
//
// Fatal errors abort the run. There are exactly two kinds:
//   - DataSourceError   : the reference table could not be opened or parsed
//   - DocumentReadError : the invoice document could not be opened or parsed
//
// Both carry the offending path and the underlying cause. The cause is wrapped
// with a stack trace so the top-level handler can print a full diagnostic.
//
// Per-line anomalies (missing numbers, unknown item codes, unmatched
// descriptions) are never errors; they degrade to default values.
//
// =============================================================================

package common

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Sentinels for errors.Is matching.
var (
	ErrDataSource   = errors.New("reference data source error")
	ErrDocumentRead = errors.New("document read error")
)

// DataSourceError reports that the reference table is unusable.
type DataSourceError struct {
	Path  string
	Cause error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrDataSource, e.Path, e.Cause)
}

func (e *DataSourceError) Unwrap() error { return e.Cause }

// Is makes errors.Is(err, ErrDataSource) true for any DataSourceError.
func (e *DataSourceError) Is(target error) bool { return target == ErrDataSource }

// Format delegates %+v to the cause so the stack trace is printed.
func (e *DataSourceError) Format(s fmt.State, verb rune) {
	formatWithCause(s, verb, e.Error(), e.Cause)
}

// NewDataSourceError wraps cause with a stack trace.
func NewDataSourceError(path string, cause error) *DataSourceError {
	return &DataSourceError{Path: path, Cause: pkgerrors.WithStack(cause)}
}

// DocumentReadError reports that the invoice document is unusable.
type DocumentReadError struct {
	Path  string
	Cause error
}

func (e *DocumentReadError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrDocumentRead, e.Path, e.Cause)
}

func (e *DocumentReadError) Unwrap() error { return e.Cause }

// Is makes errors.Is(err, ErrDocumentRead) true for any DocumentReadError.
func (e *DocumentReadError) Is(target error) bool { return target == ErrDocumentRead }

// Format delegates %+v to the cause so the stack trace is printed.
func (e *DocumentReadError) Format(s fmt.State, verb rune) {
	formatWithCause(s, verb, e.Error(), e.Cause)
}

// NewDocumentReadError wraps cause with a stack trace.
func NewDocumentReadError(path string, cause error) *DocumentReadError {
	return &DocumentReadError{Path: path, Cause: pkgerrors.WithStack(cause)}
}

func formatWithCause(s fmt.State, verb rune, msg string, cause error) {
	if verb == 'v' && s.Flag('+') && cause != nil {
		fmt.Fprintf(s, "%s\n%+v", msg, cause)
		return
	}
	fmt.Fprint(s, msg)
}
