package sheetstack

import (
	"errors"
	"fmt"

	"github.com/ukaji3/sheetstack-go/pkg/sheetstack/models"
)

// ErrReadFailure indicates the bytes of a blob source could not be read.
var ErrReadFailure = errors.New("blob read failure")

// ErrDecodeFailure indicates the codec could not decode the bytes of a blob source.
var ErrDecodeFailure = errors.New("blob decode failure")

// ErrNoSources indicates Export was called without any source.
var ErrNoSources = errors.New("no sources to export")

// Errors defined by the models package, re-exported for callers of this package.
var (
	ErrMalformedAddress = models.ErrMalformedAddress
	ErrEmptyWorkbook    = models.ErrEmptyWorkbook
	ErrInvalidRange     = models.ErrInvalidRange
)

// SourceError reports the source whose contribution aborted an export.
type SourceError struct {
	Index int    // position of the source in the input list
	Title string // title of the source, if any
	Err   error
}

func (e *SourceError) Error() string {
	if e.Title == "" {
		return fmt.Sprintf("source %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("source %d (%q): %v", e.Index, e.Title, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewSourceError creates a new SourceError.
func NewSourceError(index int, title string, err error) *SourceError {
	return &SourceError{
		Index: index,
		Title: title,
		Err:   err,
	}
}
