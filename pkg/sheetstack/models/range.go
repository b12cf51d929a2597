package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRange indicates a range was required but the sheet holds no cells.
var ErrInvalidRange = errors.New("invalid range")

// Range is a rectangular block of cells. The zero value is the empty range.
type Range struct {
	// Start is the top-left cell (always A1 for computed ranges).
	Start CellAddress
	// End is the bottom-right cell.
	End CellAddress
}

// Origin is the top-left anchor of every computed range.
var Origin = CellAddress{Column: "A", Row: 1}

// IsEmpty reports whether r is the empty-range sentinel.
func (r Range) IsEmpty() bool {
	return r.End.IsZero()
}

// RowCount returns End.Row - Start.Row: a span, one less than the number of
// rows covered. The empty range has a row count of 0.
func (r Range) RowCount() int {
	if r.IsEmpty() {
		return 0
	}
	return r.End.Row - r.Start.Row
}

// String renders the range as "A1:C7", or "" for the empty range.
func (r Range) String() string {
	if r.IsEmpty() {
		return ""
	}
	return r.Start.String() + ":" + r.End.String()
}

// ParseRange parses "A1:C7". A single reference is treated as a one-cell range.
func ParseRange(text string) (Range, error) {
	parts := strings.Split(strings.ReplaceAll(text, "$", ""), ":")
	if len(parts) > 2 {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, text)
	}
	start, err := ParseCellAddress(parts[0])
	if err != nil {
		return Range{}, err
	}
	end := start
	if len(parts) == 2 {
		if end, err = ParseCellAddress(parts[1]); err != nil {
			return Range{}, err
		}
	}
	return Range{Start: start, End: end}, nil
}
