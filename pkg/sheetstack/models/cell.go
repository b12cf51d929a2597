// Package models defines the in-memory sheet structures the merge engine works on.
package models

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// ErrMalformedAddress indicates a cell reference that is not letters followed by a positive row.
var ErrMalformedAddress = errors.New("malformed cell address")

// Value is an opaque cell payload (string, int64, float64, bool, time.Time, ...).
// The engine never inspects it.
type Value = any

// EmptyCell marks an unoccupied position inside a rectangular table.
type EmptyCell struct{}

// MarshalJSON renders the empty marker as null.
func (EmptyCell) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// Empty is the value used to pad unoccupied cells when a range is flattened into a table.
var Empty = EmptyCell{}

// CellAddress identifies a cell by column letters and 1-based row number.
type CellAddress struct {
	// Column is the uppercase column name (A, B, ..., AA, ...).
	Column string
	// Row is the row number (1-based).
	Row int
}

// ParseCellAddress parses references such as "A1" or "AB12".
func ParseCellAddress(text string) (CellAddress, error) {
	i := 0
	for i < len(text) && text[i] >= 'A' && text[i] <= 'Z' {
		i++
	}
	if i == 0 || i == len(text) {
		return CellAddress{}, fmt.Errorf("%w: %q", ErrMalformedAddress, text)
	}

	digits := text[i:]
	for j := 0; j < len(digits); j++ {
		if digits[j] < '0' || digits[j] > '9' {
			return CellAddress{}, fmt.Errorf("%w: %q", ErrMalformedAddress, text)
		}
	}
	// A leading zero would not survive String().
	if digits[0] == '0' {
		return CellAddress{}, fmt.Errorf("%w: %q", ErrMalformedAddress, text)
	}

	row, err := strconv.Atoi(digits)
	if err != nil || row <= 0 {
		return CellAddress{}, fmt.Errorf("%w: %q", ErrMalformedAddress, text)
	}

	return CellAddress{Column: text[:i], Row: row}, nil
}

// MustParseCellAddress is like ParseCellAddress but panics on error.
func MustParseCellAddress(text string) CellAddress {
	addr, err := ParseCellAddress(text)
	if err != nil {
		panic(err)
	}
	return addr
}

// String formats the address as column letters followed by the row number.
func (a CellAddress) String() string {
	return a.Column + strconv.Itoa(a.Row)
}

// IsZero reports whether a is the zero address.
func (a CellAddress) IsZero() bool {
	return a.Column == "" && a.Row == 0
}

// Shift returns a copy of a moved down by rows.
func (a CellAddress) Shift(rows int) CellAddress {
	return CellAddress{Column: a.Column, Row: a.Row + rows}
}

// ColumnIndex converts a column name to its 1-based index (A=1, Z=26, AA=27).
func ColumnIndex(column string) (int, error) {
	n, err := excelize.ColumnNameToNumber(column)
	if err != nil {
		return 0, fmt.Errorf("%w: column %q", ErrMalformedAddress, column)
	}
	return n, nil
}

// ColumnName converts a 1-based column index to its name.
func ColumnName(index int) (string, error) {
	name, err := excelize.ColumnNumberToName(index)
	if err != nil {
		return "", fmt.Errorf("%w: column %d", ErrMalformedAddress, index)
	}
	return name, nil
}
