package models

// ColumnOrder selects how column names are compared when looking for the
// right-most column of a sheet.
type ColumnOrder int

const (
	// ColumnOrderLexical compares column names as plain strings, so "B" sorts
	// after "AA". Wide sheets lose their trailing columns from the range.
	ColumnOrderLexical ColumnOrder = iota
	// ColumnOrderNumeric compares column names by their base-26 index.
	ColumnOrderNumeric
)

// String returns the order name used in job files and flags.
func (o ColumnOrder) String() string {
	if o == ColumnOrderNumeric {
		return "numeric"
	}
	return "lexical"
}

// CompareColumns returns -1, 0 or 1 depending on whether a sorts before,
// equal to or after b.
func (o ColumnOrder) CompareColumns(a, b string) int {
	if o == ColumnOrderNumeric && len(a) != len(b) {
		// Valid column names of different length order by length.
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// MaxColumn returns the later of two column names.
func (o ColumnOrder) MaxColumn(a, b string) string {
	if o.CompareColumns(a, b) >= 0 {
		return a
	}
	return b
}

// Compare orders two addresses by row, then by column.
func (o ColumnOrder) Compare(a, b CellAddress) int {
	switch {
	case a.Row < b.Row:
		return -1
	case a.Row > b.Row:
		return 1
	}
	return o.CompareColumns(a.Column, b.Column)
}

// Less reports whether a sorts before b.
func (o ColumnOrder) Less(a, b CellAddress) bool {
	return o.Compare(a, b) < 0
}
