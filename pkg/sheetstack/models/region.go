package models

import "fmt"

// MergeRegion is a span of cells rendered as one. Coordinates are 0-based,
// unlike the 1-based rows of CellAddress.
type MergeRegion struct {
	// StartRow is the first row (0-based).
	StartRow int `json:"start_row"`
	// StartCol is the first column (0-based).
	StartCol int `json:"start_col"`
	// EndRow is the last row (0-based, inclusive).
	EndRow int `json:"end_row"`
	// EndCol is the last column (0-based, inclusive).
	EndCol int `json:"end_col"`
}

// MergeRegionFromCells builds a region from its 1-based corner addresses.
func MergeRegionFromCells(topLeft, bottomRight CellAddress) (MergeRegion, error) {
	startCol, err := ColumnIndex(topLeft.Column)
	if err != nil {
		return MergeRegion{}, err
	}
	endCol, err := ColumnIndex(bottomRight.Column)
	if err != nil {
		return MergeRegion{}, err
	}
	return MergeRegion{
		StartRow: topLeft.Row - 1,
		StartCol: startCol - 1,
		EndRow:   bottomRight.Row - 1,
		EndCol:   endCol - 1,
	}, nil
}

// Cells returns the 1-based corner addresses of the region.
func (m MergeRegion) Cells() (topLeft, bottomRight CellAddress, err error) {
	startCol, err := ColumnName(m.StartCol + 1)
	if err != nil {
		return
	}
	endCol, err := ColumnName(m.EndCol + 1)
	if err != nil {
		return
	}
	topLeft = CellAddress{Column: startCol, Row: m.StartRow + 1}
	bottomRight = CellAddress{Column: endCol, Row: m.EndRow + 1}
	return
}

// ShiftRows returns a copy of m moved down by rows. Columns are unchanged.
func (m MergeRegion) ShiftRows(rows int) MergeRegion {
	m.StartRow += rows
	m.EndRow += rows
	return m
}

// String renders the region as a 1-based reference such as "A1:C2".
func (m MergeRegion) String() string {
	topLeft, bottomRight, err := m.Cells()
	if err != nil {
		return fmt.Sprintf("R%dC%d:R%dC%d", m.StartRow, m.StartCol, m.EndRow, m.EndCol)
	}
	return topLeft.String() + ":" + bottomRight.String()
}
