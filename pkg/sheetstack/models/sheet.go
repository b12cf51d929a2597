package models

import "fmt"

// Sheet is a sparse grid of addressed cells plus merge and width metadata.
// The zero value is not usable; create sheets with NewSheet.
type Sheet struct {
	cells  map[CellAddress]Value
	order  []CellAddress
	merges []MergeRegion
	widths []float64
}

// NewSheet returns an empty sheet.
func NewSheet() *Sheet {
	return &Sheet{cells: make(map[CellAddress]Value)}
}

// SheetFromRows builds a sheet from a row-major table. Row 0 of the table
// becomes sheet row 1 and column 0 becomes column A. Nil and Empty values
// leave the cell unoccupied. A value beyond the last sheet column fails with
// ErrInvalidRange.
func SheetFromRows(rows [][]Value) (*Sheet, error) {
	s := NewSheet()
	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			if _, ok := v.(EmptyCell); ok {
				continue
			}
			col, err := ColumnName(c + 1)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %d is beyond the last sheet column", ErrInvalidRange, r+1, c+1)
			}
			s.Set(CellAddress{Column: col, Row: r + 1}, v)
		}
	}
	return s, nil
}

// TitleSheet returns a one-cell sheet holding title at A1.
func TitleSheet(title string) *Sheet {
	s := NewSheet()
	s.Set(Origin, title)
	return s
}

// Set stores v at addr, overwriting any previous value. The cell keeps its
// original position in Addresses when overwritten. Set does not refresh any
// range; call ComputeRange afterwards.
func (s *Sheet) Set(addr CellAddress, v Value) {
	if _, ok := s.cells[addr]; !ok {
		s.order = append(s.order, addr)
	}
	s.cells[addr] = v
}

// Get returns the value at addr and whether the cell is occupied.
func (s *Sheet) Get(addr CellAddress) (Value, bool) {
	v, ok := s.cells[addr]
	return v, ok
}

// Len returns the number of occupied cells.
func (s *Sheet) Len() int {
	return len(s.order)
}

// Addresses returns the occupied addresses in insertion order.
func (s *Sheet) Addresses() []CellAddress {
	out := make([]CellAddress, len(s.order))
	copy(out, s.order)
	return out
}

// ComputeRange returns A1:<max column><max row> over the occupied cells, or
// the empty range when the sheet has no cells. The maximum column is chosen
// with order.
func (s *Sheet) ComputeRange(order ColumnOrder) Range {
	if len(s.order) == 0 {
		return Range{}
	}
	maxRow := 0
	maxCol := ""
	for _, addr := range s.order {
		if addr.Row > maxRow {
			maxRow = addr.Row
		}
		if maxCol == "" {
			maxCol = addr.Column
		} else {
			maxCol = order.MaxColumn(maxCol, addr.Column)
		}
	}
	return Range{Start: Origin, End: CellAddress{Column: maxCol, Row: maxRow}}
}

// RequireRange is like ComputeRange but fails with ErrInvalidRange when the
// sheet is empty.
func (s *Sheet) RequireRange(order ColumnOrder) (Range, error) {
	r := s.ComputeRange(order)
	if r.IsEmpty() {
		return Range{}, ErrInvalidRange
	}
	return r, nil
}

// MergeRegions returns the merged regions in the order they were added.
func (s *Sheet) MergeRegions() []MergeRegion {
	out := make([]MergeRegion, len(s.merges))
	copy(out, s.merges)
	return out
}

// AddMergeRegion appends a merged region. Overlaps are not checked.
func (s *Sheet) AddMergeRegion(m MergeRegion) {
	s.merges = append(s.merges, m)
}

// ColumnWidths returns the width hints; width i applies to column i+1.
func (s *Sheet) ColumnWidths() []float64 {
	out := make([]float64, len(s.widths))
	copy(out, s.widths)
	return out
}

// SetColumnWidths replaces the width hints.
func (s *Sheet) SetColumnWidths(widths []float64) {
	s.widths = append([]float64(nil), widths...)
}

// Clone returns a deep copy of the sheet structure. Cell values are shared.
func (s *Sheet) Clone() *Sheet {
	c := &Sheet{
		cells:  make(map[CellAddress]Value, len(s.cells)),
		order:  s.Addresses(),
		merges: s.MergeRegions(),
		widths: s.ColumnWidths(),
	}
	for k, v := range s.cells {
		c.cells[k] = v
	}
	return c
}
