// Package layout stacks sheets vertically and derives their column widths.
package layout

import "github.com/ukaji3/sheetstack-go/pkg/sheetstack/models"

// Measured is a sheet together with a range computed from its current cells.
// Merge only accepts measured sheets, so every merge starts from a fresh range.
type Measured struct {
	Sheet *models.Sheet
	Range models.Range
}

// Measure computes the range of s and pairs the two.
func Measure(s *models.Sheet, order models.ColumnOrder) Measured {
	return Measured{Sheet: s, Range: s.ComputeRange(order)}
}

// RowOffset returns how far the rows of a sheet appended below base move:
// the row span of base plus gap. An empty base counts as a span of 0.
func RowOffset(base models.Range, gap int) int {
	return base.RowCount() + gap
}

// Merge appends addition below base, leaving gap rows between them, and
// returns base with its updated range. Base is modified in place; addition is
// not modified.
//
// Cells of addition keep their column and move down by RowOffset. A cell that
// lands on an occupied address overwrites it. Merge regions of addition are
// shifted by the same offset and appended after those of base.
func Merge(base, addition Measured, gap int, order models.ColumnOrder) Measured {
	offset := RowOffset(base.Range, gap)

	for _, addr := range addition.Sheet.Addresses() {
		v, _ := addition.Sheet.Get(addr)
		base.Sheet.Set(addr.Shift(offset), v)
	}

	for _, m := range addition.Sheet.MergeRegions() {
		base.Sheet.AddMergeRegion(m.ShiftRows(offset))
	}

	base.Range = unionRange(base.Range, addition.Range, offset, order)
	return base
}

// unionRange returns the range covering base and addition moved down by offset.
func unionRange(base, addition models.Range, offset int, order models.ColumnOrder) models.Range {
	if addition.IsEmpty() {
		return base
	}
	shifted := addition.End.Shift(offset)
	if base.IsEmpty() {
		return models.Range{Start: models.Origin, End: shifted}
	}

	end := models.CellAddress{
		Column: order.MaxColumn(base.End.Column, shifted.Column),
		Row:    max(base.End.Row, shifted.Row),
	}
	return models.Range{Start: models.Origin, End: end}
}
