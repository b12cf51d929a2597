package sheetstack

import (
	"fmt"

	"github.com/ukaji3/sheetstack-go/pkg/sheetstack/models"
)

// Decode decodes an encoded workbook and returns its first sheet together
// with the range computed from the sheet's cells. The sheet is not modified.
// Codec errors are wrapped with ErrDecodeFailure.
func Decode(codec Codec, data []byte, order models.ColumnOrder) (*models.Sheet, models.Range, error) {
	wb, err := codec.Decode(data)
	if err != nil {
		return nil, models.Range{}, fmt.Errorf("%w: %w", ErrDecodeFailure, err)
	}
	first, err := wb.First()
	if err != nil {
		return nil, models.Range{}, err
	}
	return first.Sheet, first.Sheet.ComputeRange(order), nil
}

// DecodeToTable decodes an encoded workbook and flattens A1 through the
// computed bottom-right corner of its first sheet into rows. The first row
// is data like any other. Unoccupied cells hold models.Empty, so all rows
// have the same length.
func DecodeToTable(codec Codec, data []byte, order models.ColumnOrder) ([][]models.Value, error) {
	s, _, err := Decode(codec, data, order)
	if err != nil {
		return nil, err
	}
	r, err := s.RequireRange(order)
	if err != nil {
		return nil, err
	}
	return SheetToTable(s, r)
}

// SheetToTable flattens the cells of s inside r into rows.
func SheetToTable(s *models.Sheet, r models.Range) ([][]models.Value, error) {
	if r.IsEmpty() {
		return nil, models.ErrInvalidRange
	}
	startCol, err := models.ColumnIndex(r.Start.Column)
	if err != nil {
		return nil, err
	}
	endCol, err := models.ColumnIndex(r.End.Column)
	if err != nil {
		return nil, err
	}

	cols := make([]string, 0, endCol-startCol+1)
	for c := startCol; c <= endCol; c++ {
		name, err := models.ColumnName(c)
		if err != nil {
			return nil, err
		}
		cols = append(cols, name)
	}

	table := make([][]models.Value, 0, r.End.Row-r.Start.Row+1)
	for row := r.Start.Row; row <= r.End.Row; row++ {
		line := make([]models.Value, len(cols))
		for i, col := range cols {
			v, ok := s.Get(models.CellAddress{Column: col, Row: row})
			if !ok {
				v = models.Empty
			}
			line[i] = v
		}
		table = append(table, line)
	}
	return table, nil
}
