// Package parser reads and writes xlsx workbooks as models.Workbook values.
package parser

import (
	"bytes"
	"fmt"

	"github.com/ukaji3/sheetstack-go/pkg/sheetstack/models"
	"github.com/xuri/excelize/v2"
)

// Codec converts between xlsx bytes and workbooks using excelize.
type Codec struct {
	// Options are passed to excelize when opening a workbook.
	Options excelize.Options
}

// Decode reads every sheet of an xlsx workbook, in tab order.
func (c Codec) Decode(data []byte) (*models.Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data), c.Options)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	wb := &models.Workbook{}
	for _, sheetName := range f.GetSheetList() {
		s, err := ReadSheet(f, sheetName)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheetName, err)
		}
		wb.Sheets = append(wb.Sheets, models.NamedSheet{Name: sheetName, Sheet: s})
	}

	return wb, nil
}

// Encode writes the workbook as xlsx bytes.
func (c Codec) Encode(wb *models.Workbook) ([]byte, error) {
	if wb == nil || len(wb.Sheets) == 0 {
		return nil, models.ErrEmptyWorkbook
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, ns := range wb.Sheets {
		// A new file starts with "Sheet1"; reuse it for the first sheet.
		if i == 0 {
			if err := f.SetSheetName("Sheet1", ns.Name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(ns.Name); err != nil {
			return nil, fmt.Errorf("failed to create a new sheet: %w", err)
		}

		if err := WriteSheet(f, ns.Name, ns.Sheet); err != nil {
			return nil, fmt.Errorf("sheet %q: %w", ns.Name, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadSheet extracts the cells and merge regions of one sheet.
func ReadSheet(f *excelize.File, sheetName string) (*models.Sheet, error) {
	s := models.NewSheet()
	if err := ExtractCells(f, sheetName, s); err != nil {
		return nil, err
	}
	if err := ExtractMergeRegions(f, sheetName, s); err != nil {
		return nil, err
	}
	return s, nil
}

// WriteSheet writes cells, merge regions and column widths of s to a sheet.
func WriteSheet(f *excelize.File, sheetName string, s *models.Sheet) error {
	if err := WriteCells(f, sheetName, s); err != nil {
		return err
	}
	if err := WriteMergeRegions(f, sheetName, s); err != nil {
		return err
	}
	return WriteColumnWidths(f, sheetName, s.ColumnWidths())
}

// WriteColumnWidths sets width i on column i+1.
func WriteColumnWidths(f *excelize.File, sheetName string, widths []float64) error {
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetName, col, col, w); err != nil {
			return err
		}
	}
	return nil
}
