package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/sheetstack-go/pkg/sheetstack/models"
	"github.com/xuri/excelize/v2"
)

// ExtractCells reads the non-empty cells of a sheet into s, row by row and
// left to right. Values keep their stored type: booleans become bool,
// numbers int64 or float64, date-formatted numbers and ISO dates time.Time,
// and text stays string.
func ExtractCells(f *excelize.File, sheetName string, s *models.Sheet) error {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return err
	}

	r := &cellReader{f: f, sheet: sheetName, dateStyles: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		r.date1904 = *props.Date1904
	}

	for rowIdx, row := range rows {
		rowNum := rowIdx + 1 // 1-based row index
		for colIdx, raw := range row {
			if raw == "" {
				continue
			}
			col, err := excelize.ColumnNumberToName(colIdx + 1)
			if err != nil {
				return err
			}
			addr := models.CellAddress{Column: col, Row: rowNum}
			v, err := r.value(addr.String(), raw)
			if err != nil {
				return err
			}
			s.Set(addr, v)
		}
	}

	return nil
}

// WriteCells writes every occupied cell of s to the named sheet.
func WriteCells(f *excelize.File, sheetName string, s *models.Sheet) error {
	for _, addr := range s.Addresses() {
		v, _ := s.Get(addr)
		if err := f.SetCellValue(sheetName, addr.String(), v); err != nil {
			return err
		}
	}
	return nil
}

// cellReader converts raw cell text to typed values for one sheet.
type cellReader struct {
	f          *excelize.File
	sheet      string
	date1904   bool
	dateStyles map[int]bool // style ID -> has a date number format
}

func (r *cellReader) value(cell, raw string) (models.Value, error) {
	cellType, err := r.f.GetCellType(r.sheet, cell)
	if err != nil {
		return nil, err
	}

	switch cellType {
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "TRUE"), nil
	case excelize.CellTypeDate:
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			return t, nil
		}
		if t, err := time.Parse("2006-01-02T15:04:05", raw); err == nil {
			return t, nil
		}
		return raw, nil
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		isDate, err := r.hasDateFormat(cell)
		if err != nil {
			return nil, err
		}
		if isDate {
			serial, err := strconv.ParseFloat(raw, 64)
			if err == nil {
				if t, err := excelize.ExcelDateToTime(serial, r.date1904); err == nil {
					return t, nil
				}
			}
			return raw, nil
		}
		return parseNumber(raw), nil
	}

	// Shared and inline strings, formula results and error codes stay text.
	return raw, nil
}

func (r *cellReader) hasDateFormat(cell string) (bool, error) {
	styleID, err := r.f.GetCellStyle(r.sheet, cell)
	if err != nil {
		return false, err
	}
	if isDate, ok := r.dateStyles[styleID]; ok {
		return isDate, nil
	}

	isDate := false
	if style, err := r.f.GetStyle(styleID); err == nil {
		if style.CustomNumFmt != nil {
			isDate = isDateFormat(*style.CustomNumFmt)
		} else {
			isDate = isBuiltInDateFormat(style.NumFmt)
		}
	}
	r.dateStyles[styleID] = isDate
	return isDate, nil
}

// isBuiltInDateFormat reports whether a built-in number format ID renders a
// date or time.
func isBuiltInDateFormat(id int) bool {
	return (id >= 14 && id <= 22) || (id >= 45 && id <= 47)
}

// isDateFormat reports whether a custom number format code contains date or
// time tokens outside quoted text and bracketed sections.
func isDateFormat(code string) bool {
	inQuote, inBracket := false, false
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case c == '\\':
			i++
		case c == '"':
			inQuote = !inQuote
		case inQuote:
		case c == '[':
			inBracket = true
		case c == ']':
			inBracket = false
		case inBracket:
		case strings.IndexByte("yYdDhHsS", c) >= 0:
			return true
		}
	}
	return false
}

// parseNumber parses a raw numeric value.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseNumber(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}
