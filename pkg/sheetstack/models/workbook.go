package models

import "errors"

// ErrEmptyWorkbook indicates a decoded workbook holds no sheets.
var ErrEmptyWorkbook = errors.New("workbook has no sheets")

// NamedSheet pairs a sheet with its tab name.
type NamedSheet struct {
	// Name is the sheet tab name.
	Name string
	// Sheet holds the cells.
	Sheet *Sheet
}

// Workbook is an ordered collection of named sheets.
type Workbook struct {
	// BookName is the workbook file name (no path), if known.
	BookName string
	// Sheets lists the sheets in tab order.
	Sheets []NamedSheet
}

// NewWorkbook returns a workbook holding a single sheet.
func NewWorkbook(name string, sheet *Sheet) *Workbook {
	return &Workbook{Sheets: []NamedSheet{{Name: name, Sheet: sheet}}}
}

// First returns the first sheet in tab order.
func (w *Workbook) First() (NamedSheet, error) {
	if w == nil || len(w.Sheets) == 0 {
		return NamedSheet{}, ErrEmptyWorkbook
	}
	return w.Sheets[0], nil
}

// Names returns the sheet names in tab order.
func (w *Workbook) Names() []string {
	names := make([]string, len(w.Sheets))
	for i, s := range w.Sheets {
		names[i] = s.Name
	}
	return names
}
