package layout

import "github.com/ukaji3/sheetstack-go/pkg/sheetstack/models"

// ColumnWidths returns one width per occupied column, in the order columns
// are first seen among the occupied addresses.
//
// Columns are told apart by their first letter only, so AA and A count as
// one column. Sheets wider than 26 columns get fewer hints than columns.
func ColumnWidths(s *models.Sheet, width float64) []float64 {
	seen := make(map[byte]bool)
	var widths []float64
	for _, addr := range s.Addresses() {
		first := addr.Column[0]
		if seen[first] {
			continue
		}
		seen[first] = true
		widths = append(widths, width)
	}
	return widths
}

// ApplyColumnWidths computes the widths of s and stores them on the sheet.
func ApplyColumnWidths(s *models.Sheet, width float64) []float64 {
	widths := ColumnWidths(s, width)
	s.SetColumnWidths(widths)
	return widths
}
