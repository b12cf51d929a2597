package parser

import (
	"strings"

	"github.com/ukaji3/sheetstack-go/pkg/sheetstack/models"
	"github.com/xuri/excelize/v2"
)

// ExtractMergeRegions reads the merged cell ranges of a sheet into s.
func ExtractMergeRegions(f *excelize.File, sheetName string, s *models.Sheet) error {
	mergeCells, err := f.GetMergeCells(sheetName)
	if err != nil {
		return err
	}

	for _, mc := range mergeCells {
		region := parseRangeToRegion(mc.GetStartAxis() + ":" + mc.GetEndAxis())
		if region != nil {
			s.AddMergeRegion(*region)
		}
	}

	return nil
}

// WriteMergeRegions merges the cell ranges recorded on s in the named sheet.
func WriteMergeRegions(f *excelize.File, sheetName string, s *models.Sheet) error {
	for _, m := range s.MergeRegions() {
		topLeft, err := excelize.CoordinatesToCellName(m.StartCol+1, m.StartRow+1)
		if err != nil {
			return err
		}
		bottomRight, err := excelize.CoordinatesToCellName(m.EndCol+1, m.EndRow+1)
		if err != nil {
			return err
		}
		if err := f.MergeCell(sheetName, topLeft, bottomRight); err != nil {
			return err
		}
	}
	return nil
}

// parseRangeToRegion parses a range string like $A$1:$D$10 to a 0-based MergeRegion.
func parseRangeToRegion(rangeStr string) *models.MergeRegion {
	// Remove $ signs
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	// Split by :
	parts := strings.Split(rangeStr, ":")
	if len(parts) != 2 {
		return nil
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return nil
	}

	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return nil
	}

	return &models.MergeRegion{
		StartRow: startRow - 1,
		StartCol: startCol - 1,
		EndRow:   endRow - 1,
		EndCol:   endCol - 1,
	}
}
