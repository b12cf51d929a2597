package sheetstack

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ukaji3/sheetstack-go/pkg/sheetstack/models"
	"github.com/ukaji3/sheetstack-go/pkg/sheetstack/parser"
)

func TestExportTables(t *testing.T) {
	sources := []Source{
		TableSource([][]models.Value{{"a", "b"}, {"c", "d"}}),
		TableSource([][]models.Value{{"e", "f"}}),
	}

	opts := DefaultOptions()
	opts.ColumnWidth = 12
	res, err := Export(context.Background(), sources, opts)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	first, err := res.Workbook.First()
	if err != nil {
		t.Fatalf("First failed: %v", err)
	}
	if first.Name != "Sheet" {
		t.Errorf("Expected sheet name 'Sheet', got %q", first.Name)
	}

	// first table spans rows 1..2: offset = 1 + 2
	expected := map[string]string{"A1": "a", "B1": "b", "A2": "c", "B2": "d", "A4": "e", "B4": "f"}
	for ref, v := range expected {
		if got := mustGet(t, first.Sheet, ref); got != v {
			t.Errorf("cell %s = %v, expected %s", ref, got, v)
		}
	}
	if first.Sheet.Len() != len(expected) {
		t.Errorf("Expected %d cells, got %d", len(expected), first.Sheet.Len())
	}
	if res.Range.String() != "A1:B4" {
		t.Errorf("Expected range A1:B4, got %s", res.Range)
	}
	if widths := first.Sheet.ColumnWidths(); len(widths) != 2 || widths[0] != 12 {
		t.Errorf("Expected widths [12 12], got %v", widths)
	}

	// The encoded bytes decode back to the same layout.
	sheet, rng, err := Decode(parser.Codec{}, res.Bytes, models.ColumnOrderLexical)
	if err != nil {
		t.Fatalf("Decode of exported bytes failed: %v", err)
	}
	if rng.String() != "A1:B4" {
		t.Errorf("Expected decoded range A1:B4, got %s", rng)
	}
	if got := mustGet(t, sheet, "B4"); got != "f" {
		t.Errorf("Expected decoded B4 = f, got %v", got)
	}
}

func TestExportTitledBlob(t *testing.T) {
	blob := xlsxBlob(t, map[string]interface{}{"A1": "Name", "B1": "Qty", "A2": "bolt", "B2": 3},
		[2]string{"A3", "B3"})

	res, err := Export(context.Background(), []Source{BlobSourceOf("Report", Bytes(blob))}, DefaultOptions())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	s := res.Workbook.Sheets[0].Sheet

	if got := mustGet(t, s, "A1"); got != "Report" {
		t.Errorf("Expected title at A1, got %v", got)
	}
	// title row count 0, content gap 1: content row 1 lands on row 2
	expected := map[string]models.Value{"A2": "Name", "B2": "Qty", "A3": "bolt", "B3": int64(3)}
	for ref, v := range expected {
		if got := mustGet(t, s, ref); got != v {
			t.Errorf("cell %s = %v (%T), expected %v", ref, got, got, v)
		}
	}

	regions := s.MergeRegions()
	want := models.MergeRegion{StartRow: 3, StartCol: 0, EndRow: 3, EndCol: 1}
	if len(regions) != 1 || regions[0] != want {
		t.Errorf("Expected regions [%+v], got %+v", want, regions)
	}
}

func TestExportTableThenBlob(t *testing.T) {
	blob := xlsxBlob(t, map[string]interface{}{"A1": "x"})
	sources := []Source{
		TableSource([][]models.Value{{"head"}}),
		BlobSourceOf("Detail", Bytes(blob)),
		TableSource([][]models.Value{{"tail"}}),
	}

	res, err := Export(context.Background(), sources, DefaultOptions())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	s := res.Workbook.Sheets[0].Sheet

	// head at A1; title gap 2 from a 0-row span; content gap 1 from A1:A3;
	// tail gap 2 from A1:A4.
	expected := map[string]string{"A1": "head", "A3": "Detail", "A4": "x", "A6": "tail"}
	for ref, v := range expected {
		if got := mustGet(t, s, ref); got != v {
			t.Errorf("cell %s = %v, expected %s", ref, got, v)
		}
	}
	if s.Len() != len(expected) {
		t.Errorf("Expected %d cells, got %d", len(expected), s.Len())
	}
}

func TestExportUntitledBlobGetsEmptyTitle(t *testing.T) {
	blob := xlsxBlob(t, map[string]interface{}{"A1": "x"})

	res, err := Export(context.Background(), []Source{{Blob: Bytes(blob)}}, DefaultOptions())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	s := res.Workbook.Sheets[0].Sheet
	if got := mustGet(t, s, "A1"); got != "" {
		t.Errorf("Expected empty title at A1, got %v", got)
	}
	if got := mustGet(t, s, "A2"); got != "x" {
		t.Errorf("Expected content at A2, got %v", got)
	}
}

func TestExportEmptyWorkbook(t *testing.T) {
	opts := DefaultOptions()
	opts.Codec = stubCodec{wb: &models.Workbook{}}

	res, err := Export(context.Background(), []Source{BlobSourceOf("Empty", Bytes("xx"))}, opts)
	if res != nil {
		t.Errorf("Expected no result, got %+v", res)
	}
	if !errors.Is(err, ErrEmptyWorkbook) {
		t.Fatalf("Expected ErrEmptyWorkbook, got %v", err)
	}
	var srcErr *SourceError
	if !errors.As(err, &srcErr) || srcErr.Index != 0 || srcErr.Title != "Empty" {
		t.Errorf("Expected SourceError for source 0, got %v", err)
	}
}

func TestExportCorruptBlob(t *testing.T) {
	sources := []Source{
		TableSource([][]models.Value{{"ok"}}),
		BlobSourceOf("Broken", Bytes("not a workbook")),
	}

	_, err := Export(context.Background(), sources, DefaultOptions())
	if !errors.Is(err, ErrDecodeFailure) {
		t.Fatalf("Expected ErrDecodeFailure, got %v", err)
	}
	if errors.Is(err, ErrReadFailure) {
		t.Errorf("Expected a decode failure only, got %v", err)
	}
	var srcErr *SourceError
	if !errors.As(err, &srcErr) || srcErr.Index != 1 || srcErr.Title != "Broken" {
		t.Errorf("Expected SourceError for source 1, got %v", err)
	}
}

func TestExportTableTooWide(t *testing.T) {
	row := make([]models.Value, 16385)
	row[16384] = "overflow"
	sources := []Source{
		TableSource([][]models.Value{{"ok"}}),
		TableSource([][]models.Value{row}),
	}

	res, err := Export(context.Background(), sources, DefaultOptions())
	if res != nil {
		t.Errorf("Expected no result, got %+v", res)
	}
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("Expected ErrInvalidRange, got %v", err)
	}
	var srcErr *SourceError
	if !errors.As(err, &srcErr) || srcErr.Index != 1 {
		t.Errorf("Expected SourceError for source 1, got %v", err)
	}
}

func TestExportReadFailure(t *testing.T) {
	sources := []Source{
		TableSource([][]models.Value{{"a"}}),
		BlobSourceOf("Broken", failingBlob{}),
	}

	_, err := Export(context.Background(), sources, DefaultOptions())
	if !errors.Is(err, ErrReadFailure) {
		t.Fatalf("Expected ErrReadFailure, got %v", err)
	}
	if !errors.Is(err, errDisk) {
		t.Errorf("Expected the underlying error to be kept, got %v", err)
	}
	var srcErr *SourceError
	if !errors.As(err, &srcErr) || srcErr.Index != 1 {
		t.Errorf("Expected SourceError for source 1, got %v", err)
	}
}

func TestExportReportsEarliestFailure(t *testing.T) {
	blob := xlsxBlob(t, map[string]interface{}{"A1": "ok"})
	sources := []Source{
		BlobSourceOf("ok", Bytes(blob)),
		BlobSourceOf("slow failure", failingBlob{delay: 50 * time.Millisecond}),
		BlobSourceOf("fast failure", failingBlob{}),
	}

	opts := DefaultOptions()
	opts.Concurrency = 3
	_, err := Export(context.Background(), sources, opts)

	var srcErr *SourceError
	if !errors.As(err, &srcErr) {
		t.Fatalf("Expected SourceError, got %v", err)
	}
	if srcErr.Index != 1 {
		t.Errorf("Expected failure of source 1, got source %d", srcErr.Index)
	}
}

func TestExportKeepsSourceOrderUnderConcurrency(t *testing.T) {
	slow := xlsxBlob(t, map[string]interface{}{"A1": "first", "A2": "first-2"})
	fast := xlsxBlob(t, map[string]interface{}{"A1": "second"})
	sources := []Source{
		BlobSourceOf("One", slowBlob{data: slow, delay: 50 * time.Millisecond}),
		BlobSourceOf("Two", slowBlob{data: fast}),
	}

	run := func(concurrency int) *models.Sheet {
		opts := DefaultOptions()
		opts.Concurrency = concurrency
		res, err := Export(context.Background(), sources, opts)
		if err != nil {
			t.Fatalf("Export(concurrency=%d) failed: %v", concurrency, err)
		}
		return res.Workbook.Sheets[0].Sheet
	}

	sequential := run(1)
	concurrent := run(2)

	// One: title A1, content A2..A3. Two: title gap 2 from A1:A3 -> A5, content A6.
	expected := map[string]string{"A1": "One", "A2": "first", "A3": "first-2", "A5": "Two", "A6": "second"}
	for name, s := range map[string]*models.Sheet{"sequential": sequential, "concurrent": concurrent} {
		for ref, v := range expected {
			if got := mustGet(t, s, ref); got != v {
				t.Errorf("%s: cell %s = %v, expected %s", name, ref, got, v)
			}
		}
	}
}

func TestExportNoSources(t *testing.T) {
	if _, err := Export(context.Background(), nil, DefaultOptions()); !errors.Is(err, ErrNoSources) {
		t.Errorf("Expected ErrNoSources, got %v", err)
	}
}

func TestExportZeroOptions(t *testing.T) {
	res, err := Export(context.Background(), []Source{TableSource([][]models.Value{{"a"}})}, Options{})
	if err != nil {
		t.Fatalf("Export with zero options failed: %v", err)
	}
	if res.Workbook.Sheets[0].Name != "Sheet" {
		t.Errorf("Expected default sheet name, got %q", res.Workbook.Sheets[0].Name)
	}
	if len(res.Bytes) == 0 {
		t.Error("Expected encoded bytes")
	}
}

func TestExportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	_, err := ExportFile(context.Background(), path, []Source{TableSource([][]models.Value{{"a", 1}})}, DefaultOptions())
	if err != nil {
		t.Fatalf("ExportFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	table, err := DecodeToTable(parser.Codec{}, data, models.ColumnOrderLexical)
	if err != nil {
		t.Fatalf("DecodeToTable failed: %v", err)
	}
	if len(table) != 1 || len(table[0]) != 2 || table[0][0] != "a" || table[0][1] != int64(1) {
		t.Errorf("Expected [[a 1]], got %v", table)
	}
}
