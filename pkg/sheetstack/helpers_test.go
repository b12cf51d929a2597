package sheetstack

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ukaji3/sheetstack-go/pkg/sheetstack/models"
	"github.com/xuri/excelize/v2"
)

// xlsxBlob builds an xlsx workbook whose first sheet holds cells and merges.
func xlsxBlob(t *testing.T, cells map[string]interface{}, merges ...[2]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for ref, v := range cells {
		if err := f.SetCellValue("Sheet1", ref, v); err != nil {
			t.Fatalf("SetCellValue(%s) failed: %v", ref, err)
		}
	}
	for _, m := range merges {
		if err := f.MergeCell("Sheet1", m[0], m[1]); err != nil {
			t.Fatalf("MergeCell(%s, %s) failed: %v", m[0], m[1], err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}
	return buf.Bytes()
}

// stubCodec decodes every blob to the same workbook.
type stubCodec struct {
	wb  *models.Workbook
	err error
}

func (c stubCodec) Decode([]byte) (*models.Workbook, error) {
	return c.wb, c.err
}

func (c stubCodec) Encode(*models.Workbook) ([]byte, error) {
	return []byte("encoded"), nil
}

// failingBlob fails after an optional delay.
type failingBlob struct {
	delay time.Duration
}

var errDisk = errors.New("disk unplugged")

func (b failingBlob) ReadBlob(context.Context) ([]byte, error) {
	time.Sleep(b.delay)
	return nil, errDisk
}

// slowBlob returns its bytes after a delay.
type slowBlob struct {
	data  []byte
	delay time.Duration
}

func (b slowBlob) ReadBlob(context.Context) ([]byte, error) {
	time.Sleep(b.delay)
	return b.data, nil
}

func mustGet(t *testing.T, s *models.Sheet, ref string) models.Value {
	t.Helper()
	v, ok := s.Get(models.MustParseCellAddress(ref))
	if !ok {
		t.Fatalf("Expected cell %s to be occupied", ref)
	}
	return v
}
