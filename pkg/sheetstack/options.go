// Package sheetstack stacks tables and decoded workbooks into a single sheet.
package sheetstack

import (
	"github.com/rs/zerolog"
	"github.com/ukaji3/sheetstack-go/pkg/sheetstack/models"
	"github.com/ukaji3/sheetstack-go/pkg/sheetstack/parser"
)

const (
	// TitleGap is the gap left before a table or a blob title.
	TitleGap = 2
	// ContentGap is the gap between a blob title and the blob content.
	ContentGap = 1
)

// Codec converts between workbook bytes and workbooks.
type Codec interface {
	Decode(data []byte) (*models.Workbook, error)
	Encode(wb *models.Workbook) ([]byte, error)
}

// Options configures export behavior.
type Options struct {
	// ColumnWidth is the width applied to every occupied column.
	ColumnWidth float64
	// SheetName is the name of the single output sheet.
	SheetName string
	// Concurrency bounds how many blob sources are read and decoded at once.
	// 1 decodes strictly one after the other. Values below 1 mean 1.
	Concurrency int
	// ColumnOrder selects how the right-most column of a range is found.
	ColumnOrder models.ColumnOrder
	// Codec decodes blob sources and encodes the result.
	// If nil, the xlsx codec is used.
	Codec Codec
	// Logger receives progress events. The zero value discards them.
	Logger zerolog.Logger
}

// DefaultOptions returns default export options.
func DefaultOptions() Options {
	return Options{
		ColumnWidth: 20,
		SheetName:   "Sheet",
		Concurrency: 4,
		ColumnOrder: models.ColumnOrderLexical,
		Codec:       parser.Codec{},
		Logger:      zerolog.Nop(),
	}
}

// codec returns the configured codec or the xlsx codec.
func (o Options) codec() Codec {
	if o.Codec != nil {
		return o.Codec
	}
	return parser.Codec{}
}

// concurrency returns the decode concurrency, at least 1.
func (o Options) concurrency() int {
	if o.Concurrency < 1 {
		return 1
	}
	return o.Concurrency
}

// sheetName returns the output sheet name, "Sheet" when unset.
func (o Options) sheetName() string {
	if o.SheetName == "" {
		return "Sheet"
	}
	return o.SheetName
}
