package sheetstack

import (
	"context"
	"fmt"
	"os"

	"github.com/ukaji3/sheetstack-go/pkg/sheetstack/layout"
	"github.com/ukaji3/sheetstack-go/pkg/sheetstack/models"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of a successful export.
type Result struct {
	// Workbook holds the single stacked sheet.
	Workbook *models.Workbook
	// Range is the range of the stacked sheet.
	Range models.Range
	// Bytes is the encoded workbook.
	Bytes []byte
}

// Export stacks sources top to bottom into one sheet and encodes it.
//
// A table is placed TitleGap rows below the previous section. A blob source
// contributes a one-cell title section, placed TitleGap rows below, followed
// by the first sheet of the decoded blob, placed ContentGap rows below the
// title. The first section starts at A1.
//
// Blob sources are read and decoded concurrently, then merged strictly in
// source order. Any failure aborts the export; the returned *SourceError
// names the earliest failing source and wraps ErrReadFailure,
// ErrDecodeFailure, ErrEmptyWorkbook or ErrInvalidRange.
func Export(ctx context.Context, sources []Source, opts Options) (*Result, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	log := opts.Logger
	codec := opts.codec()
	order := opts.ColumnOrder

	decoded, err := decodeBlobs(ctx, sources, opts)
	if err != nil {
		return nil, err
	}

	var acc *models.Sheet
	place := func(s *models.Sheet, gap int) {
		if acc == nil {
			acc = s
			return
		}
		base := layout.Measure(acc, order)
		log.Debug().
			Int("offset", layout.RowOffset(base.Range, gap)).
			Int("cells", s.Len()).
			Msg("merging section")
		layout.Merge(base, layout.Measure(s, order), gap, order)
	}

	for i, src := range sources {
		if src.IsBlob() {
			place(models.TitleSheet(src.Title), TitleGap)
			place(decoded[i], ContentGap)
		} else {
			table, err := models.SheetFromRows(src.Rows)
			if err != nil {
				return nil, NewSourceError(i, src.Title, err)
			}
			place(table, TitleGap)
		}
		log.Debug().Int("source", i).Bool("blob", src.IsBlob()).Str("title", src.Title).Msg("source stacked")
	}

	widths := layout.ApplyColumnWidths(acc, opts.ColumnWidth)
	wb := models.NewWorkbook(opts.sheetName(), acc)

	data, err := codec.Encode(wb)
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}

	rng := acc.ComputeRange(order)
	log.Info().
		Int("sources", len(sources)).
		Str("range", rng.String()).
		Int("columns", len(widths)).
		Int("bytes", len(data)).
		Msg("export complete")

	return &Result{Workbook: wb, Range: rng, Bytes: data}, nil
}

// ExportFile exports sources and writes the encoded workbook to path.
func ExportFile(ctx context.Context, path string, sources []Source, opts Options) (*Result, error) {
	res, err := Export(ctx, sources, opts)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, res.Bytes, 0644); err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}
	return res, nil
}

// decodeBlobs reads and decodes every blob source, at most
// opts.Concurrency at a time. The result is indexed like sources; table
// entries are nil.
func decodeBlobs(ctx context.Context, sources []Source, opts Options) ([]*models.Sheet, error) {
	sheets := make([]*models.Sheet, len(sources))
	errs := make([]error, len(sources))
	codec := opts.codec()

	var g errgroup.Group
	g.SetLimit(opts.concurrency())
	for i, src := range sources {
		if !src.IsBlob() {
			continue
		}
		i, src := i, src
		g.Go(func() error {
			data, err := readBlob(ctx, src.Blob)
			if err != nil {
				errs[i] = err
				return nil
			}
			s, _, err := Decode(codec, data, opts.ColumnOrder)
			if err != nil {
				errs[i] = err
				return nil
			}
			opts.Logger.Debug().Int("source", i).Int("bytes", len(data)).Int("cells", s.Len()).Msg("blob decoded")
			sheets[i] = s
			return nil
		})
	}
	_ = g.Wait()

	// Report the earliest failure so the error does not depend on scheduling.
	for i, err := range errs {
		if err != nil {
			opts.Logger.Error().Err(err).Int("source", i).Msg("source failed")
			return nil, NewSourceError(i, sources[i].Title, err)
		}
	}
	return sheets, nil
}
