package sheetstack

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ukaji3/sheetstack-go/pkg/sheetstack/models"
)

// BlobSource yields the raw bytes of an encoded workbook.
type BlobSource interface {
	ReadBlob(ctx context.Context) ([]byte, error)
}

// Source is one section of an export: either a table or an encoded workbook.
type Source struct {
	// Title is written above blob content. Tables are not titled.
	Title string
	// Rows holds a table, row 0 first. Ignored when Blob is set.
	Rows [][]models.Value
	// Blob holds an encoded workbook whose first sheet is stacked.
	Blob BlobSource
}

// TableSource returns a tabular source.
func TableSource(rows [][]models.Value) Source {
	return Source{Rows: rows}
}

// BlobSourceOf returns a blob source with a title.
func BlobSourceOf(title string, blob BlobSource) Source {
	return Source{Title: title, Blob: blob}
}

// IsBlob reports whether the source must be read and decoded.
func (s Source) IsBlob() bool {
	return s.Blob != nil
}

// Bytes is a blob already held in memory.
type Bytes []byte

// ReadBlob returns the bytes unchanged.
func (b Bytes) ReadBlob(context.Context) ([]byte, error) {
	return b, nil
}

// File is a blob stored at a path.
type File string

// ReadBlob reads the whole file.
func (f File) ReadBlob(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailure, err)
	}
	data, err := os.ReadFile(string(f))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailure, err)
	}
	return data, nil
}

// Reader adapts an io.Reader into a blob source. It can be read only once.
type Reader struct {
	R io.Reader
}

// ReadBlob reads r to EOF.
func (r Reader) ReadBlob(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailure, err)
	}
	data, err := io.ReadAll(r.R)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailure, err)
	}
	return data, nil
}

// readBlob reads a blob and classifies any failure as ErrReadFailure.
func readBlob(ctx context.Context, b BlobSource) ([]byte, error) {
	data, err := b.ReadBlob(ctx)
	if err == nil {
		return data, nil
	}
	if errors.Is(err, ErrReadFailure) {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %w", ErrReadFailure, err)
}
