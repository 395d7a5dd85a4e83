package separator

import (
	"fmt"

	"github.com/lehigh-university-libraries/tablesep/pkg/hocr"
	"github.com/lehigh-university-libraries/tablesep/pkg/table"
)

// Labels holds the full-resolution separator masks of one page
type Labels struct {
	// Rows has one entry per pixel row, Cols one per pixel column
	Rows []uint8
	Cols []uint8

	RowSpans []Span
	ColSpans []Span
}

// Synthesize runs the whole pipeline for a width×height page
func Synthesize(width, height int, words []hocr.WordBox, t *table.Table, opts Options) (*Labels, error) {
	mask := ContentMask(width, height, words, t)
	occupiedRows, occupiedCols := Project(mask)

	colSpans, err := Spans(t.Columns, occupiedCols, width, opts)
	if err != nil {
		return nil, fmt.Errorf("column separators: %w", err)
	}
	rowSpans, err := Spans(t.Rows, occupiedRows, height, opts)
	if err != nil {
		return nil, fmt.Errorf("row separators: %w", err)
	}

	return &Labels{
		Rows:     Paint(rowSpans, height),
		Cols:     Paint(colSpans, width),
		RowSpans: rowSpans,
		ColSpans: colSpans,
	}, nil
}

// Resize resamples both masks to an outHeight×outWidth image
func (l *Labels) Resize(outWidth, outHeight int) (rows, cols []uint8) {
	return Resample(l.Rows, outHeight), Resample(l.Cols, outWidth)
}
