// Package separator turns table grid lines and OCR word boxes into
// pixel-aligned row and column separator masks.
//
// A record goes through four stages: ContentMask rasterises the words,
// Project reduces the mask to occupied rows and columns, Spans/Bands paint
// a band around every interior grid line that fills the whitespace gutter
// between the nearest content on each side, and Resample brings a mask to
// the output resolution of the resized image.
package separator

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"

	"github.com/lehigh-university-libraries/tablesep/pkg/hocr"
	"github.com/lehigh-university-libraries/tablesep/pkg/table"
)

// Mask values used by every full-resolution mask in this package
const (
	Background uint8 = 0
	Foreground uint8 = 255
)

const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var (
	contentFill = image.NewUniform(color.Gray{Y: Foreground})
	eraseFill   = image.NewUniform(color.Gray{Y: Background})
)

// HasContent reports whether text still has characters once ASCII
// punctuation and surrounding whitespace are removed
func HasContent(text string) bool {
	stripped := strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, text)
	return strings.TrimSpace(stripped) != ""
}

// ContentMask builds a width×height mask where every word with real text is
// filled with Foreground, then clears the boxes of merged cells of t. A nil
// table erases nothing.
func ContentMask(width, height int, words []hocr.WordBox, t *table.Table) *image.Gray {
	mask := image.NewGray(image.Rect(0, 0, width, height))

	for _, w := range words {
		if !HasContent(w.Text) {
			continue
		}
		draw.Draw(mask, w.Rect(), contentFill, image.Point{}, draw.Src)
	}

	if t != nil {
		for _, cell := range t.MergedCells() {
			draw.Draw(mask, cell.Bounds(), eraseFill, image.Point{}, draw.Src)
		}
	}

	return mask
}
