package separator

import (
	"bytes"
	"testing"

	"github.com/lehigh-university-libraries/tablesep/pkg/hocr"
	"github.com/lehigh-university-libraries/tablesep/pkg/table"
)

func TestHasContent(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Revenue", true},
		{"a.", true},
		{"$1,000", true},
		{"...", false},
		{"-", false},
		{"", false},
		{"   ", false},
		{" (--) ", false},
		{"§", true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := HasContent(tt.text); got != tt.want {
				t.Errorf("HasContent(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestContentMaskFillsInclusiveBox(t *testing.T) {
	words := []hocr.WordBox{{Text: "Revenue", Left: 10, Top: 10, Right: 40, Bottom: 20}}
	mask := ContentMask(100, 100, words, nil)

	if b := mask.Bounds(); b.Dx() != 100 || b.Dy() != 100 {
		t.Fatalf("mask bounds = %v, want 100x100", b)
	}

	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			inside := x >= 10 && x <= 40 && y >= 10 && y <= 20
			got := mask.GrayAt(x, y).Y
			if inside && got != Foreground {
				t.Fatalf("pixel (%d,%d) = %d, want %d", x, y, got, Foreground)
			}
			if !inside && got != Background {
				t.Fatalf("pixel (%d,%d) = %d, want %d", x, y, got, Background)
			}
		}
	}
}

func TestContentMaskSkipsPunctuation(t *testing.T) {
	words := []hocr.WordBox{
		{Text: "...", Left: 10, Top: 10, Right: 40, Bottom: 20},
		{Text: " - ", Left: 50, Top: 50, Right: 60, Bottom: 60},
	}
	mask := ContentMask(100, 100, words, nil)
	for _, v := range mask.Pix {
		if v != 0 {
			t.Fatal("punctuation-only words must not mark content")
		}
	}
}

func TestContentMaskIdempotent(t *testing.T) {
	word := hocr.WordBox{Text: "Total", Left: 5, Top: 5, Right: 30, Bottom: 12}
	once := ContentMask(64, 48, []hocr.WordBox{word}, nil)
	twice := ContentMask(64, 48, []hocr.WordBox{word, word}, nil)
	if !bytes.Equal(once.Pix, twice.Pix) {
		t.Error("rasterising a word twice differs from rasterising it once")
	}
}

func TestContentMaskErasesMergedCells(t *testing.T) {
	words := []hocr.WordBox{
		{Text: "Revenue", Left: 10, Top: 10, Right: 40, Bottom: 20},
		{Text: "2019", Left: 70, Top: 10, Right: 90, Bottom: 20},
	}
	tbl := &table.Table{
		Cells: [][]table.Cell{{
			{X0: 0, Y0: 0, X1: 60, Y1: 30, StartRow: 0, EndRow: 1, StartCol: 0, EndCol: 2},
			{X0: 65, Y0: 0, X1: 99, Y1: 30, StartRow: 0, EndRow: 0, StartCol: 3, EndCol: 3},
		}},
	}

	mask := ContentMask(100, 100, words, tbl)

	for y := 0; y <= 30; y++ {
		for x := 0; x <= 60; x++ {
			if mask.GrayAt(x, y).Y != Background {
				t.Fatalf("merged cell pixel (%d,%d) still marked", x, y)
			}
		}
	}
	if mask.GrayAt(80, 15).Y != Foreground {
		t.Error("single cell content must survive erasure")
	}
}

func TestContentMaskClipsToPage(t *testing.T) {
	words := []hocr.WordBox{{Text: "edge", Left: 90, Top: -5, Right: 150, Bottom: 5}}
	mask := ContentMask(100, 20, words, nil)
	if mask.GrayAt(99, 0).Y != Foreground || mask.GrayAt(89, 0).Y != Background {
		t.Error("word box not clipped to the page")
	}
}
