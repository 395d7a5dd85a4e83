package tesseract

import (
	"image"
	"testing"

	"github.com/lehigh-university-libraries/tablesep/pkg/hocr"
)

func TestProvider_Name(t *testing.T) {
	if got := New().Name(); got != "tesseract" {
		t.Errorf("Expected name 'tesseract', got '%s'", got)
	}
}

func TestWordBox(t *testing.T) {
	tests := []struct {
		name string
		text string
		box  image.Rectangle
		want hocr.WordBox
	}{
		{"regular", " Total\n", image.Rect(10, 20, 41, 31), hocr.WordBox{Text: "Total", Left: 10, Top: 20, Right: 40, Bottom: 30}},
		{"single pixel", "i", image.Rect(5, 5, 6, 6), hocr.WordBox{Text: "i", Left: 5, Top: 5, Right: 5, Bottom: 5}},
		{"empty box", ".", image.Rect(5, 5, 5, 5), hocr.WordBox{Text: ".", Left: 5, Top: 5, Right: 5, Bottom: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wordBox(tt.text, tt.box); got != tt.want {
				t.Errorf("wordBox() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
