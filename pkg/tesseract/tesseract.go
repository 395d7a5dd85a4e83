// Package tesseract detects words with the Tesseract OCR engine.
//
// Tesseract support is compiled in with the "ocr" build tag:
//
//	go build -tags ocr
//
// which requires libtesseract and leptonica. On Ubuntu/Debian:
//
//	apt-get install libtesseract-dev libleptonica-dev tesseract-ocr-eng
package tesseract

import (
	"errors"
	"image"
	"strings"

	"github.com/lehigh-university-libraries/tablesep/pkg/hocr"
)

// ErrOCRNotEnabled is returned when Tesseract support was not compiled in
var ErrOCRNotEnabled = errors.New("tesseract support not enabled; rebuild with -tags ocr")

// Provider implements the Tesseract word detection provider
type Provider struct{}

// New creates a new Tesseract provider
func New() *Provider {
	return &Provider{}
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "tesseract"
}

// wordBox converts a half-open Tesseract box into an inclusive word box
func wordBox(text string, box image.Rectangle) hocr.WordBox {
	return hocr.WordBox{
		Text:   strings.TrimSpace(text),
		Left:   box.Min.X,
		Top:    box.Min.Y,
		Right:  max(box.Max.X-1, box.Min.X),
		Bottom: max(box.Max.Y-1, box.Min.Y),
	}
}
