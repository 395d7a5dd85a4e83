//go:build ocr

package tesseract

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"github.com/lehigh-university-libraries/tablesep/pkg/hocr"
	"github.com/lehigh-university-libraries/tablesep/pkg/providers"
)

// ValidateConfig checks that every requested language is installed
func (p *Provider) ValidateConfig(config providers.Config) error {
	if len(config.Languages) == 0 {
		return nil
	}
	installed, err := gosseract.GetAvailableLanguages()
	if err != nil {
		return fmt.Errorf("failed to list tesseract languages: %w", err)
	}
	have := make(map[string]bool, len(installed))
	for _, l := range installed {
		have[l] = true
	}
	for _, l := range config.Languages {
		if !have[l] {
			return fmt.Errorf("tesseract language %q not installed", l)
		}
	}
	return nil
}

// DetectWords runs Tesseract on the page and returns its word boxes
func (p *Provider) DetectWords(ctx context.Context, config providers.Config, imagePath string) ([]hocr.WordBox, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImage(imagePath); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}
	if len(config.Languages) > 0 {
		if err := client.SetLanguage(config.Languages...); err != nil {
			return nil, fmt.Errorf("set languages: %w", err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("recognize words: %w", err)
	}

	words := make([]hocr.WordBox, 0, len(boxes))
	for _, b := range boxes {
		words = append(words, wordBox(b.Word, b.Box))
	}
	return words, nil
}
