// Package components finds words as connected components of dark pixels.
// It needs no OCR engine and yields placeholder text, which is enough for
// content masks.
package components

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/lehigh-university-libraries/tablesep/pkg/hocr"
	"github.com/lehigh-university-libraries/tablesep/pkg/providers"
)

// Provider implements connected component word detection
type Provider struct{}

// New creates a new components provider
func New() *Provider {
	return &Provider{}
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "components"
}

// ValidateConfig accepts any configuration
func (p *Provider) ValidateConfig(config providers.Config) error {
	return nil
}

// DetectWords decodes the page and groups its ink into word boxes
func (p *Provider) DetectWords(ctx context.Context, config providers.Config, imagePath string) ([]hocr.WordBox, error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", imagePath, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return hocr.DetectWords(img), nil
}
