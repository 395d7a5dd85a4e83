//go:build !ocr

package tesseract

import (
	"context"

	"github.com/lehigh-university-libraries/tablesep/pkg/hocr"
	"github.com/lehigh-university-libraries/tablesep/pkg/providers"
)

// ValidateConfig reports that Tesseract support is missing
func (p *Provider) ValidateConfig(config providers.Config) error {
	return ErrOCRNotEnabled
}

// DetectWords returns ErrOCRNotEnabled
func (p *Provider) DetectWords(ctx context.Context, config providers.Config, imagePath string) ([]hocr.WordBox, error) {
	return nil, ErrOCRNotEnabled
}
