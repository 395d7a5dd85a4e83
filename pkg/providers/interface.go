package providers

import (
	"context"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/tablesep/pkg/hocr"
)

// Config represents the configuration for a provider
type Config struct {
	Provider  string
	Languages []string
	Timeout   time.Duration
}

// Provider interface that all word detection backends must implement
type Provider interface {
	// DetectWords returns the word boxes found on the page at imagePath
	DetectWords(ctx context.Context, config Config, imagePath string) ([]hocr.WordBox, error)
	// Name returns the provider's name
	Name() string
	// ValidateConfig validates the provider-specific configuration
	ValidateConfig(config Config) error
}

// CleanWords trims word text and drops words that are blank or have an
// inverted box
func CleanWords(words []hocr.WordBox) []hocr.WordBox {
	cleaned := make([]hocr.WordBox, 0, len(words))
	for _, w := range words {
		w.Text = strings.TrimSpace(w.Text)
		if w.Text == "" || w.Right < w.Left || w.Bottom < w.Top {
			continue
		}
		cleaned = append(cleaned, w)
	}
	return cleaned
}

// WithTimeout derives a context bounded by config.Timeout when it is set
func WithTimeout(ctx context.Context, config Config) (context.Context, context.CancelFunc) {
	if config.Timeout > 0 {
		return context.WithTimeout(ctx, config.Timeout)
	}
	return context.WithCancel(ctx)
}
