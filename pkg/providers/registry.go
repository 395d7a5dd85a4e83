package providers

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lehigh-university-libraries/tablesep/pkg/hocr"
)

// Registry manages all available providers
type Registry struct {
	providers map[string]Provider
}

// NewRegistry creates a new provider registry
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
	}
}

// Register adds a provider to the registry
func (r *Registry) Register(provider Provider) {
	r.providers[strings.ToLower(provider.Name())] = provider
}

// Get retrieves a provider by name
func (r *Registry) Get(name string) (Provider, error) {
	provider, exists := r.providers[strings.ToLower(name)]
	if !exists {
		return nil, fmt.Errorf("provider %s not found, available: %s", name, strings.Join(r.List(), ", "))
	}
	return provider, nil
}

// List returns all available provider names in sorted order
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasProvider checks if a provider is registered
func (r *Registry) HasProvider(name string) bool {
	_, exists := r.providers[strings.ToLower(name)]
	return exists
}

// DetectWords runs the provider named in config on imagePath
func (r *Registry) DetectWords(ctx context.Context, config Config, imagePath string) ([]hocr.WordBox, error) {
	provider, err := r.Get(config.Provider)
	if err != nil {
		return nil, err
	}
	if err := provider.ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", provider.Name(), err)
	}

	ctx, cancel := WithTimeout(ctx, config)
	defer cancel()

	words, err := provider.DetectWords(ctx, config, imagePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", provider.Name(), err)
	}
	return CleanWords(words), nil
}
