package dataset

import (
	"fmt"
	"os"
	"runtime"

	yaml "go.yaml.in/yaml/v3"
)

// Config describes a split on disk and how its records are turned into
// samples. It is read once and passed by value.
type Config struct {
	Root   string `yaml:"root"`
	Images string `yaml:"images"`
	Labels string `yaml:"labels"`
	OCR    string `yaml:"ocr"`

	Resize    ResizeConfig    `yaml:"resize"`
	Normalize NormalizeConfig `yaml:"normalize"`
	Augment   AugmentConfig   `yaml:"augment"`

	// LeadMargin widens every separator band toward the preceding content
	LeadMargin int `yaml:"lead_margin"`
	Workers    int `yaml:"workers"`
}

// ResizeConfig picks the output resolution of a page
type ResizeConfig struct {
	// Fixed resizes every page to Width×Height
	Fixed  bool `yaml:"fixed"`
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	// Otherwise the shorter side is scaled to MinSide, unless that pushes
	// the longer side past MaxSide
	MinSide int `yaml:"min_side"`
	MaxSide int `yaml:"max_side"`
}

type NormalizeConfig struct {
	Mean [3]float32 `yaml:"mean,flow"`
	Std  [3]float32 `yaml:"std,flow"`
}

type AugmentConfig struct {
	Name        string  `yaml:"name"`
	Probability float64 `yaml:"probability"`
	MaxBorder   int     `yaml:"max_border"`
	Seed        uint64  `yaml:"seed"`
}

// DefaultConfig returns the settings used when no config file is given
func DefaultConfig() Config {
	return Config{
		Root:   ".",
		Images: "images",
		Labels: "labels",
		OCR:    "ocr",
		Resize: ResizeConfig{
			Width:   1024,
			Height:  1024,
			MinSide: 600,
			MaxSide: 1024,
		},
		Normalize: NormalizeConfig{
			Mean: [3]float32{0, 0, 0},
			Std:  [3]float32{1, 1, 1},
		},
		Augment: AugmentConfig{
			Name:        "none",
			Probability: 0.5,
			MaxBorder:   32,
		},
		Workers: runtime.NumCPU(),
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail deep inside a run
func (c Config) Validate() error {
	if c.Resize.Fixed {
		if c.Resize.Width <= 0 || c.Resize.Height <= 0 {
			return fmt.Errorf("fixed resize needs a positive width and height, got %dx%d", c.Resize.Width, c.Resize.Height)
		}
	} else if c.Resize.MinSide <= 0 || c.Resize.MaxSide < c.Resize.MinSide {
		return fmt.Errorf("resize needs 0 < min_side <= max_side, got %d and %d", c.Resize.MinSide, c.Resize.MaxSide)
	}
	for i, s := range c.Normalize.Std {
		if s == 0 {
			return fmt.Errorf("normalize std[%d] must be non-zero", i)
		}
	}
	if c.LeadMargin < 0 {
		return fmt.Errorf("lead_margin must not be negative, got %d", c.LeadMargin)
	}
	if c.Augment.Probability < 0 || c.Augment.Probability > 1 {
		return fmt.Errorf("augment probability must be in [0,1], got %g", c.Augment.Probability)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}
