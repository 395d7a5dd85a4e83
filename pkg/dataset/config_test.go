package dataset

import (
	"image"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tablesep.yaml")
	data := `root: /data/train
images: pages
lead_margin: 1
workers: 4
resize:
  fixed: true
  width: 512
  height: 768
normalize:
  mean: [0.5, 0.5, 0.5]
  std: [0.25, 0.25, 0.25]
augment:
  name: pad
  probability: 0.3
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Root != "/data/train" || cfg.Images != "pages" {
		t.Errorf("paths = %q %q", cfg.Root, cfg.Images)
	}
	if cfg.Labels != "labels" || cfg.OCR != "ocr" {
		t.Errorf("defaults lost: labels=%q ocr=%q", cfg.Labels, cfg.OCR)
	}
	if !cfg.Resize.Fixed || cfg.Resize.Width != 512 || cfg.Resize.Height != 768 {
		t.Errorf("resize = %+v", cfg.Resize)
	}
	if cfg.Normalize.Mean[1] != 0.5 || cfg.Normalize.Std[2] != 0.25 {
		t.Errorf("normalize = %+v", cfg.Normalize)
	}
	if cfg.Augment.Name != "pad" || cfg.Augment.Probability != 0.3 || cfg.Augment.MaxBorder != 32 {
		t.Errorf("augment = %+v", cfg.Augment)
	}
	if cfg.LeadMargin != 1 || cfg.Workers != 4 {
		t.Errorf("lead_margin=%d workers=%d", cfg.LeadMargin, cfg.Workers)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("workers: [1"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); err == nil {
		t.Error("expected error for invalid YAML")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("workers: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(invalid); err == nil {
		t.Error("expected validation error for zero workers")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"fixed without size", func(c *Config) { c.Resize.Fixed = true; c.Resize.Width = 0 }, true},
		{"min side above max side", func(c *Config) { c.Resize.MinSide = 2000 }, true},
		{"zero std", func(c *Config) { c.Normalize.Std[1] = 0 }, true},
		{"negative margin", func(c *Config) { c.LeadMargin = -1 }, true},
		{"probability above one", func(c *Config) { c.Augment.Probability = 1.5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOutputSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		cfg           ResizeConfig
		wantW, wantH  int
	}{
		{"fixed", 1000, 800, ResizeConfig{Fixed: true, Width: 1024, Height: 512}, 1024, 512},
		{"short side to min", 1000, 800, ResizeConfig{MinSide: 600, MaxSide: 1024}, 750, 600},
		{"long side capped", 3000, 600, ResizeConfig{MinSide: 600, MaxSide: 1024}, 1024, 205},
		{"upscale small page", 300, 200, ResizeConfig{MinSide: 600, MaxSide: 1024}, 900, 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := OutputSize(tt.width, tt.height, tt.cfg)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("OutputSize() = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tensor := Tensor{Height: 1, Width: 1, Channels: 3, Data: []float32{255, 0, 127.5}}
	Normalize(&tensor, NormalizeConfig{Mean: [3]float32{0.5, 0.5, 0.5}, Std: [3]float32{0.5, 0.5, 0.5}})
	want := []float32{1, -1, 0}
	for i := range want {
		if tensor.Data[i] != want[i] {
			t.Errorf("Data[%d] = %v, want %v", i, tensor.Data[i], want[i])
		}
	}
}

func TestGrayToRGBAndResize(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 4, 2))
	g.Pix[5] = 200

	rgb := GrayToRGB(g)
	if rgb.Width != 4 || rgb.Height != 2 || len(rgb.Data) != 24 {
		t.Fatalf("tensor shape = %+v", rgb)
	}
	for c := 0; c < 3; c++ {
		if rgb.At(1, 1, c) != 200 || rgb.At(0, 0, c) != 0 {
			t.Errorf("channel %d not replicated", c)
		}
	}

	if same := ResizeGray(g, 4, 2); same != g {
		t.Error("ResizeGray to the same size should return the input")
	}
	if r := ResizeGray(g, 8, 6); r.Bounds().Dx() != 8 || r.Bounds().Dy() != 6 {
		t.Errorf("ResizeGray bounds = %v", r.Bounds())
	}
}
