package components

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/draw"

	"github.com/lehigh-university-libraries/tablesep/pkg/providers"
)

func writePage(t *testing.T) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 100, 100))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(10, 10, 31, 21), image.NewUniform(color.Black), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(60, 40, 81, 51), image.NewUniform(color.Black), image.Point{}, draw.Src)

	path := filepath.Join(t.TempDir(), "page.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProvider_Name(t *testing.T) {
	if got := New().Name(); got != "components" {
		t.Errorf("Expected name 'components', got '%s'", got)
	}
}

func TestProvider_DetectWords(t *testing.T) {
	p := New()
	if err := p.ValidateConfig(providers.Config{}); err != nil {
		t.Fatalf("ValidateConfig() error = %v", err)
	}

	words, err := p.DetectWords(context.Background(), providers.Config{}, writePage(t))
	if err != nil {
		t.Fatalf("DetectWords() error = %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("Expected 2 words, got %d: %+v", len(words), words)
	}
	if words[1].Left != 60 || words[1].Top != 40 || words[1].Right != 80 || words[1].Bottom != 50 {
		t.Errorf("second word = %+v", words[1])
	}
}

func TestProvider_DetectWordsErrors(t *testing.T) {
	p := New()
	dir := t.TempDir()

	if _, err := p.DetectWords(context.Background(), providers.Config{}, filepath.Join(dir, "none.png")); err == nil {
		t.Error("expected error for missing image")
	}

	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := p.DetectWords(context.Background(), providers.Config{}, garbage); err == nil {
		t.Error("expected error for undecodable image")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.DetectWords(ctx, providers.Config{}, writePage(t)); err == nil {
		t.Error("expected error for cancelled context")
	}
}
