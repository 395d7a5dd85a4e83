// Package augment perturbs a page, its table annotation and its OCR words
// together before labels are synthesised.
package augment

import (
	"fmt"
	"image"
	"image/color"
	"math/rand/v2"

	"golang.org/x/image/draw"

	"github.com/lehigh-university-libraries/tablesep/pkg/hocr"
	"github.com/lehigh-university-libraries/tablesep/pkg/table"
)

// Result is either Replaced or Unchanged
type Result interface {
	isResult()
}

// Replaced carries the augmented record
type Replaced struct {
	Table *table.Table
	Image *image.Gray
	Words []hocr.WordBox
}

// Unchanged means no augmentation was applied. The table passed to the
// augmenter may still have been modified and must be reloaded.
type Unchanged struct{}

func (Replaced) isResult()  {}
func (Unchanged) isResult() {}

// Augmenter transforms one record. seed makes the choice reproducible per record.
type Augmenter interface {
	Name() string
	Augment(t *table.Table, img *image.Gray, words []hocr.WordBox, seed uint64) (Result, error)
}

// None never augments
type None struct{}

func (None) Name() string { return "none" }

func (None) Augment(*table.Table, *image.Gray, []hocr.WordBox, uint64) (Result, error) {
	return Unchanged{}, nil
}

// Pad surrounds the page with a white border of random width on each side
// and shifts the table and words accordingly. It mutates t in place.
type Pad struct {
	// Probability of augmenting a record, in [0,1]
	Probability float64
	// MaxBorder bounds the border width in pixels on each side
	MaxBorder int
}

func (p Pad) Name() string { return "pad" }

func (p Pad) Augment(t *table.Table, img *image.Gray, words []hocr.WordBox, seed uint64) (Result, error) {
	if p.MaxBorder <= 0 {
		return nil, fmt.Errorf("pad augmenter needs a positive max border, got %d", p.MaxBorder)
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	if rng.Float64() >= p.Probability {
		return Unchanged{}, nil
	}

	left := rng.IntN(p.MaxBorder + 1)
	top := rng.IntN(p.MaxBorder + 1)
	right := rng.IntN(p.MaxBorder + 1)
	bottom := rng.IntN(p.MaxBorder + 1)

	b := img.Bounds()
	padded := image.NewGray(image.Rect(0, 0, b.Dx()+left+right, b.Dy()+top+bottom))
	draw.Draw(padded, padded.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(padded, image.Rect(left, top, left+b.Dx(), top+b.Dy()), img, b.Min, draw.Src)

	t.Translate(left, top)

	return Replaced{
		Table: t,
		Image: padded,
		Words: hocr.Translate(words, left, top),
	}, nil
}

// New returns the augmenter registered under name
func New(name string, probability float64, maxBorder int) (Augmenter, error) {
	switch name {
	case "", "none":
		return None{}, nil
	case "pad":
		return Pad{Probability: probability, MaxBorder: maxBorder}, nil
	default:
		return nil, fmt.Errorf("unknown augmentation: %s", name)
	}
}
