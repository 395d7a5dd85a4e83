package dataset

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"math"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// Tensor is a float32 image in height, width, channel order
type Tensor struct {
	Height   int
	Width    int
	Channels int
	Data     []float32
}

// At returns the value of channel c at (x, y)
func (t Tensor) At(x, y, c int) float32 {
	return t.Data[(y*t.Width+x)*t.Channels+c]
}

// DecodeGray decodes the image at path and converts it to grayscale
func DecodeGray(path string) (*image.Gray, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return toGray(img), nil
}

func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok && g.Bounds().Min == (image.Point{}) {
		return g
	}
	b := img.Bounds()
	g := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(g, g.Bounds(), img, b.Min, draw.Src)
	return g
}

func cloneGray(g *image.Gray) *image.Gray {
	out := image.NewGray(g.Bounds())
	copy(out.Pix, g.Pix)
	return out
}

// GrayToRGB replicates a grayscale page into three float32 channels
func GrayToRGB(g *image.Gray) Tensor {
	b := g.Bounds()
	t := Tensor{
		Height:   b.Dy(),
		Width:    b.Dx(),
		Channels: 3,
		Data:     make([]float32, b.Dx()*b.Dy()*3),
	}
	for y := 0; y < t.Height; y++ {
		row := g.Pix[y*g.Stride : y*g.Stride+t.Width]
		for x, v := range row {
			i := (y*t.Width + x) * 3
			t.Data[i] = float32(v)
			t.Data[i+1] = float32(v)
			t.Data[i+2] = float32(v)
		}
	}
	return t
}

// OutputSize returns the resized width and height of a width×height page
func OutputSize(width, height int, cfg ResizeConfig) (int, int) {
	if cfg.Fixed {
		return cfg.Width, cfg.Height
	}

	short, long := float64(min(width, height)), float64(max(width, height))
	scale := float64(cfg.MinSide) / short
	if long*scale > float64(cfg.MaxSide) {
		scale = float64(cfg.MaxSide) / long
	}
	ow := max(int(math.Round(float64(width)*scale)), 1)
	oh := max(int(math.Round(float64(height)*scale)), 1)
	return ow, oh
}

// ResizeGray scales g to width×height with bilinear interpolation
func ResizeGray(g *image.Gray, width, height int) *image.Gray {
	if g.Bounds().Dx() == width && g.Bounds().Dy() == height {
		return g
	}
	dst := image.NewGray(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), g, g.Bounds(), draw.Src, nil)
	return dst
}

// Normalize scales t to [0,1] and standardises each channel in place
func Normalize(t *Tensor, cfg NormalizeConfig) {
	for i := range t.Data {
		c := i % t.Channels
		t.Data[i] = (t.Data[i]/255 - cfg.Mean[c]) / cfg.Std[c]
	}
}

// WriteStrip saves a 1D mask as a PNG, vertical for rows and horizontal
// for columns
func WriteStrip(path string, mask []uint8, vertical bool) error {
	rect := image.Rect(0, 0, len(mask), 1)
	if vertical {
		rect = image.Rect(0, 0, 1, len(mask))
	}
	img := image.NewGray(rect)
	if len(mask) > 0 {
		copy(img.Pix, mask)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
