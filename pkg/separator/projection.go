package separator

import "image"

// Project returns the ascending coordinates of the rows and columns of mask
// that hold at least one non-zero pixel. Both sets always include 0 and the
// axis length, so every interior coordinate has a neighbour on each side.
func Project(mask *image.Gray) (rows, cols []int) {
	b := mask.Bounds()
	width, height := b.Dx(), b.Dy()

	rowHit := make([]bool, height)
	colHit := make([]bool, width)
	for y := 0; y < height; y++ {
		off := y * mask.Stride
		for x := 0; x < width; x++ {
			if mask.Pix[off+x] != 0 {
				rowHit[y] = true
				colHit[x] = true
			}
		}
	}

	return occupied(rowHit), occupied(colHit)
}

func occupied(hit []bool) []int {
	coords := []int{0}
	if len(hit) == 0 {
		return coords
	}
	for i, h := range hit {
		if h && i != 0 {
			coords = append(coords, i)
		}
	}
	return append(coords, len(hit))
}
