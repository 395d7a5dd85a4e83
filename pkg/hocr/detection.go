package hocr

import (
	"fmt"
	"image"
	"image/color"
	"sort"
)

// DetectWords finds word-sized ink components in a page image. The returned
// boxes carry placeholder text, so they count as content but say nothing
// about what was written.
func DetectWords(img image.Image) []WordBox {
	bounds := img.Bounds()
	components := findWordComponents(img)
	return refineComponentsToWords(components, bounds.Dx(), bounds.Dy())
}

func findWordComponents(img image.Image) []WordBox {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	ink := make([]bool, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			ink[y*width+x] = isTextPixel(img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	visited := make([]bool, width*height)

	var components []WordBox
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			if visited[i] || !ink[i] {
				continue
			}
			box := floodFillComponent(ink, visited, width, height, x, y)
			if isValidWordSize(box.Width(), box.Height(), width, height) {
				box.Text = fmt.Sprintf("word_%d", len(components)+1)
				components = append(components, box)
			}
		}
	}

	return components
}

// floodFillComponent walks the 8-connected ink region containing (x, y) with
// an explicit stack and returns its inclusive bounds.
func floodFillComponent(ink, visited []bool, width, height, x, y int) WordBox {
	box := WordBox{Left: x, Top: y, Right: x, Bottom: y}
	stack := []image.Point{{X: x, Y: y}}
	visited[y*width+x] = true

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		box.Left = min(box.Left, p.X)
		box.Right = max(box.Right, p.X)
		box.Top = min(box.Top, p.Y)
		box.Bottom = max(box.Bottom, p.Y)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := p.X+dx, p.Y+dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				j := ny*width + nx
				if visited[j] || !ink[j] {
					continue
				}
				visited[j] = true
				stack = append(stack, image.Point{X: nx, Y: ny})
			}
		}
	}

	return box
}

func isTextPixel(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	gray := (r + g + b) / 3
	return gray < 32768
}

func isValidWordSize(w, h, imgWidth, imgHeight int) bool {
	minWidth, minHeight := 2, 4
	maxWidth := imgWidth / 2
	maxHeight := imgHeight / 5
	return w >= minWidth && h >= minHeight && w <= maxWidth && h <= maxHeight
}

func refineComponentsToWords(components []WordBox, imgWidth, imgHeight int) []WordBox {
	if len(components) == 0 {
		return components
	}

	sort.Slice(components, func(i, j int) bool {
		if abs(components[i].Top-components[j].Top) < 10 {
			return components[i].Left < components[j].Left
		}
		return components[i].Top < components[j].Top
	})

	return mergeNearbyComponents(components)
}

func mergeNearbyComponents(components []WordBox) []WordBox {
	if len(components) <= 1 {
		return components
	}

	var mergedWords []WordBox
	currentGroup := []WordBox{components[0]}

	for i := 1; i < len(components); i++ {
		component := components[i]
		lastInGroup := currentGroup[len(currentGroup)-1]

		if shouldMergeComponents(lastInGroup, component) {
			currentGroup = append(currentGroup, component)
		} else {
			mergedWords = append(mergedWords, mergeComponentGroup(currentGroup))
			currentGroup = []WordBox{component}
		}
	}

	if len(currentGroup) > 0 {
		mergedWords = append(mergedWords, mergeComponentGroup(currentGroup))
	}

	return mergedWords
}

func shouldMergeComponents(a, b WordBox) bool {
	horizontalGap := b.Left - a.Right - 1
	verticalOverlap := b.Bottom >= a.Top && b.Top <= a.Bottom
	maxGap := max(a.Height(), b.Height()) / 3
	return horizontalGap >= 0 && horizontalGap <= maxGap && verticalOverlap
}

func mergeComponentGroup(group []WordBox) WordBox {
	if len(group) == 1 {
		return group[0]
	}

	merged := group[0]
	for _, comp := range group[1:] {
		merged.Left = min(merged.Left, comp.Left)
		merged.Top = min(merged.Top, comp.Top)
		merged.Right = max(merged.Right, comp.Right)
		merged.Bottom = max(merged.Bottom, comp.Bottom)
	}
	merged.Text = fmt.Sprintf("merged_word_%d", len(group))
	return merged
}

func groupWordsIntoLines(words []WordBox) []LineBox {
	if len(words) == 0 {
		return nil
	}

	sorted := append([]WordBox(nil), words...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if abs(sorted[i].Top-sorted[j].Top) < sorted[i].Height()/2 {
			return sorted[i].Left < sorted[j].Left
		}
		return sorted[i].Top < sorted[j].Top
	})

	var lines []LineBox
	var currentLineWords []WordBox

	for _, word := range sorted {
		if len(currentLineWords) == 0 || wordsOnSameLine(currentLineWords, word) {
			currentLineWords = append(currentLineWords, word)
			continue
		}
		lines = append(lines, createLineFromWords(currentLineWords))
		currentLineWords = []WordBox{word}
	}

	if len(currentLineWords) > 0 {
		lines = append(lines, createLineFromWords(currentLineWords))
	}

	return lines
}

func wordsOnSameLine(currentLineWords []WordBox, newWord WordBox) bool {
	if len(currentLineWords) == 0 {
		return true
	}

	avgHeight := 0
	minY, maxY := currentLineWords[0].Top, currentLineWords[0].Bottom
	for _, word := range currentLineWords {
		avgHeight += word.Height()
		minY = min(minY, word.Top)
		maxY = max(maxY, word.Bottom)
	}
	avgHeight /= len(currentLineWords)

	tolerance := avgHeight / 3
	return newWord.Bottom >= minY-tolerance && newWord.Top <= maxY+tolerance
}

func createLineFromWords(words []WordBox) LineBox {
	if len(words) == 0 {
		return LineBox{}
	}

	line := LineBox{
		Words:  words,
		Left:   words[0].Left,
		Top:    words[0].Top,
		Right:  words[0].Right,
		Bottom: words[0].Bottom,
	}
	for _, word := range words[1:] {
		line.Left = min(line.Left, word.Left)
		line.Top = min(line.Top, word.Top)
		line.Right = max(line.Right, word.Right)
		line.Bottom = max(line.Bottom, word.Bottom)
	}
	return line
}
