package hocr

import "image"

// OCRResponse and related types mirror the Vision document text detection JSON
type OCRResponse struct {
	Responses []Response `json:"responses"`
}

type Response struct {
	FullTextAnnotation *FullTextAnnotation `json:"fullTextAnnotation"`
}

type FullTextAnnotation struct {
	Pages []Page `json:"pages"`
	Text  string `json:"text"`
}

type Page struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Blocks []Block `json:"blocks"`
}

type Block struct {
	BoundingBox BoundingPoly `json:"boundingBox"`
	Paragraphs  []Paragraph  `json:"paragraphs"`
	BlockType   string       `json:"blockType"`
}

type Paragraph struct {
	BoundingBox BoundingPoly `json:"boundingBox"`
	Words       []Word       `json:"words"`
}

type Word struct {
	BoundingBox BoundingPoly `json:"boundingBox"`
	Symbols     []Symbol     `json:"symbols"`
}

type Symbol struct {
	BoundingBox BoundingPoly `json:"boundingBox,omitempty"`
	Text        string       `json:"text"`
}

type BoundingPoly struct {
	Vertices []Vertex `json:"vertices"`
}

type Vertex struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// WordBox is an OCR word with an inclusive pixel box
type WordBox struct {
	Text   string `json:"text"`
	Left   int    `json:"left"`
	Top    int    `json:"top"`
	Right  int    `json:"right"`
	Bottom int    `json:"bottom"`
}

// Rect returns the inclusive box as a half-open image.Rectangle
func (w WordBox) Rect() image.Rectangle {
	return image.Rect(min(w.Left, w.Right), min(w.Top, w.Bottom), max(w.Left, w.Right)+1, max(w.Top, w.Bottom)+1)
}

func (w WordBox) Width() int {
	return abs(w.Right-w.Left) + 1
}

func (w WordBox) Height() int {
	return abs(w.Bottom-w.Top) + 1
}

// LineBox represents a line of text containing multiple words
type LineBox struct {
	Words                    []WordBox
	Left, Top, Right, Bottom int
}

// Translate returns a copy of words shifted by (dx, dy)
func Translate(words []WordBox, dx, dy int) []WordBox {
	out := make([]WordBox, len(words))
	for i, w := range words {
		w.Left += dx
		w.Right += dx
		w.Top += dy
		w.Bottom += dy
		out[i] = w
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
