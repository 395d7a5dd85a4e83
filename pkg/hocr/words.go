package hocr

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadWords reads the OCR record at path. JSON files are read as Vision
// responses, .hocr/.html files as hOCR.
func LoadWords(path string) ([]WordBox, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read OCR file: %w", err)
		}
		var response OCRResponse
		if err := json.Unmarshal(data, &response); err != nil {
			return nil, fmt.Errorf("failed to parse OCR JSON %s: %w", path, err)
		}
		return ToWordBoxes(response), nil
	case ".hocr", ".html", ".htm":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read OCR file: %w", err)
		}
		defer f.Close()
		words, err := ParseHOCR(f)
		if err != nil {
			return nil, fmt.Errorf("failed to parse hOCR %s: %w", path, err)
		}
		return words, nil
	default:
		return nil, fmt.Errorf("unsupported OCR file type: %s", path)
	}
}

// ToWordBoxes flattens every word of every page into word boxes. The word
// text is the concatenation of its symbols and the box spans all vertices.
func ToWordBoxes(response OCRResponse) []WordBox {
	var words []WordBox
	for _, r := range response.Responses {
		if r.FullTextAnnotation == nil {
			continue
		}
		for _, page := range r.FullTextAnnotation.Pages {
			for _, block := range page.Blocks {
				for _, paragraph := range block.Paragraphs {
					for _, word := range paragraph.Words {
						box, ok := polyBounds(word.BoundingBox)
						if !ok {
							continue
						}
						var sb strings.Builder
						for _, s := range word.Symbols {
							sb.WriteString(s.Text)
						}
						box.Text = sb.String()
						words = append(words, box)
					}
				}
			}
		}
	}
	return words
}

func polyBounds(poly BoundingPoly) (WordBox, bool) {
	if len(poly.Vertices) == 0 {
		return WordBox{}, false
	}
	v := poly.Vertices[0]
	box := WordBox{Left: v.X, Top: v.Y, Right: v.X, Bottom: v.Y}
	for _, v := range poly.Vertices[1:] {
		box.Left = min(box.Left, v.X)
		box.Top = min(box.Top, v.Y)
		box.Right = max(box.Right, v.X)
		box.Bottom = max(box.Bottom, v.Y)
	}
	return box, true
}

func rectPoly(left, top, right, bottom int) BoundingPoly {
	return BoundingPoly{
		Vertices: []Vertex{
			{X: left, Y: top},
			{X: right, Y: top},
			{X: right, Y: bottom},
			{X: left, Y: bottom},
		},
	}
}

// FromWords builds a single-page response from word boxes, one paragraph per
// text line.
func FromWords(words []WordBox, width, height int) OCRResponse {
	var paragraphs []Paragraph
	var texts []string

	for _, line := range groupWordsIntoLines(words) {
		paragraph := Paragraph{
			BoundingBox: rectPoly(line.Left, line.Top, line.Right, line.Bottom),
		}
		var lineText []string
		for _, w := range line.Words {
			paragraph.Words = append(paragraph.Words, Word{
				BoundingBox: rectPoly(w.Left, w.Top, w.Right, w.Bottom),
				Symbols:     []Symbol{{Text: w.Text}},
			})
			lineText = append(lineText, w.Text)
		}
		paragraphs = append(paragraphs, paragraph)
		texts = append(texts, strings.Join(lineText, " "))
	}

	block := Block{
		BoundingBox: rectPoly(0, 0, width, height),
		BlockType:   "TEXT",
		Paragraphs:  paragraphs,
	}

	return OCRResponse{
		Responses: []Response{
			{
				FullTextAnnotation: &FullTextAnnotation{
					Pages: []Page{{Width: width, Height: height, Blocks: []Block{block}}},
					Text:  strings.Join(texts, "\n"),
				},
			},
		},
	}
}

// SaveWords writes words to path in the format implied by its extension
func SaveWords(path string, words []WordBox, width, height int) error {
	var data []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		var err error
		data, err = json.MarshalIndent(FromWords(words, width, height), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode OCR JSON: %w", err)
		}
	case ".hocr", ".html", ".htm":
		data = []byte(ConvertToBasicHOCR(words, width, height))
	default:
		return fmt.Errorf("unsupported OCR file type: %s", path)
	}
	return os.WriteFile(path, data, 0644)
}
