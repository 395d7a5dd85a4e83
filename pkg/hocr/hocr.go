package hocr

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// ParseHOCR extracts every ocrx_word span with a bbox title from an hOCR document
func ParseHOCR(r io.Reader) ([]WordBox, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var words []WordBox
	var walk func(n *html.Node) error
	walk = func(n *html.Node) error {
		if n.Type == html.ElementNode && hasClass(n, "ocrx_word") {
			box, ok, err := parseBBox(attr(n, "title"))
			if err != nil {
				return err
			}
			if ok {
				box.Text = strings.TrimSpace(textContent(n))
				words = append(words, box)
			}
			return nil
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(doc); err != nil {
		return nil, err
	}
	return words, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}

// parseBBox reads the "bbox x0 y0 x1 y1" property of an hOCR title attribute
func parseBBox(title string) (WordBox, bool, error) {
	for _, prop := range strings.Split(title, ";") {
		fields := strings.Fields(prop)
		if len(fields) == 0 || fields[0] != "bbox" {
			continue
		}
		if len(fields) != 5 {
			return WordBox{}, false, fmt.Errorf("malformed bbox %q", prop)
		}
		var coords [4]int
		for i, f := range fields[1:] {
			v, err := strconv.Atoi(f)
			if err != nil {
				return WordBox{}, false, fmt.Errorf("malformed bbox %q: %w", prop, err)
			}
			coords[i] = v
		}
		return WordBox{Left: coords[0], Top: coords[1], Right: coords[2], Bottom: coords[3]}, true, nil
	}
	return WordBox{}, false, nil
}

// ConvertToBasicHOCR renders word boxes as an hOCR page, one line per text line
func ConvertToBasicHOCR(words []WordBox, width, height int) string {
	var lines []string

	wordIndex := 0
	for i, line := range groupWordsIntoLines(words) {
		var spans []string
		for _, w := range line.Words {
			wordIndex++
			spans = append(spans, fmt.Sprintf(`<span class='ocrx_word' id='word_%d' title='bbox %d %d %d %d'>%s</span>`,
				wordIndex, w.Left, w.Top, w.Right, w.Bottom, html.EscapeString(w.Text)))
		}
		lines = append(lines, fmt.Sprintf(`<span class='ocr_line' id='line_%d' title='bbox %d %d %d %d'>%s</span>`,
			i+1, line.Left, line.Top, line.Right, line.Bottom, strings.Join(spans, " ")))
	}

	return WrapInHOCRDocument(strings.Join(lines, "\n"), width, height)
}

// WrapInHOCRDocument wraps content in a complete hOCR HTML document
func WrapInHOCRDocument(content string, width, height int) string {
	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd">
<html xmlns="http://www.w3.org/1999/xhtml" xml:lang="en" lang="en">
<head>
<title></title>
<meta http-equiv="Content-Type" content="text/html;charset=utf-8" />
<meta name='ocr-system' content='tablesep' />
</head>
<body>
<div class='ocr_page' id='page_1' title='bbox 0 0 %d %d'>
%s
</div>
</body>
</html>`, width, height, content)
}
