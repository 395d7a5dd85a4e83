package table

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sort"
)

type xmlGroundTruth struct {
	XMLName   xml.Name   `xml:"GroundTruth"`
	InputFile string     `xml:"InputFile,attr"`
	Tables    []xmlTable `xml:"Tables>Table"`
}

type xmlTable struct {
	X0          int       `xml:"x0,attr"`
	Y0          int       `xml:"y0,attr"`
	X1          int       `xml:"x1,attr"`
	Y1          int       `xml:"y1,attr"`
	Orientation string    `xml:"orientation,attr"`
	Rows        []xmlLine `xml:"Row"`
	Columns     []xmlLine `xml:"Column"`
	Cells       []xmlCell `xml:"Cell"`
}

type xmlLine struct {
	X0 int `xml:"x0,attr"`
	Y0 int `xml:"y0,attr"`
	X1 int `xml:"x1,attr"`
	Y1 int `xml:"y1,attr"`
}

type xmlCell struct {
	X0       int    `xml:"x0,attr"`
	Y0       int    `xml:"y0,attr"`
	X1       int    `xml:"x1,attr"`
	Y1       int    `xml:"y1,attr"`
	StartRow int    `xml:"startRow,attr"`
	EndRow   int    `xml:"endRow,attr"`
	StartCol int    `xml:"startCol,attr"`
	EndCol   int    `xml:"endCol,attr"`
	DontCare bool   `xml:"dontCare,attr"`
	Text     string `xml:",chardata"`
}

// Load parses the ground-truth annotation at path
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open annotation: %w", err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a ground-truth annotation document
func Parse(r io.Reader) (*Document, error) {
	var gt xmlGroundTruth
	if err := xml.NewDecoder(r).Decode(&gt); err != nil {
		return nil, err
	}

	doc := &Document{InputFile: gt.InputFile}
	for _, xt := range gt.Tables {
		doc.Tables = append(doc.Tables, convertTable(xt))
	}
	return doc, nil
}

func convertTable(xt xmlTable) *Table {
	t := &Table{
		X0:          xt.X0,
		Y0:          xt.Y0,
		X1:          xt.X1,
		Y1:          xt.Y1,
		Orientation: xt.Orientation,
	}

	for _, col := range xt.Columns {
		t.Columns = append(t.Columns, col.X1)
	}
	for _, row := range xt.Rows {
		t.Rows = append(t.Rows, row.Y1)
	}

	t.Cells = groupCells(xt.Cells)
	return t
}

// groupCells arranges cells into a grid keyed by start row, ordered by start column
func groupCells(cells []xmlCell) [][]Cell {
	if len(cells) == 0 {
		return nil
	}

	byRow := make(map[int][]Cell)
	for _, xc := range cells {
		byRow[xc.StartRow] = append(byRow[xc.StartRow], Cell{
			X0:       xc.X0,
			Y0:       xc.Y0,
			X1:       xc.X1,
			Y1:       xc.Y1,
			StartRow: xc.StartRow,
			EndRow:   xc.EndRow,
			StartCol: xc.StartCol,
			EndCol:   xc.EndCol,
			DontCare: xc.DontCare,
			Text:     xc.Text,
		})
	}

	rowKeys := make([]int, 0, len(byRow))
	for k := range byRow {
		rowKeys = append(rowKeys, k)
	}
	sort.Ints(rowKeys)

	grid := make([][]Cell, 0, len(rowKeys))
	for _, k := range rowKeys {
		row := byRow[k]
		sort.SliceStable(row, func(i, j int) bool {
			return row[i].StartCol < row[j].StartCol
		})
		grid = append(grid, row)
	}
	return grid
}
