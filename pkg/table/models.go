package table

import "image"

// Document is a parsed ground-truth annotation file
type Document struct {
	InputFile string
	Tables    []*Table
}

// Table holds the grid lines and cells of one annotated table
type Table struct {
	X0, Y0, X1, Y1 int
	Orientation    string
	// Columns are the x coordinates of the column separator lines
	Columns []int
	// Rows are the y coordinates of the row separator lines
	Rows []int
	// Cells is indexed by start row, each row ordered by start column
	Cells [][]Cell
}

// Cell is a table cell with its span indices and bounding box
type Cell struct {
	X0, Y0, X1, Y1 int
	StartRow       int
	EndRow         int
	StartCol       int
	EndCol         int
	DontCare       bool
	Text           string
}

// IsMerged reports whether the cell spans more than one row or column
func (c Cell) IsMerged() bool {
	return c.StartRow != c.EndRow || c.StartCol != c.EndCol
}

// Bounds returns the cell box as an inclusive rectangle with canonical corners
func (c Cell) Bounds() image.Rectangle {
	return image.Rect(min(c.X0, c.X1), min(c.Y0, c.Y1), max(c.X0, c.X1)+1, max(c.Y0, c.Y1)+1)
}

// MergedCells returns every cell that spans more than one row or column
func (t *Table) MergedCells() []Cell {
	var merged []Cell
	for _, row := range t.Cells {
		for _, cell := range row {
			if cell.IsMerged() {
				merged = append(merged, cell)
			}
		}
	}
	return merged
}

// Translate shifts every coordinate of the table by (dx, dy) in place
func (t *Table) Translate(dx, dy int) {
	t.X0 += dx
	t.X1 += dx
	t.Y0 += dy
	t.Y1 += dy
	for i := range t.Columns {
		t.Columns[i] += dx
	}
	for i := range t.Rows {
		t.Rows[i] += dy
	}
	for i := range t.Cells {
		for j := range t.Cells[i] {
			c := &t.Cells[i][j]
			c.X0 += dx
			c.X1 += dx
			c.Y0 += dy
			c.Y1 += dy
		}
	}
}

// Clone returns a deep copy of the table
func (t *Table) Clone() *Table {
	out := *t
	out.Columns = append([]int(nil), t.Columns...)
	out.Rows = append([]int(nil), t.Rows...)
	out.Cells = make([][]Cell, len(t.Cells))
	for i, row := range t.Cells {
		out.Cells[i] = append([]Cell(nil), row...)
	}
	return &out
}
