package model

// TableRow is one row of a table element
type TableRow struct {
	ID     string       `json:"id,omitempty" yaml:"id,omitempty"`
	Height float64      `json:"height,omitempty" yaml:"height,omitempty"`
	Cells  []*TableCell `json:"tdList" yaml:"tdList"`
}

// TableCell is one cell of a table row. Its Value is a document of its own.
type TableCell struct {
	ID      string      `json:"id,omitempty" yaml:"id,omitempty"`
	RowSpan int         `json:"rowspan,omitempty" yaml:"rowspan,omitempty"`
	ColSpan int         `json:"colspan,omitempty" yaml:"colspan,omitempty"`
	Value   ElementList `json:"value" yaml:"value"`
}

// Clone returns a deep copy of the row.
func (r *TableRow) Clone() *TableRow {
	if r == nil {
		return nil
	}
	n := &TableRow{ID: r.ID, Height: r.Height, Cells: make([]*TableCell, len(r.Cells))}
	for i, cell := range r.Cells {
		n.Cells[i] = cell.Clone()
	}
	return n
}

// Clone returns a deep copy of the cell.
func (c *TableCell) Clone() *TableCell {
	if c == nil {
		return nil
	}
	n := &TableCell{ID: c.ID, RowSpan: c.RowSpan, ColSpan: c.ColSpan}
	if c.Value != nil {
		n.Value = make(ElementList, len(c.Value))
		for i, e := range c.Value {
			n.Value[i] = e.Clone()
		}
	}
	return n
}

// NewTable creates a table element with rows x cols empty cells
func NewTable(rows, cols int) *Element {
	table := &Element{Type: TypeTable, Rows: make([]*TableRow, rows)}
	for i := 0; i < rows; i++ {
		row := &TableRow{Cells: make([]*TableCell, cols)}
		for j := 0; j < cols; j++ {
			row.Cells[j] = &TableCell{RowSpan: 1, ColSpan: 1}
		}
		table.Rows[i] = row
	}
	return table
}

// Cell returns the cell at the given row and column (0-indexed)
func (e *Element) Cell(row, col int) *TableCell {
	if !e.IsTable() || row < 0 || row >= len(e.Rows) {
		return nil
	}
	cells := e.Rows[row].Cells
	if col < 0 || col >= len(cells) {
		return nil
	}
	return cells[col]
}
