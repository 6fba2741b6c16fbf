package models

// Table is a loaded sensor log: rows in temporal order, every row the
// same width as Columns. It is not modified after loading.
type Table struct {
	Source  string
	Columns []string
	Rows    [][]float64
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Width returns the number of columns.
func (t *Table) Width() int { return len(t.Columns) }

// Window is a contiguous run of rows cut from a Table. Start is the row
// offset in the source table; augmented variants keep their origin's Start.
type Window struct {
	Start int
	Rows  [][]float64
}

// Len returns the number of rows.
func (w Window) Len() int { return len(w.Rows) }

// Width returns the column count, 0 for an empty window.
func (w Window) Width() int {
	if len(w.Rows) == 0 {
		return 0
	}
	return len(w.Rows[0])
}

// Clone deep-copies the rows.
func (w Window) Clone() Window {
	rows := make([][]float64, len(w.Rows))
	for i, r := range w.Rows {
		rows[i] = append([]float64(nil), r...)
	}
	return Window{Start: w.Start, Rows: rows}
}
