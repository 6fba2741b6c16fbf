package pipeline

import "gesture-logger/models"

// PadOrTruncate returns w with exactly size rows: unchanged if it already
// has size rows, zero rows appended if shorter, the leading size rows if
// longer.
func PadOrTruncate(w models.Window, size int) models.Window {
	n := w.Len()
	switch {
	case n == size:
		return w
	case n > size:
		rows := make([][]float64, size)
		copy(rows, w.Rows[:size])
		return models.Window{Start: w.Start, Rows: rows}
	default:
		width := w.Width()
		rows := make([][]float64, size)
		copy(rows, w.Rows)
		for i := n; i < size; i++ {
			rows[i] = make([]float64, width)
		}
		return models.Window{Start: w.Start, Rows: rows}
	}
}
