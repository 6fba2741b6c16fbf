package pipeline

import (
	"fmt"

	"gesture-logger/models"
)

// Extractor cuts a table into fixed-length windows.
type Extractor interface {
	Extract(t *models.Table) ([]models.Window, error)
	WindowLen() int
	String() string
}

// Overlapping emits exactly NumWindows windows with evenly spaced starts,
// step = (L - WindowSize) / (NumWindows - 1). A window that would run past
// the end is shifted back to end at L. Windows may overlap or repeat.
type Overlapping struct {
	WindowSize int
	NumWindows int
}

func (o Overlapping) WindowLen() int { return o.WindowSize }

func (o Overlapping) String() string {
	return fmt.Sprintf("overlap(size=%d, count=%d)", o.WindowSize, o.NumWindows)
}

func (o Overlapping) Extract(t *models.Table) ([]models.Window, error) {
	if o.WindowSize < 1 || o.NumWindows < 2 {
		return nil, fmt.Errorf("%w: %s", ErrBadParams, o)
	}
	total := t.Len()
	if total < o.WindowSize {
		return nil, fmt.Errorf("%w: %d rows < %d", ErrTooShort, total, o.WindowSize)
	}

	step := (total - o.WindowSize) / (o.NumWindows - 1)
	windows := make([]models.Window, 0, o.NumWindows)
	for i := 0; i < o.NumWindows; i++ {
		start := i * step
		if start+o.WindowSize > total {
			start = total - o.WindowSize
		}
		windows = append(windows, cut(t, start, o.WindowSize))
	}
	return windows, nil
}

// Sliding emits (L - WindowSize) / StepSize + 1 windows starting at every
// StepSize-th row.
type Sliding struct {
	WindowSize int
	StepSize   int
}

func (s Sliding) WindowLen() int { return s.WindowSize }

func (s Sliding) String() string {
	return fmt.Sprintf("sliding(size=%d, step=%d)", s.WindowSize, s.StepSize)
}

func (s Sliding) Extract(t *models.Table) ([]models.Window, error) {
	if s.WindowSize < 1 || s.StepSize < 1 {
		return nil, fmt.Errorf("%w: %s", ErrBadParams, s)
	}
	total := t.Len()
	if total < s.WindowSize {
		return nil, fmt.Errorf("%w: %d rows < %d", ErrTooShort, total, s.WindowSize)
	}

	n := (total-s.WindowSize)/s.StepSize + 1
	windows := make([]models.Window, 0, n)
	for i := 0; i < n; i++ {
		windows = append(windows, cut(t, i*s.StepSize, s.WindowSize))
	}
	return windows, nil
}

// NewExtractor builds the extractor named by mode ("overlap" or "sliding").
func NewExtractor(mode string, size, count, step int) (Extractor, error) {
	switch mode {
	case "overlap", "":
		return Overlapping{WindowSize: size, NumWindows: count}, nil
	case "sliding":
		return Sliding{WindowSize: size, StepSize: step}, nil
	default:
		return nil, fmt.Errorf("%w: unknown window mode %q", ErrBadParams, mode)
	}
}

// cut copies the row headers so the window does not alias the table's
// outer slice; row contents are shared and treated as read-only.
func cut(t *models.Table, start, size int) models.Window {
	rows := make([][]float64, size)
	copy(rows, t.Rows[start:start+size])
	return models.Window{Start: start, Rows: rows}
}
