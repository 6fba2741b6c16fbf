package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gesture-logger/models"
)

var recordingHeader = []string{
	"lin_acc_x", "lin_acc_y", "lin_acc_z",
	"gyro_x", "gyro_y", "gyro_z",
	"quat_w", "quat_x", "quat_y", "quat_z",
}

// table builds an n x width table whose cell (i, j) is i*width + j + 1.
func table(n, width int) *models.Table {
	t := &models.Table{Columns: make([]string, width)}
	for j := range t.Columns {
		t.Columns[j] = fmt.Sprintf("c%d", j)
	}
	for i := 0; i < n; i++ {
		row := make([]float64, width)
		for j := range row {
			row[j] = float64(i*width + j + 1)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func window(n, width int) models.Window {
	return models.Window{Rows: table(n, width).Rows}
}

// writeRecording writes an n-row, 10-column recording CSV.
func writeRecording(t *testing.T, path string, n int) {
	t.Helper()
	writeColumns(t, path, recordingHeader, n)
}

// writeColumns writes an n-row CSV with the given header.
func writeColumns(t *testing.T, path string, header []string, n int) {
	t.Helper()
	var b strings.Builder
	b.WriteString(strings.Join(header, ",") + "\n")
	for i := 0; i < n; i++ {
		vals := make([]string, len(header))
		for j := range vals {
			vals[j] = fmt.Sprintf("%.3f", float64(i)*0.01+float64(j))
		}
		b.WriteString(strings.Join(vals, ",") + "\n")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatal(err)
	}
}
