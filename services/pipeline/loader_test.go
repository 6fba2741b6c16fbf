package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadCSVProjection(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "r.csv", "a,b,c\n1,2,3\n4,5,6\n")

	for _, c := range []struct {
		cols      []string
		wantCols  []string
		wantFirst []float64
	}{
		{nil, []string{"a", "b", "c"}, []float64{1, 2, 3}},
		{[]string{"c", "a"}, []string{"c", "a"}, []float64{3, 1}},
		{[]string{"b", "missing"}, []string{"b"}, []float64{2}},
		{[]string{"x", "y"}, []string{"a", "b", "c"}, []float64{1, 2, 3}},
	} {
		tbl, err := LoadCSV(p, c.cols)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(tbl.Columns, c.wantCols) {
			t.Fatalf("columns %v, want %v for %v", tbl.Columns, c.wantCols, c.cols)
		}
		if !reflect.DeepEqual(tbl.Rows[0], c.wantFirst) {
			t.Fatalf("row %v, want %v for %v", tbl.Rows[0], c.wantFirst, c.cols)
		}
		if tbl.Len() != 2 {
			t.Fatalf("got %d rows, want 2", tbl.Len())
		}
	}
}

func TestLoadCSVRecording(t *testing.T) {
	p := filepath.Join(t.TempDir(), "handshake.csv")
	writeRecording(t, p, 150)
	tbl, err := LoadCSV(p, recordingHeader[:6])
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Len() != 150 || tbl.Width() != 6 {
		t.Fatalf("got %dx%d, want 150x6", tbl.Len(), tbl.Width())
	}
}

func TestLoadCSVNoData(t *testing.T) {
	dir := t.TempDir()
	for _, c := range []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(dir, "nope.csv")},
		{"empty", writeFile(t, dir, "empty.csv", "")},
		{"header only", writeFile(t, dir, "header.csv", "a,b\n")},
		{"not numeric", writeFile(t, dir, "text.csv", "a,b\n1,oops\n")},
		{"ragged", writeFile(t, dir, "ragged.csv", "a,b\n1,2\n3\n")},
	} {
		tbl, err := LoadCSV(c.path, nil)
		if !errors.Is(err, ErrNoData) {
			t.Fatalf("%s: got %v, want ErrNoData", c.name, err)
		}
		if tbl != nil {
			t.Fatalf("%s: table returned with error", c.name)
		}
	}
}
