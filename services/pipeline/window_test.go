package pipeline

import (
	"errors"
	"reflect"
	"testing"
)

func starts(t *testing.T, e Extractor, n, width int) []int {
	t.Helper()
	ws, err := e.Extract(table(n, width))
	if err != nil {
		t.Fatalf("%s on %d rows: %v", e, n, err)
	}
	var out []int
	for _, w := range ws {
		out = append(out, w.Start)
	}
	return out
}

func TestOverlappingOffsets(t *testing.T) {
	for _, c := range []struct {
		rows, size, count int
		want              []int
	}{
		{150, 125, 3, []int{0, 12, 24}},
		{300, 125, 3, []int{0, 87, 174}},
		{125, 125, 3, []int{0, 0, 0}},
		{126, 125, 4, []int{0, 0, 0, 0}},
		{130, 125, 2, []int{0, 5}},
		{175, 175, 2, []int{0, 0}},
	} {
		got := starts(t, Overlapping{WindowSize: c.size, NumWindows: c.count}, c.rows, 6)
		if !reflect.DeepEqual(got, c.want) {
			t.Fatalf("got %v, want %v for case %v", got, c.want, c)
		}
	}
}

func TestOverlappingWholeTable(t *testing.T) {
	tbl := table(125, 6)
	for count := 2; count <= 6; count++ {
		ws, err := Overlapping{WindowSize: 125, NumWindows: count}.Extract(tbl)
		if err != nil {
			t.Fatal(err)
		}
		if len(ws) != count {
			t.Fatalf("got %d windows, want %d", len(ws), count)
		}
		for _, w := range ws {
			if !reflect.DeepEqual(w.Rows, tbl.Rows) {
				t.Fatalf("window starting at %d is not the whole table", w.Start)
			}
		}
	}
}

func TestOverlappingShapes(t *testing.T) {
	for _, rows := range []int{10, 11, 17, 40, 99} {
		for size := 1; size <= rows; size += 3 {
			for count := 2; count <= 5; count++ {
				ws, err := Overlapping{WindowSize: size, NumWindows: count}.Extract(table(rows, 4))
				if err != nil {
					t.Fatal(err)
				}
				if len(ws) != count {
					t.Fatalf("rows=%d size=%d: got %d windows, want %d", rows, size, len(ws), count)
				}
				for _, w := range ws {
					if w.Len() != size || w.Width() != 4 {
						t.Fatalf("rows=%d size=%d count=%d: window %dx%d", rows, size, count, w.Len(), w.Width())
					}
					if w.Start+size > rows {
						t.Fatalf("window at %d runs past %d rows", w.Start, rows)
					}
				}
			}
		}
	}
}

func TestSlidingCountAndOffsets(t *testing.T) {
	for _, c := range []struct{ rows, size, step int }{
		{175, 175, 10},
		{300, 175, 25},
		{301, 175, 25},
		{1000, 125, 1},
		{200, 50, 60},
	} {
		got := starts(t, Sliding{WindowSize: c.size, StepSize: c.step}, c.rows, 3)
		want := (c.rows-c.size)/c.step + 1
		if len(got) != want {
			t.Fatalf("got %d windows, want %d for case %v", len(got), want, c)
		}
		for i, s := range got {
			if s != i*c.step {
				t.Fatalf("window %d starts at %d, want %d for case %v", i, s, i*c.step, c)
			}
		}
	}
}

func TestExtractErrors(t *testing.T) {
	for _, c := range []struct {
		e    Extractor
		rows int
		want error
	}{
		{Overlapping{WindowSize: 125, NumWindows: 3}, 124, ErrTooShort},
		{Overlapping{WindowSize: 125, NumWindows: 1}, 200, ErrBadParams},
		{Overlapping{WindowSize: 0, NumWindows: 3}, 200, ErrBadParams},
		{Sliding{WindowSize: 175, StepSize: 25}, 100, ErrTooShort},
		{Sliding{WindowSize: 175, StepSize: 0}, 200, ErrBadParams},
	} {
		_, err := c.e.Extract(table(c.rows, 6))
		if !errors.Is(err, c.want) {
			t.Fatalf("%s on %d rows: got %v, want %v", c.e, c.rows, err, c.want)
		}
	}
}

func TestWindowsDoNotAliasTable(t *testing.T) {
	tbl := table(20, 2)
	ws, err := Sliding{WindowSize: 5, StepSize: 5}.Extract(tbl)
	if err != nil {
		t.Fatal(err)
	}
	ws[0].Rows[0] = []float64{-1, -1}
	if tbl.Rows[0][0] != 1 {
		t.Fatalf("table row replaced through window")
	}
}

func TestNewExtractor(t *testing.T) {
	e, err := NewExtractor("sliding", 175, 3, 25)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := e.(Sliding); !ok || e.WindowLen() != 175 {
		t.Fatalf("got %v", e)
	}
	if _, err := NewExtractor("random", 1, 2, 3); !errors.Is(err, ErrBadParams) {
		t.Fatalf("got %v, want ErrBadParams", err)
	}
}
