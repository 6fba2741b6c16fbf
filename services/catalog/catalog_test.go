package catalog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTemp(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestAddAndList(t *testing.T) {
	c := openTemp(t)
	base := time.Date(2025, 6, 4, 14, 0, 0, 0, time.UTC)
	for i, r := range []Recording{
		{Class: "handshake", Path: "data/handshake/a.csv", Rows: 300, Source: "simulation"},
		{Class: "highfive", Path: "data/highfive/a.csv", Rows: 250, Source: "/dev/ttyACM0"},
		{Class: "handshake", Path: "data/handshake/b.csv", Rows: 100, Source: "simulation"},
	} {
		r.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := c.Add(&r); err != nil {
			t.Fatal(err)
		}
		if r.ID == uuid.Nil {
			t.Fatalf("no id assigned")
		}
	}

	all, err := c.List("")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].Path != "data/handshake/a.csv" {
		t.Fatalf("list %+v", all)
	}
	if !all[1].CreatedAt.Equal(base.Add(time.Minute)) {
		t.Fatalf("created_at %v", all[1].CreatedAt)
	}

	hs, err := c.List("handshake")
	if err != nil {
		t.Fatal(err)
	}
	if len(hs) != 2 {
		t.Fatalf("got %d handshake recordings", len(hs))
	}

	counts, err := c.CountByClass()
	if err != nil {
		t.Fatal(err)
	}
	want := []ClassCount{{"handshake", 2, 400}, {"highfive", 1, 250}}
	if len(counts) != len(want) {
		t.Fatalf("counts %+v", counts)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Fatalf("got %+v, want %+v", counts[i], want[i])
		}
	}
}

func TestDuplicatePathRejected(t *testing.T) {
	c := openTemp(t)
	if err := c.Add(&Recording{Class: "still", Path: "x.csv", Rows: 1}); err != nil {
		t.Fatal(err)
	}
	if err := c.Add(&Recording{Class: "still", Path: "x.csv", Rows: 1}); err == nil {
		t.Fatalf("expected duplicate path error")
	}
}
