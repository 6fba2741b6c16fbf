package pipeline

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gesture-logger/models"
)

// LoadCSV reads a recording with a header row into a Table, projected to
// columns in the given order. Requested columns missing from the file are
// dropped from the projection; if none of them exist the whole file is
// kept. A nil or empty columns list keeps every column.
//
// Every failure wraps ErrNoData so callers can skip the file.
func LoadCSV(path string, columns []string) (*models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoData, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s: empty file", ErrNoData, path)
		}
		return nil, fmt.Errorf("%w: %s: header: %v", ErrNoData, path, err)
	}
	header = append([]string(nil), header...)

	idx, names := project(header, columns)

	t := &models.Table{Source: path, Columns: names}
	line := 1
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrNoData, path, err)
		}
		row := make([]float64, len(idx))
		for j, c := range idx {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[c]), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s line %d column %s: %v", ErrNoData, path, line, header[c], err)
			}
			row[j] = v
		}
		t.Rows = append(t.Rows, row)
	}

	if t.Len() == 0 {
		return nil, fmt.Errorf("%w: %s: no rows", ErrNoData, path)
	}
	return t, nil
}

// project resolves wanted column names to header indices.
func project(header, wanted []string) ([]int, []string) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.TrimSpace(h)] = i
	}

	var idx []int
	var names []string
	for _, w := range wanted {
		if i, ok := pos[w]; ok {
			idx = append(idx, i)
			names = append(names, w)
		}
	}
	if len(idx) > 0 {
		return idx, names
	}

	idx = make([]int, len(header))
	names = make([]string, len(header))
	for i, h := range header {
		idx[i] = i
		names[i] = strings.TrimSpace(h)
	}
	return idx, names
}
