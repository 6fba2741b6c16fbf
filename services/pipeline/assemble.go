package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"gesture-logger/models"
	"gesture-logger/utils"
)

// Assembler walks <root>/<class>/*.csv and builds the Dataset.
type Assembler struct {
	Extractor Extractor
	Augmentor *Augmentor
	Features  []string // column projection passed to LoadCSV

	// Include restricts the scan to these class directories; labels follow
	// sorted directory order. Ignored when Labels is set.
	Include []string

	// Labels fixes class order explicitly: label i is Labels[i]. Class
	// directories not listed are ignored.
	Labels []string
}

// Report counts what happened during Assemble.
type Report struct {
	Files   int      // recordings that contributed samples
	Skipped []string // recordings or class dirs that were skipped, with reason
}

// Assemble builds the dataset under root. Only a root that cannot be read
// or a class labelled twice is an error; unreadable class dirs and bad
// recordings are logged and skipped.
func (a *Assembler) Assemble(root string) (*models.Dataset, *Report, error) {
	available, err := classDirs(root)
	if err != nil {
		return nil, nil, err
	}

	classes, err := a.classes(available)
	if err != nil {
		return nil, nil, err
	}
	size := a.Extractor.WindowLen()
	ds := &models.Dataset{
		ClassNames: classes,
		WindowSize: size,
	}
	rep := &Report{}

	for label, class := range classes {
		dir := filepath.Join(root, class)
		files, err := csvFiles(dir)
		if err != nil {
			utils.L().Warn("error accessing %s: %v", dir, err)
			rep.Skipped = append(rep.Skipped, fmt.Sprintf("%s: %v", dir, err))
			continue
		}

		classSamples := 0
		for _, name := range files {
			path := filepath.Join(dir, name)
			n, err := a.addRecording(ds, path, label)
			if err != nil {
				utils.L().Warn("skipping %s: %v", path, err)
				rep.Skipped = append(rep.Skipped, fmt.Sprintf("%s: %v", path, err))
				continue
			}
			rep.Files++
			classSamples += n
		}

		if classSamples > 0 {
			utils.L().Info("  Total samples for %s: %d", class, classSamples)
		}
	}

	if ds.Features == nil {
		ds.Features = append([]string(nil), a.Features...)
	}

	if ds.Len() > 0 {
		n, w, f := ds.Shape()
		utils.L().Info("FINAL DATASET:")
		utils.L().Info("  Shape: (%d, %d, %d)", n, w, f)
		utils.L().Info("  Total samples: %d", n)
		utils.L().Info("  Classes: %v", ds.ClassNames)
		utils.L().Info("  Samples per class: %v", ds.Counts())
	} else {
		utils.L().Warn("no samples assembled from %s", root)
	}
	return ds, rep, nil
}

// addRecording loads one file and appends its windows and their variants.
func (a *Assembler) addRecording(ds *models.Dataset, path string, label int) (int, error) {
	t, err := LoadCSV(path, a.Features)
	if err != nil {
		return 0, err
	}
	if ds.Features != nil && !slices.Equal(ds.Features, t.Columns) {
		return 0, fmt.Errorf("columns %v differ from dataset columns %v", t.Columns, ds.Features)
	}

	windows, err := a.Extractor.Extract(t)
	if err != nil {
		return 0, err
	}
	if ds.Features == nil {
		ds.Features = append([]string(nil), t.Columns...)
	}

	n := 0
	for _, w := range windows {
		for _, v := range a.Augmentor.Variants(w, ds.WindowSize) {
			ds.Append(v.Rows, label)
			n++
		}
	}
	return n, nil
}

func (a *Assembler) classes(available []string) ([]string, error) {
	if len(a.Labels) > 0 {
		if len(a.Include) > 0 {
			utils.L().Warn("labels set; include_classes %v ignored", a.Include)
		}
		for i, c := range a.Labels {
			if slices.Index(a.Labels, c) != i {
				return nil, fmt.Errorf("%w: class %q labelled twice", ErrBadParams, c)
			}
			if !slices.Contains(available, c) {
				utils.L().Warn("class %q has no directory; it keeps label %d with no samples", c, i)
			}
		}
		return append([]string(nil), a.Labels...), nil
	}
	if len(a.Include) == 0 {
		return available, nil
	}
	var out []string
	for _, c := range available {
		if slices.Contains(a.Include, c) {
			out = append(out, c)
		}
	}
	return out, nil
}

// classDirs lists the immediate subdirectories of root, sorted.
func classDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("list data dir: %w", err)
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

func csvFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".csv") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}
