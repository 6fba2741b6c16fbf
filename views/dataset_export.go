package views

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"gesture-logger/models"
)

const (
	SamplesFile  = "samples.csv"
	ManifestFile = "manifest.yaml"
)

// Manifest describes an exported dataset for the training side.
type Manifest struct {
	ClassNames      []string `yaml:"class_names"`
	Features        []string `yaml:"features"`
	Samples         int      `yaml:"samples"`
	WindowSize      int      `yaml:"window_size"`
	SamplesPerClass []int    `yaml:"samples_per_class"`
	WindowMode      string   `yaml:"window_mode"`
	Seed            uint64   `yaml:"seed"`
	SourceDir       string   `yaml:"source_dir"`
}

// NewManifest fills the shape fields from ds.
func NewManifest(ds *models.Dataset) Manifest {
	n, w, _ := ds.Shape()
	return Manifest{
		ClassNames:      ds.ClassNames,
		Features:        ds.Features,
		Samples:         n,
		WindowSize:      w,
		SamplesPerClass: ds.Counts(),
	}
}

// ExportDataset writes samples.csv (one row per sample timestep:
// sample,label,step,<features...>) and manifest.yaml into dir.
func ExportDataset(ds *models.Dataset, dir string, m Manifest) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	header := append([]string{"sample", "label", "step"}, ds.Features...)
	w, err := NewCSVWriter(filepath.Join(dir, SamplesFile), 0, true, header)
	if err != nil {
		return err
	}

	row := make([]string, len(header))
	for i, sample := range ds.Samples {
		label := strconv.Itoa(ds.Labels[i])
		for step, values := range sample {
			row = row[:3]
			row[0], row[1], row[2] = strconv.Itoa(i), label, strconv.Itoa(step)
			for _, v := range values {
				row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
			}
			w.WriteRow(row)
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	data, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), data, 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// LoadManifest reads a manifest written by ExportDataset.
func LoadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}
