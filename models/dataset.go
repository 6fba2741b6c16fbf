package models

import "fmt"

// Dataset is the labelled training tensor handed to the trainer.
// Samples[i] has WindowSize rows of Features columns and Labels[i] indexes
// into ClassNames.
type Dataset struct {
	Samples    [][][]float64
	Labels     []int
	ClassNames []string
	Features   []string
	WindowSize int
}

// Append adds one sample with its label.
func (d *Dataset) Append(sample [][]float64, label int) {
	d.Samples = append(d.Samples, sample)
	d.Labels = append(d.Labels, label)
}

// Len returns the number of samples.
func (d *Dataset) Len() int { return len(d.Samples) }

// Shape returns (samples, window_size, features).
func (d *Dataset) Shape() (int, int, int) {
	return len(d.Samples), d.WindowSize, len(d.Features)
}

// Counts returns the number of samples per label, indexed like ClassNames.
func (d *Dataset) Counts() []int {
	counts := make([]int, len(d.ClassNames))
	for _, l := range d.Labels {
		if l >= 0 && l < len(counts) {
			counts[l]++
		}
	}
	return counts
}

// Validate checks the tensor shape and that every label is in range.
func (d *Dataset) Validate() error {
	if len(d.Samples) != len(d.Labels) {
		return fmt.Errorf("dataset: %d samples but %d labels", len(d.Samples), len(d.Labels))
	}
	for i, s := range d.Samples {
		if len(s) != d.WindowSize {
			return fmt.Errorf("dataset: sample %d has %d rows, want %d", i, len(s), d.WindowSize)
		}
		for _, row := range s {
			if len(row) != len(d.Features) {
				return fmt.Errorf("dataset: sample %d has %d columns, want %d", i, len(row), len(d.Features))
			}
		}
		if l := d.Labels[i]; l < 0 || l >= len(d.ClassNames) {
			return fmt.Errorf("dataset: sample %d label %d outside %d classes", i, l, len(d.ClassNames))
		}
	}
	return nil
}
