package utils

import (
	"fmt"
	"time"
)

// RecordingName returns the file name for a new recording:
//
//	<prefix>_YYYYMMDD_HHMMSS_<points>.csv
func RecordingName(prefix string, at time.Time, points int) string {
	return fmt.Sprintf("%s_%s_%d.csv", prefix, at.Format("20060102_150405"), points)
}

// ExportName returns a directory name for a dataset export:
//
//	dataset_MMDD_HHMM
func ExportName(at time.Time) string {
	return "dataset_" + at.Format("0102_1504")
}
