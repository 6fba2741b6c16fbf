package views

import "strings"

// FeatureSet names a column projection of the 10-column recording CSV.
type FeatureSet int

const (
	FeaturesAccelGyro FeatureSet = iota
	FeaturesFull
	FeaturesQuat
)

var featureSetNames = map[FeatureSet]string{
	FeaturesAccelGyro: "accel_gyro",
	FeaturesFull:      "full",
	FeaturesQuat:      "quat",
}

func (f FeatureSet) String() string {
	if n, ok := featureSetNames[f]; ok {
		return n
	}
	return "unknown"
}

// RecordingColumns is the on-disk layout written by the collector.
var RecordingColumns = []string{
	"lin_acc_x", "lin_acc_y", "lin_acc_z",
	"gyro_x", "gyro_y", "gyro_z",
	"quat_w", "quat_x", "quat_y", "quat_z",
}

// SchemaColumns returns the ordered columns for each feature set.
var SchemaColumns = map[FeatureSet][]string{
	FeaturesAccelGyro: RecordingColumns[:6],
	FeaturesFull:      RecordingColumns,
	FeaturesQuat:      RecordingColumns[6:],
}

// ParseFeatureSet resolves a preset name (case-insensitive).
func ParseFeatureSet(name string) (FeatureSet, bool) {
	for fs, n := range featureSetNames {
		if strings.EqualFold(n, name) {
			return fs, true
		}
	}
	return 0, false
}

// Columns returns a copy of the preset's column list.
func (f FeatureSet) Columns() []string {
	return append([]string(nil), SchemaColumns[f]...)
}

// ResolveFeatures turns a -features flag value into a column list. A
// preset name expands to its columns; anything else is read as a
// comma-separated column list.
func ResolveFeatures(arg string) []string {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return nil
	}
	if fs, ok := ParseFeatureSet(arg); ok {
		return fs.Columns()
	}
	var cols []string
	for _, c := range strings.Split(arg, ",") {
		if c = strings.TrimSpace(c); c != "" {
			cols = append(cols, c)
		}
	}
	return cols
}
