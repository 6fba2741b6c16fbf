package utils

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ─── Collection configs ─────────────────────────────────────────────────

type SerialConfig struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
	Command  string `yaml:"command"` // trigger line sent to the MCU
}

type RecordingConfig struct {
	Class            string `yaml:"class"`
	Prefix           string `yaml:"prefix"` // file prefix, defaults to class
	NumPoints        int    `yaml:"num_points"`
	CountdownSeconds int    `yaml:"countdown_seconds"`
	ProgressEvery    int    `yaml:"progress_every"`
	ChannelBuffer    int    `yaml:"channel_buffer"`
}

// FilePrefix returns Prefix, falling back to the class name.
func (r RecordingConfig) FilePrefix() string {
	if r.Prefix != "" {
		return r.Prefix
	}
	return r.Class
}

type CollectStorageConfig struct {
	DataDir      string `yaml:"data_dir"`
	CatalogPath  string `yaml:"catalog_path"`
	BufferSizeKB int    `yaml:"buffer_size_kb"`
}

type SimulationConfig struct {
	Enabled bool `yaml:"enabled"`
	RateHz  int  `yaml:"rate_hz"`
}

// CollectConfig is the top-level structure for collect.yaml.
type CollectConfig struct {
	Serial     SerialConfig         `yaml:"serial"`
	Recording  RecordingConfig      `yaml:"recording"`
	Storage    CollectStorageConfig `yaml:"storage"`
	Simulation SimulationConfig     `yaml:"simulation"`
}

// ApplyDefaults fills zero values.
func (c *CollectConfig) ApplyDefaults() {
	if c.Serial.BaudRate <= 0 {
		c.Serial.BaudRate = 115200
	}
	if c.Serial.Command == "" {
		c.Serial.Command = "bigData"
	}
	if c.Recording.NumPoints <= 0 {
		c.Recording.NumPoints = 300
	}
	if c.Recording.CountdownSeconds < 0 {
		c.Recording.CountdownSeconds = 0
	}
	if c.Recording.ProgressEvery <= 0 {
		c.Recording.ProgressEvery = 50
	}
	if c.Recording.ChannelBuffer <= 0 {
		c.Recording.ChannelBuffer = 512
	}
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = "data"
	}
	if c.Storage.CatalogPath == "" {
		c.Storage.CatalogPath = "catalog.db"
	}
	if c.Simulation.RateHz <= 0 {
		c.Simulation.RateHz = 100
	}
}

// ─── Pipeline configs ───────────────────────────────────────────────────

type WindowConfig struct {
	Mode  string `yaml:"mode"` // "overlap" or "sliding"
	Size  int    `yaml:"size"`
	Count int    `yaml:"count"` // overlap mode
	Step  int    `yaml:"step"`  // sliding mode
}

type AugmentConfig struct {
	NoiseStd    float64 `yaml:"noise_std"`
	ScaleMin    float64 `yaml:"scale_min"`
	ScaleMax    float64 `yaml:"scale_max"`
	MaxAngleDeg float64 `yaml:"max_angle_deg"`
	Seed        uint64  `yaml:"seed"`
}

type ExportConfig struct {
	Dir string `yaml:"dir"` // empty disables export
}

// PipelineConfig is the top-level structure for pipeline.yaml.
type PipelineConfig struct {
	DataDir        string        `yaml:"data_dir"`
	Features       []string      `yaml:"features"`
	IncludeClasses []string      `yaml:"include_classes"`
	Labels         []string      `yaml:"labels"` // explicit class order; label = index
	Window         WindowConfig  `yaml:"window"`
	Augment        AugmentConfig `yaml:"augment"`
	Export         ExportConfig  `yaml:"export"`
}

// DefaultFeatures is the accelerometer + gyroscope projection.
var DefaultFeatures = []string{"lin_acc_x", "lin_acc_y", "lin_acc_z", "gyro_x", "gyro_y", "gyro_z"}

// DefaultPipelineConfig returns the settings used for keys pipeline.yaml
// leaves out. Augmentation values are only defaulted here, so an explicit
// zero in the file (noise_std: 0, max_angle_deg: 0, seed: 0) is kept.
func DefaultPipelineConfig() *PipelineConfig {
	cfg := &PipelineConfig{
		Augment: AugmentConfig{
			NoiseStd:    0.01,
			ScaleMin:    0.8,
			ScaleMax:    1.2,
			MaxAngleDeg: 15,
			Seed:        42,
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills zero values that can never be meant literally.
func (c *PipelineConfig) ApplyDefaults() {
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if len(c.Features) == 0 {
		c.Features = append([]string(nil), DefaultFeatures...)
	}
	if c.Window.Mode == "" {
		c.Window.Mode = "overlap"
	}
	if c.Window.Size <= 0 {
		c.Window.Size = 125
	}
	if c.Window.Count <= 0 {
		c.Window.Count = 3
	}
	if c.Window.Step <= 0 {
		c.Window.Step = 25
	}
}

// Validate rejects settings the pipeline cannot run with.
func (c *PipelineConfig) Validate() error {
	switch c.Window.Mode {
	case "overlap", "sliding":
	default:
		return fmt.Errorf("window.mode %q: want overlap or sliding", c.Window.Mode)
	}
	if c.Window.Mode == "overlap" && c.Window.Count < 2 {
		return fmt.Errorf("window.count %d: need at least 2", c.Window.Count)
	}
	a := c.Augment
	if a.NoiseStd < 0 || a.MaxAngleDeg < 0 {
		return fmt.Errorf("augment.noise_std %.3f / max_angle_deg %.1f: must not be negative", a.NoiseStd, a.MaxAngleDeg)
	}
	if a.ScaleMin <= 0 {
		return fmt.Errorf("augment.scale_min %.3f: must be positive (1.0 and 1.0 disable scaling)", a.ScaleMin)
	}
	if a.ScaleMin > a.ScaleMax {
		return fmt.Errorf("augment.scale_min %.3f > scale_max %.3f", a.ScaleMin, a.ScaleMax)
	}
	seen := make(map[string]bool, len(c.Labels))
	for _, l := range c.Labels {
		if seen[l] {
			return fmt.Errorf("labels: class %q listed twice", l)
		}
		seen[l] = true
	}
	return nil
}

// ─── Loaders ────────────────────────────────────────────────────────────

// LoadCollectConfig reads and parses collect.yaml.
func LoadCollectConfig(path string) (*CollectConfig, error) {
	var cfg CollectConfig
	if err := loadYAML(path, &cfg); err != nil {
		return nil, fmt.Errorf("collect config: %w", err)
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// LoadPipelineConfig reads pipeline.yaml over DefaultPipelineConfig and
// validates the result.
func LoadPipelineConfig(path string) (*PipelineConfig, error) {
	cfg := DefaultPipelineConfig()
	if err := loadYAML(path, cfg); err != nil {
		return nil, fmt.Errorf("pipeline config: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline config: %w", err)
	}
	return cfg, nil
}

func loadYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
