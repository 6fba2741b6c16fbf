package utils

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(p, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadPipelineConfigDefaults(t *testing.T) {
	cfg, err := LoadPipelineConfig(writeYAML(t, "data_dir: ./TensorFlow/Data\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataDir != "./TensorFlow/Data" {
		t.Fatalf("data_dir %q", cfg.DataDir)
	}
	if !reflect.DeepEqual(cfg.Features, DefaultFeatures) {
		t.Fatalf("features %v", cfg.Features)
	}
	if cfg.Window.Mode != "overlap" || cfg.Window.Size != 125 || cfg.Window.Count != 3 {
		t.Fatalf("window %+v", cfg.Window)
	}
	a := cfg.Augment
	if a.NoiseStd != 0.01 || a.ScaleMin != 0.8 || a.ScaleMax != 1.2 || a.MaxAngleDeg != 15 || a.Seed != 42 {
		t.Fatalf("augment %+v", a)
	}
}

func TestLoadPipelineConfigValues(t *testing.T) {
	cfg, err := LoadPipelineConfig(writeYAML(t, `
data_dir: data
labels: [still, handshake]
window:
  mode: sliding
  size: 175
  step: 10
augment:
  seed: 7
  scale_min: 0.9
  scale_max: 1.1
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.Mode != "sliding" || cfg.Window.Size != 175 || cfg.Window.Step != 10 {
		t.Fatalf("window %+v", cfg.Window)
	}
	if cfg.Augment.Seed != 7 || cfg.Augment.ScaleMin != 0.9 {
		t.Fatalf("augment %+v", cfg.Augment)
	}
	if !reflect.DeepEqual(cfg.Labels, []string{"still", "handshake"}) {
		t.Fatalf("labels %v", cfg.Labels)
	}
}

func TestLoadPipelineConfigExplicitZero(t *testing.T) {
	cfg, err := LoadPipelineConfig(writeYAML(t, `
augment:
  noise_std: 0
  max_angle_deg: 0
  seed: 0
`))
	if err != nil {
		t.Fatal(err)
	}
	a := cfg.Augment
	if a.NoiseStd != 0 || a.MaxAngleDeg != 0 || a.Seed != 0 {
		t.Fatalf("explicit zeros overwritten: %+v", a)
	}
	if a.ScaleMin != 0.8 || a.ScaleMax != 1.2 {
		t.Fatalf("unset scale range not defaulted: %+v", a)
	}
}

func TestLoadPipelineConfigInvalid(t *testing.T) {
	for _, body := range []string{
		"window:\n  mode: tumbling\n",
		"augment:\n  scale_min: 1.5\n  scale_max: 1.0\n",
		"augment:\n  scale_min: 0\n",
		"augment:\n  noise_std: -0.1\n",
		"labels: [still, handshake, still]\n",
		"window: [",
	} {
		if _, err := LoadPipelineConfig(writeYAML(t, body)); err == nil {
			t.Fatalf("expected error for %q", body)
		}
	}
	if _, err := LoadPipelineConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadCollectConfig(t *testing.T) {
	cfg, err := LoadCollectConfig(writeYAML(t, `
serial:
  port: /dev/cu.usbmodem2101
recording:
  class: dapup
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Serial.BaudRate != 115200 || cfg.Serial.Command != "bigData" {
		t.Fatalf("serial %+v", cfg.Serial)
	}
	if cfg.Recording.NumPoints != 300 || cfg.Recording.ProgressEvery != 50 {
		t.Fatalf("recording %+v", cfg.Recording)
	}
	if cfg.Recording.FilePrefix() != "dapup" {
		t.Fatalf("prefix %q", cfg.Recording.FilePrefix())
	}
}

func TestRecordingName(t *testing.T) {
	at := time.Date(2025, 6, 4, 14, 0, 5, 0, time.UTC)
	if got := RecordingName("dapup", at, 300); got != "dapup_20250604_140005_300.csv" {
		t.Fatalf("got %s", got)
	}
	if got := ExportName(at); got != "dataset_0604_1400" {
		t.Fatalf("got %s", got)
	}
}

func TestParseLogLevel(t *testing.T) {
	for in, want := range map[string]LogLevel{"DEBUG": DEBUG, "WARN": WARN, "bogus": INFO} {
		if got := ParseLogLevel(in); got != want {
			t.Fatalf("got %v, want %v for %q", got, want, in)
		}
	}
}
