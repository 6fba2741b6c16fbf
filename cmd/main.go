package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"gesture-logger/controller"
	"gesture-logger/services/catalog"
	"gesture-logger/utils"
	"gesture-logger/views"
)

const usage = `usage: gesture-logger <command> [flags]

commands:
  collect   record one labelled gesture from the wristband over serial
  dataset   window + augment recordings into a training dataset
  catalog   list collected recordings per class
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	switch os.Args[1] {
	case "collect":
		runCollect(os.Args[2:])
	case "dataset":
		runDataset(os.Args[2:])
	case "catalog":
		runCatalog(os.Args[2:])
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
}

// commonFlags registers the logging flags every subcommand shares.
func commonFlags(fs *flag.FlagSet) (logFile, logLevel *string) {
	logFile = fs.String("log", "", "optional log file path (stdout is always included)")
	logLevel = fs.String("log-level", "INFO", "DEBUG, INFO, WARN or ERROR")
	return
}

// signalContext is cancelled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// ── collect ──────────────────────────────────────────────────────────

func runCollect(args []string) {
	fs := flag.NewFlagSet("collect", flag.ExitOnError)
	cfgPath := fs.String("config", "config/collect.yaml", "path to collect.yaml")
	class := fs.String("class", "", "gesture class (overrides recording.class)")
	points := fs.Int("points", 0, "number of samples (overrides recording.num_points)")
	port := fs.String("port", "", "serial port (overrides serial.port)")
	simulate := fs.Bool("simulate", false, "synthesise samples instead of reading serial")
	logFile, logLevel := commonFlags(fs)
	fs.Parse(args)

	logger := utils.InitLogger(utils.ParseLogLevel(*logLevel), *logFile)
	defer logger.Close()

	cfg, err := utils.LoadCollectConfig(*cfgPath)
	if err != nil {
		utils.L().Fatal("load config: %v", err)
	}
	if *class != "" {
		cfg.Recording.Class = *class
	}
	if *points > 0 {
		cfg.Recording.NumPoints = *points
	}
	if *port != "" {
		cfg.Serial.Port = *port
	}
	if *simulate {
		cfg.Simulation.Enabled = true
	}

	cat, err := catalog.Open(cfg.Storage.CatalogPath)
	if err != nil {
		utils.L().Fatal("open catalog: %v", err)
	}
	defer cat.Close()

	ctx, cancel := signalContext()
	defer cancel()

	col, err := controller.NewCollector(cfg)
	if err != nil {
		utils.L().Fatal("init collector: %v", err)
	}
	defer col.Close()

	rc, err := controller.NewRecordingController(cfg, cat, col.Source())
	if err != nil {
		utils.L().Fatal("init recording: %v", err)
	}

	if err := col.Start(ctx); err != nil {
		os.Remove(rc.Path())
		utils.L().Fatal("start collector: %v", err)
	}

	rec, err := rc.Record(ctx, col.Samples())
	cancel()
	col.LogStats()
	if err != nil {
		utils.L().Fatal("record: %v", err)
	}

	fmt.Printf("\n✓ recorded %d points of %q  id=%s\n  %s\n", rec.Rows, rec.Class, rec.ID, rec.Path)
}

// ── dataset ──────────────────────────────────────────────────────────

func runDataset(args []string) {
	fs := flag.NewFlagSet("dataset", flag.ExitOnError)
	cfgPath := fs.String("config", "config/pipeline.yaml", "path to pipeline.yaml")
	dataDir := fs.String("data", "", "recordings root (overrides data_dir)")
	features := fs.String("features", "", "accel_gyro, full, quat, or a comma-separated column list")
	mode := fs.String("mode", "", "window mode: overlap or sliding (overrides window.mode)")
	seed := fs.Uint64("seed", 0, "augmentation seed (overrides augment.seed when given, 0 included)")
	export := fs.String("export", "", "export directory (overrides export.dir); \"auto\" picks a timestamped name")
	logFile, logLevel := commonFlags(fs)
	fs.Parse(args)

	logger := utils.InitLogger(utils.ParseLogLevel(*logLevel), *logFile)
	defer logger.Close()

	cfg, err := utils.LoadPipelineConfig(*cfgPath)
	if err != nil {
		utils.L().Fatal("load config: %v", err)
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if cols := views.ResolveFeatures(*features); len(cols) > 0 {
		cfg.Features = cols
		if preset, ok := views.ParseFeatureSet(*features); ok {
			utils.L().Info("feature preset %s: %v", preset, cols)
		}
	}
	if *mode != "" {
		cfg.Window.Mode = *mode
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			cfg.Augment.Seed = *seed
		}
	})
	if *export != "" {
		cfg.Export.Dir = *export
	}
	if err := cfg.Validate(); err != nil {
		utils.L().Fatal("config: %v", err)
	}

	dc, err := controller.NewDatasetController(cfg)
	if err != nil {
		utils.L().Fatal("init dataset: %v", err)
	}

	start := time.Now()
	ds, _, err := dc.Build()
	if err != nil {
		utils.L().Fatal("build dataset: %v", err)
	}
	utils.L().Info("dataset built in %s", time.Since(start).Round(time.Millisecond))

	if cfg.Export.Dir == "" {
		return
	}
	dir := cfg.Export.Dir
	if dir == "auto" {
		dir = filepath.Join(filepath.Dir(cfg.DataDir), utils.ExportName(time.Now()))
	}
	if err := dc.Export(ds, dir); err != nil {
		utils.L().Fatal("export: %v", err)
	}
	fmt.Println("\n✓ dataset written to", dir)
}

// ── catalog ──────────────────────────────────────────────────────────

func runCatalog(args []string) {
	fs := flag.NewFlagSet("catalog", flag.ExitOnError)
	cfgPath := fs.String("config", "config/collect.yaml", "path to collect.yaml (for storage.catalog_path)")
	class := fs.String("class", "", "list individual recordings of this class")
	logFile, logLevel := commonFlags(fs)
	fs.Parse(args)

	logger := utils.InitLogger(utils.ParseLogLevel(*logLevel), *logFile)
	defer logger.Close()

	cfg, err := utils.LoadCollectConfig(*cfgPath)
	if err != nil {
		utils.L().Fatal("load config: %v", err)
	}
	cat, err := catalog.Open(cfg.Storage.CatalogPath)
	if err != nil {
		utils.L().Fatal("open catalog: %v", err)
	}
	defer cat.Close()

	if *class != "" {
		recs, err := cat.List(*class)
		if err != nil {
			utils.L().Fatal("%v", err)
		}
		for _, r := range recs {
			fmt.Printf("%s  %s  rows=%-5d  %s  (%s)\n",
				r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Rows, r.Path, r.Source)
		}
		return
	}

	counts, err := cat.CountByClass()
	if err != nil {
		utils.L().Fatal("%v", err)
	}
	fmt.Printf("%-12s %10s %10s\n", "class", "recordings", "rows")
	fmt.Println(strings.Repeat("─", 34))
	for _, c := range counts {
		fmt.Printf("%-12s %10d %10d\n", c.Class, c.Recordings, c.Rows)
	}
}
