package controller

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"gesture-logger/models"
	"gesture-logger/services/catalog"
	"gesture-logger/utils"
	"gesture-logger/views"
)

// RecordingController writes one labelled recording:
// <data_dir>/<class>/<prefix>_<YYYYMMDD_HHMMSS>_<n>.csv, then registers it
// in the catalog.
type RecordingController struct {
	cfg     *utils.CollectConfig
	catalog *catalog.Catalog
	source  string
	path    string
	writer  *views.CSVWriter

	rowsWritten uint64
}

// NewRecordingController creates the class directory and the CSV file
// with the recording header. cat may be nil to skip registration.
func NewRecordingController(cfg *utils.CollectConfig, cat *catalog.Catalog, source string) (*RecordingController, error) {
	if cfg.Recording.Class == "" {
		return nil, fmt.Errorf("recording.class is not set")
	}
	dir := filepath.Join(cfg.Storage.DataDir, cfg.Recording.Class)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create class dir: %w", err)
	}

	name := utils.RecordingName(cfg.Recording.FilePrefix(), time.Now(), cfg.Recording.NumPoints)
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("recording %s already exists", path)
	}

	w, err := views.NewCSVWriter(path, cfg.Storage.BufferSizeKB*1024, true, models.IMUSample{}.CSVHeader())
	if err != nil {
		return nil, err
	}

	utils.L().Info("recording controller ready  file=%s", path)
	return &RecordingController{
		cfg:     cfg,
		catalog: cat,
		source:  source,
		path:    path,
		writer:  w,
	}, nil
}

// Record consumes samples until num_points rows are written, the channel
// closes, or ctx is cancelled. A partial recording is kept and registered;
// an empty one is removed and reported as an error.
func (rc *RecordingController) Record(ctx context.Context, samples <-chan *models.IMUSample) (*catalog.Recording, error) {
	want := rc.cfg.Recording.NumPoints
	every := rc.cfg.Recording.ProgressEvery
	utils.L().Info("collecting %d data points", want)

loop:
	for atomic.LoadUint64(&rc.rowsWritten) < uint64(want) {
		select {
		case <-ctx.Done():
			break loop
		case s, ok := <-samples:
			if !ok {
				break loop
			}
			rc.writer.WriteRow(s.CSVRow())
			n := atomic.AddUint64(&rc.rowsWritten, 1)
			if every > 0 && n%uint64(every) == 0 {
				utils.L().Info("progress: %d/%d points", n, want)
				if err := rc.writer.Flush(); err != nil {
					utils.L().Error("flush: %v", err)
				}
			}
		}
	}

	if err := rc.writer.Close(); err != nil {
		return nil, err
	}

	rows := int(atomic.LoadUint64(&rc.rowsWritten))
	if rows == 0 {
		_ = os.Remove(rc.path)
		return nil, fmt.Errorf("no samples received from %s", rc.source)
	}
	if rows < want {
		utils.L().Warn("recording stopped early: %d/%d points", rows, want)
	}

	rec := &catalog.Recording{
		Class:  rc.cfg.Recording.Class,
		Path:   rc.path,
		Rows:   rows,
		Source: rc.source,
	}
	if rc.catalog != nil {
		if err := rc.catalog.Add(rec); err != nil {
			return rec, err
		}
	}
	utils.L().Info("successfully collected %s data  (rows=%d, file=%s)", rec.Class, rows, rc.path)
	return rec, nil
}

// Path returns the recording file path.
func (rc *RecordingController) Path() string {
	return rc.path
}

// RowsWritten returns the number of samples persisted so far.
func (rc *RecordingController) RowsWritten() uint64 {
	return atomic.LoadUint64(&rc.rowsWritten)
}
