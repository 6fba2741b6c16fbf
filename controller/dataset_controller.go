package controller

import (
	"fmt"

	"gesture-logger/models"
	"gesture-logger/services/pipeline"
	"gesture-logger/utils"
	"gesture-logger/views"
)

// DatasetController wires the pipeline configuration into an Assembler
// and exports the result for training.
type DatasetController struct {
	cfg       *utils.PipelineConfig
	assembler *pipeline.Assembler
}

// NewDatasetController builds the extractor and a seeded augmentor.
func NewDatasetController(cfg *utils.PipelineConfig) (*DatasetController, error) {
	ext, err := pipeline.NewExtractor(cfg.Window.Mode, cfg.Window.Size, cfg.Window.Count, cfg.Window.Step)
	if err != nil {
		return nil, err
	}
	aug := pipeline.NewSeededAugmentor(pipeline.AugmentParams{
		NoiseStd:    cfg.Augment.NoiseStd,
		ScaleMin:    cfg.Augment.ScaleMin,
		ScaleMax:    cfg.Augment.ScaleMax,
		MaxAngleDeg: cfg.Augment.MaxAngleDeg,
	}, cfg.Augment.Seed)

	p := aug.Params()
	utils.L().Info("dataset controller ready  (data=%s, %s, seed=%d)", cfg.DataDir, ext, cfg.Augment.Seed)
	utils.L().Info("  augment: noise σ=%.3f  scale=[%.2f, %.2f]  angle=±%.1f°",
		p.NoiseStd, p.ScaleMin, p.ScaleMax, p.MaxAngleDeg)
	return &DatasetController{
		cfg: cfg,
		assembler: &pipeline.Assembler{
			Extractor: ext,
			Augmentor: aug,
			Features:  cfg.Features,
			Include:   cfg.IncludeClasses,
			Labels:    cfg.Labels,
		},
	}, nil
}

// Build assembles and validates the dataset.
func (dc *DatasetController) Build() (*models.Dataset, *pipeline.Report, error) {
	ds, rep, err := dc.assembler.Assemble(dc.cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}
	if err := ds.Validate(); err != nil {
		return nil, rep, fmt.Errorf("assembled dataset: %w", err)
	}
	if len(rep.Skipped) > 0 {
		utils.L().Warn("%d recording(s) or class dir(s) skipped", len(rep.Skipped))
	}
	return ds, rep, nil
}

// Export writes ds and its manifest into dir.
func (dc *DatasetController) Export(ds *models.Dataset, dir string) error {
	if ds.Len() == 0 {
		return fmt.Errorf("refusing to export an empty dataset")
	}
	m := views.NewManifest(ds)
	m.WindowMode = dc.assembler.Extractor.String()
	m.Seed = dc.cfg.Augment.Seed
	m.SourceDir = dc.cfg.DataDir
	if err := views.ExportDataset(ds, dir, m); err != nil {
		return err
	}
	utils.L().Info("dataset exported to %s", dir)
	return nil
}
