package ingestion

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fortmig/fortscan/internal/report"
	"github.com/fortmig/fortscan/internal/store/minio"
)

const (
	csvArtifactName    = "gap-report.csv"
	reportArtifactName = "gap-report.md"
)

// ReportStage renders the CSV export and markdown gap report and uploads
// both as run artifacts. The artifact client may be nil, in which case the
// stage is a no-op.
type ReportStage struct {
	artifacts *minio.Client
	logger    *slog.Logger
}

func NewReportStage(artifacts *minio.Client, logger *slog.Logger) *ReportStage {
	return &ReportStage{artifacts: artifacts, logger: logger}
}

func (s *ReportStage) Name() string { return "report" }

func (s *ReportStage) Execute(ctx context.Context, rc *ScanRunContext) error {
	if s.artifacts == nil {
		s.logger.Info("report upload skipped, no artifact client configured",
			slog.String("run_id", rc.RunID.String()))
		return nil
	}

	var csvBuf bytes.Buffer
	if err := report.WriteCSV(&csvBuf, rc.Rows); err != nil {
		return fmt.Errorf("render csv: %w", err)
	}

	csvObject, err := s.artifacts.UploadArtifact(ctx, rc.RunID.String(), csvArtifactName,
		"text/csv", &csvBuf, int64(csvBuf.Len()))
	if err != nil {
		return err
	}

	meta := report.Meta{
		GeneratedAt:  time.Now().UTC(),
		ScanRoot:     rc.ScanRoot,
		ManifestPath: rc.ManifestPath,
		CSVPath:      csvObject,
	}

	var mdBuf bytes.Buffer
	if err := report.WriteMarkdown(&mdBuf, meta, rc.Rows, rc.Unresolved); err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}

	mdObject, err := s.artifacts.UploadArtifact(ctx, rc.RunID.String(), reportArtifactName,
		"text/markdown", &mdBuf, int64(mdBuf.Len()))
	if err != nil {
		return err
	}

	s.logger.Info("artifacts uploaded",
		slog.String("run_id", rc.RunID.String()),
		slog.String("csv", csvObject),
		slog.String("report", mdObject))
	return nil
}
