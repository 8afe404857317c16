package ingestion

import (
	"context"
	"log/slog"

	"github.com/fortmig/fortscan/internal/report"
)

// ClassifyStage assigns the final classification to every file and builds
// the row and unresolved-target views consumed downstream.
type ClassifyStage struct {
	logger *slog.Logger
}

func NewClassifyStage(logger *slog.Logger) *ClassifyStage {
	return &ClassifyStage{logger: logger}
}

func (s *ClassifyStage) Name() string { return "classify" }

func (s *ClassifyStage) Execute(_ context.Context, rc *ScanRunContext) error {
	rc.Totals = rc.Snapshot.Classify()
	rc.Rows = report.Rows(rc.Snapshot, rc.Manifest)
	rc.Unresolved = report.Unresolved(rc.Snapshot)

	s.logger.Info("files classified",
		slog.String("run_id", rc.RunID.String()),
		slog.Int("owned", rc.Totals.Owned),
		slog.Int("support", rc.Totals.Support),
		slog.Int("out_of_scope", rc.Totals.OutOfScope))
	return nil
}
