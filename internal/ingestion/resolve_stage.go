package ingestion

import (
	"context"
	"log/slog"
)

// ResolveStage turns symbol references into file-to-file dependency edges.
type ResolveStage struct {
	logger *slog.Logger
}

func NewResolveStage(logger *slog.Logger) *ResolveStage {
	return &ResolveStage{logger: logger}
}

func (s *ResolveStage) Name() string { return "resolve" }

func (s *ResolveStage) Execute(_ context.Context, rc *ScanRunContext) error {
	rc.EdgesResolved = rc.Snapshot.ResolveEdges()

	s.logger.Info("edges resolved",
		slog.String("run_id", rc.RunID.String()),
		slog.Int("edges", rc.EdgesResolved))
	return nil
}
