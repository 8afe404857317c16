package ingestion

import (
	"context"
	"log/slog"
)

// PropagateStage seeds module ownership and floods labels across the
// dependency graph to a fixpoint.
type PropagateStage struct {
	logger *slog.Logger
}

func NewPropagateStage(logger *slog.Logger) *PropagateStage {
	return &PropagateStage{logger: logger}
}

func (s *PropagateStage) Name() string { return "propagate" }

func (s *PropagateStage) Execute(_ context.Context, rc *ScanRunContext) error {
	seeded := rc.Snapshot.SeedOrigins(rc.Manifest.DirToModules())
	rc.Snapshot.Propagate()

	s.logger.Info("ownership propagated",
		slog.String("run_id", rc.RunID.String()),
		slog.Int("seed_files", seeded))
	return nil
}
