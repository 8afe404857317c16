package ingestion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fortmig/fortscan/internal/graph"
	"github.com/fortmig/fortscan/internal/store"
	"github.com/fortmig/fortscan/internal/store/minio"
	"github.com/fortmig/fortscan/internal/store/postgres"
)

// Pipeline orchestrates the analysis stages for each scan job:
// manifest → scan → extract → resolve → propagate → classify → persist →
// graph_sync → report. Any stage failure marks the run failed with the
// stage's error message; otherwise the run completes with final counters.
type Pipeline struct {
	store  *store.Store
	stages []Stage
	logger *slog.Logger
}

func NewPipeline(s *store.Store, stages []Stage, logger *slog.Logger) *Pipeline {
	return &Pipeline{store: s, stages: stages, logger: logger}
}

// Run processes a single scan message through every stage.
func (p *Pipeline) Run(ctx context.Context, msg ScanMessage) error {
	p.logger.Info("pipeline started",
		slog.String("run_id", msg.RunID.String()),
		slog.String("project_id", msg.ProjectID.String()))

	proj, err := p.store.GetProjectByID(ctx, msg.ProjectID)
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}

	if err := p.store.MarkScanRunRunning(ctx, msg.RunID); err != nil {
		return fmt.Errorf("update status to running: %w", err)
	}

	rc := &ScanRunContext{
		RunID:        msg.RunID,
		ProjectID:    msg.ProjectID,
		ScanRoot:     proj.ScanRoot,
		ManifestPath: proj.ManifestPath,
	}

	for _, stage := range p.stages {
		p.logger.Info("stage started",
			slog.String("stage", stage.Name()),
			slog.String("run_id", msg.RunID.String()))

		if err := stage.Execute(ctx, rc); err != nil {
			_ = p.store.MarkScanRunFailed(ctx, msg.RunID, err.Error())
			return fmt.Errorf("stage %s failed: %w", stage.Name(), err)
		}

		p.logger.Info("stage completed",
			slog.String("stage", stage.Name()),
			slog.String("run_id", msg.RunID.String()))
	}

	stats := postgres.ScanRunStats{
		FilesScanned:    rc.FilesScanned,
		EdgesResolved:   rc.EdgesResolved,
		UnresolvedCount: len(rc.Unresolved),
		OwnedCount:      rc.Totals.Owned,
		SupportCount:    rc.Totals.Support,
		OutOfScopeCount: rc.Totals.OutOfScope,
	}
	if err := p.store.MarkScanRunCompleted(ctx, msg.RunID, stats); err != nil {
		return fmt.Errorf("update status to completed: %w", err)
	}

	p.logger.Info("pipeline completed",
		slog.String("run_id", msg.RunID.String()),
		slog.Int("files", rc.FilesScanned),
		slog.Int("edges", rc.EdgesResolved),
		slog.Int("owned", rc.Totals.Owned),
		slog.Int("support", rc.Totals.Support),
		slog.Int("out_of_scope", rc.Totals.OutOfScope))

	return nil
}

// DefaultStages builds the standard stage sequence. Graph and artifact
// clients are optional; their stages no-op when nil.
func DefaultStages(st *store.Store, gc *graph.Client, artifacts *minio.Client, logger *slog.Logger) []Stage {
	return []Stage{
		NewManifestStage(),
		NewScanStage(logger),
		NewExtractStage(logger),
		NewResolveStage(logger),
		NewPropagateStage(logger),
		NewClassifyStage(logger),
		NewPersistStage(st, logger),
		NewGraphStage(gc, logger),
		NewReportStage(artifacts, logger),
	}
}
