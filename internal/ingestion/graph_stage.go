package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/fortmig/fortscan/internal/graph"
)

// GraphStage mirrors the run's file nodes and dependency edges into Neo4j.
// The graph client may be nil, in which case the stage is a no-op.
type GraphStage struct {
	graph  *graph.Client
	logger *slog.Logger
}

func NewGraphStage(gc *graph.Client, logger *slog.Logger) *GraphStage {
	return &GraphStage{graph: gc, logger: logger}
}

func (s *GraphStage) Name() string { return "graph_sync" }

func (s *GraphStage) Execute(ctx context.Context, rc *ScanRunContext) error {
	if s.graph == nil {
		s.logger.Info("graph sync skipped, no client configured",
			slog.String("run_id", rc.RunID.String()))
		return nil
	}

	if err := s.graph.ClearRun(ctx, rc.RunID); err != nil {
		return fmt.Errorf("clear run graph: %w", err)
	}
	if err := s.graph.SyncFiles(ctx, rc.RunID, rc.Rows); err != nil {
		return fmt.Errorf("sync file nodes: %w", err)
	}

	var edges []graph.Edge
	for _, path := range rc.Snapshot.Paths {
		rec := rc.Snapshot.Files[path]
		targets := make([]string, 0, len(rec.Deps))
		for target := range rec.Deps {
			targets = append(targets, target)
		}
		sort.Strings(targets)
		for _, target := range targets {
			edges = append(edges, graph.Edge{SourcePath: path, TargetPath: target})
		}
	}
	if err := s.graph.SyncEdges(ctx, rc.RunID, edges); err != nil {
		return fmt.Errorf("sync edges: %w", err)
	}

	s.logger.Info("graph synced",
		slog.String("run_id", rc.RunID.String()),
		slog.Int("nodes", len(rc.Rows)),
		slog.Int("edges", len(edges)))
	return nil
}
