package ingestion

import (
	"context"

	"github.com/google/uuid"

	"github.com/fortmig/fortscan/internal/analysis"
	"github.com/fortmig/fortscan/internal/manifest"
	"github.com/fortmig/fortscan/internal/parser"
	"github.com/fortmig/fortscan/pkg/models"
)

// Stage represents a step in the scan pipeline.
type Stage interface {
	Name() string
	Execute(ctx context.Context, rc *ScanRunContext) error
}

// ScanRunContext carries state through the pipeline stages.
type ScanRunContext struct {
	RunID     uuid.UUID
	ProjectID uuid.UUID

	ScanRoot     string
	ManifestPath string

	// Set by the manifest stage
	Manifest *manifest.Manifest

	// Set by the scan stage
	Inputs []parser.FileInput

	// Set by the extract stage and enriched through resolve/propagate/classify
	Snapshot *analysis.Snapshot

	// Set by the classify stage
	Rows       []models.FileRow
	Unresolved []models.UnresolvedTarget
	Totals     models.ClassificationTotals

	// Counters for run stats
	FilesScanned  int
	EdgesResolved int
}
