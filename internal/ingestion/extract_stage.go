package ingestion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fortmig/fortscan/internal/analysis"
	"github.com/fortmig/fortscan/internal/parser"
	"github.com/fortmig/fortscan/internal/parser/fortran"
)

// ExtractStage parses every collected file and builds the symbol snapshot.
type ExtractStage struct {
	registry *parser.Registry
	logger   *slog.Logger
}

func NewExtractStage(logger *slog.Logger) *ExtractStage {
	registry := parser.NewRegistry()
	fp := fortran.New()
	for _, ext := range fortran.Suffixes {
		registry.Register(ext, fp)
	}
	return &ExtractStage{registry: registry, logger: logger}
}

func (s *ExtractStage) Name() string { return "extract" }

func (s *ExtractStage) Execute(ctx context.Context, rc *ScanRunContext) error {
	snap := analysis.NewSnapshot()

	for _, input := range rc.Inputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		p := s.registry.ForFile(input.Path)
		if p == nil {
			continue
		}
		ext, err := p.Parse(input)
		if err != nil {
			return fmt.Errorf("parse %s: %w", input.Path, err)
		}
		result := parser.FileResult{
			Path:       input.Path,
			Dir:        input.Dir,
			Language:   p.Language(),
			Extraction: *ext,
		}
		if err := snap.Add(result); err != nil {
			return fmt.Errorf("index %s: %w", input.Path, err)
		}
	}

	rc.Snapshot = snap

	s.logger.Info("symbols extracted",
		slog.String("run_id", rc.RunID.String()),
		slog.Int("files", len(rc.Inputs)))
	return nil
}
