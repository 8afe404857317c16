package ingestion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fortmig/fortscan/internal/scanner"
)

// ScanStage walks the scan root and collects Fortran source files.
type ScanStage struct {
	logger *slog.Logger
}

func NewScanStage(logger *slog.Logger) *ScanStage {
	return &ScanStage{logger: logger}
}

func (s *ScanStage) Name() string { return "scan" }

func (s *ScanStage) Execute(_ context.Context, rc *ScanRunContext) error {
	inputs, err := scanner.Scan(rc.ScanRoot)
	if err != nil {
		return fmt.Errorf("scan %s: %w", rc.ScanRoot, err)
	}
	rc.Inputs = inputs
	rc.FilesScanned = len(inputs)

	s.logger.Info("source tree scanned",
		slog.String("run_id", rc.RunID.String()),
		slog.String("root", rc.ScanRoot),
		slog.Int("files", len(inputs)))
	return nil
}
