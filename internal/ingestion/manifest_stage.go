package ingestion

import (
	"context"
	"fmt"

	"github.com/fortmig/fortscan/internal/manifest"
)

// ManifestStage loads and validates the project's scan manifest.
type ManifestStage struct{}

func NewManifestStage() *ManifestStage {
	return &ManifestStage{}
}

func (s *ManifestStage) Name() string { return "manifest" }

func (s *ManifestStage) Execute(_ context.Context, rc *ScanRunContext) error {
	m, err := manifest.Load(rc.ManifestPath)
	if err != nil {
		return fmt.Errorf("load manifest %s: %w", rc.ManifestPath, err)
	}
	rc.Manifest = m
	return nil
}
