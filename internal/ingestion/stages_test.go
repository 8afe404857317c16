package ingestion

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/fortmig/fortscan/pkg/models"
)

func writeFixture(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// Runs every in-memory stage over a small tree and checks the resulting
// classifications end to end.
func TestStages_InMemoryAnalysis(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "POT/pot.f90", "subroutine pot\n  call helper\nend subroutine pot\n")
	writeFixture(t, root, "COMMON/helper.f", "      subroutine helper\n      end\n")
	writeFixture(t, root, "MATH/stray.f", "      subroutine stray\n      call missing\n      end\n")

	manifestPath := filepath.Join(root, "manifest.json")
	if err := os.WriteFile(manifestPath, []byte(`{"inScopeModules": ["POT"]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rc := &ScanRunContext{
		RunID:        uuid.New(),
		ProjectID:    uuid.New(),
		ScanRoot:     root,
		ManifestPath: manifestPath,
	}

	stages := []Stage{
		NewManifestStage(),
		NewScanStage(logger),
		NewExtractStage(logger),
		NewResolveStage(logger),
		NewPropagateStage(logger),
		NewClassifyStage(logger),
	}
	for _, stage := range stages {
		if err := stage.Execute(context.Background(), rc); err != nil {
			t.Fatalf("stage %s: %v", stage.Name(), err)
		}
	}

	if rc.FilesScanned != 3 {
		t.Errorf("FilesScanned = %d, want 3", rc.FilesScanned)
	}
	if rc.EdgesResolved != 1 {
		t.Errorf("EdgesResolved = %d, want 1", rc.EdgesResolved)
	}
	if rc.Totals.Owned != 1 || rc.Totals.Support != 1 || rc.Totals.OutOfScope != 1 {
		t.Errorf("Totals = %+v, want 1 owned, 1 support, 1 out_of_scope", rc.Totals)
	}

	byPath := make(map[string]models.FileRow, len(rc.Rows))
	for _, row := range rc.Rows {
		byPath[row.Path] = row
	}

	if got := byPath["POT/pot.f90"].Classification; got != models.ClassificationOwned {
		t.Errorf("POT/pot.f90 classified %s, want owned", got)
	}
	if got := byPath["COMMON/helper.f"].Classification; got != models.ClassificationSupportDependency {
		t.Errorf("COMMON/helper.f classified %s, want support_dependency", got)
	}
	if got := byPath["MATH/stray.f"].Classification; got != models.ClassificationOutOfScope {
		t.Errorf("MATH/stray.f classified %s, want out_of_scope", got)
	}

	if len(rc.Unresolved) != 1 {
		t.Fatalf("Unresolved = %d entries, want 1", len(rc.Unresolved))
	}
	if rc.Unresolved[0].Kind != "call" || rc.Unresolved[0].Name != "missing" {
		t.Errorf("unresolved target = %s::%s, want call::missing", rc.Unresolved[0].Kind, rc.Unresolved[0].Name)
	}
}

func TestStages_ManifestFailureStopsPipeline(t *testing.T) {
	rc := &ScanRunContext{
		RunID:        uuid.New(),
		ManifestPath: filepath.Join(t.TempDir(), "missing.json"),
	}

	if err := NewManifestStage().Execute(context.Background(), rc); err == nil {
		t.Fatal("expected error for missing manifest")
	}
}
