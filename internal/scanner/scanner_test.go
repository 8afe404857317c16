package scanner

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanCollectsFortranSuffixesSorted(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "POT/pot.f90", "module pot\nend module pot\n")
	writeFile(t, root, "COMMON/wlog.f", "      subroutine wlog(msg)\n")
	writeFile(t, root, "COMMON/notes.txt", "not source")
	writeFile(t, root, "FMS/fms.F90", "subroutine fmspack\n")

	inputs, err := Scan(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(inputs) != 3 {
		t.Fatalf("expected 3 files, got %d", len(inputs))
	}
	// Sorted by relative path.
	if inputs[0].Path != "COMMON/wlog.f" || inputs[2].Path != "POT/pot.f90" {
		t.Errorf("unexpected order: %s, %s, %s", inputs[0].Path, inputs[1].Path, inputs[2].Path)
	}
	if inputs[0].Dir != "COMMON" {
		t.Errorf("expected upper-cased dir COMMON, got %s", inputs[0].Dir)
	}
	if len(inputs[0].Content) == 0 {
		t.Error("content must be materialized during the scan")
	}
}

func TestScanMissingRoot(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "absent"))
	if !errors.Is(err, ErrRootNotFound) {
		t.Errorf("expected ErrRootNotFound, got %v", err)
	}
}

func TestScanEmptyRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "doc/readme.md", "nothing to scan")
	_, err := Scan(root)
	if !errors.Is(err, ErrNoSourceFiles) {
		t.Errorf("expected ErrNoSourceFiles, got %v", err)
	}
}
