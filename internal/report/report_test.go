package report

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/fortmig/fortscan/internal/analysis"
	"github.com/fortmig/fortscan/internal/manifest"
	"github.com/fortmig/fortscan/internal/parser"
	"github.com/fortmig/fortscan/pkg/models"
)

func classifiedSnapshot(t *testing.T) (*analysis.Snapshot, *manifest.Manifest) {
	t.Helper()
	m, err := manifest.Parse([]byte(`{"inScopeModules": ["POT"]}`))
	if err != nil {
		t.Fatal(err)
	}

	snap := analysis.NewSnapshot()
	add := func(path, dir string, ext parser.Extraction) {
		t.Helper()
		if err := snap.Add(parser.FileResult{Path: path, Dir: dir, Language: "fortran", Extraction: ext}); err != nil {
			t.Fatal(err)
		}
	}
	add("POT/pot.f90", "POT", parser.Extraction{Calls: []string{"helper", "missing"}})
	add("COMMON/helper.f", "COMMON", parser.Extraction{DefinedRoutines: []string{"helper"}})
	add("MATH/stray.f", "MATH", parser.Extraction{Uses: []string{"nowhere"}})

	snap.ResolveEdges()
	snap.SeedOrigins(m.DirToModules())
	snap.Propagate()
	snap.Classify()
	return snap, m
}

func TestRows(t *testing.T) {
	snap, m := classifiedSnapshot(t)
	rows := Rows(snap, m)

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	// Sorted by path.
	if rows[0].Path != "COMMON/helper.f" {
		t.Errorf("rows must be path-sorted, got %s first", rows[0].Path)
	}

	byPath := map[string]models.FileRow{}
	for _, r := range rows {
		byPath[r.Path] = r
	}

	pot := byPath["POT/pot.f90"]
	if pot.Classification != models.ClassificationOwned || pot.PrimaryModule != "pot" {
		t.Errorf("POT row: %+v", pot)
	}
	if pot.ResolvedDeps != 1 || pot.UnresolvedCount != 1 {
		t.Errorf("POT counts: %+v", pot)
	}

	helper := byPath["COMMON/helper.f"]
	if helper.Classification != models.ClassificationSupportDependency || helper.PrimaryModule != "pot" {
		t.Errorf("COMMON row: %+v", helper)
	}

	stray := byPath["MATH/stray.f"]
	if stray.Classification != models.ClassificationOutOfScope || stray.PrimaryModule != "none" {
		t.Errorf("MATH row: %+v", stray)
	}
}

func TestTotalsAndDirBreakdown(t *testing.T) {
	snap, m := classifiedSnapshot(t)
	rows := Rows(snap, m)

	totals := Totals(rows)
	want := models.ClassificationTotals{Total: 3, Owned: 1, Support: 1, OutOfScope: 1}
	if totals != want {
		t.Errorf("totals: got %+v, want %+v", totals, want)
	}

	dirs := DirBreakdown(rows)
	if len(dirs) != 3 || dirs[0].Dir != "COMMON" || dirs[1].Dir != "MATH" || dirs[2].Dir != "POT" {
		t.Errorf("dir breakdown order: %+v", dirs)
	}
	if dirs[0].Support != 1 || dirs[2].Owned != 1 {
		t.Errorf("dir breakdown counts: %+v", dirs)
	}
}

func TestTopSupportDirsOrdering(t *testing.T) {
	rows := []models.FileRow{
		{Dir: "ZED", Classification: models.ClassificationSupportDependency},
		{Dir: "ABC", Classification: models.ClassificationSupportDependency},
		{Dir: "ABC", Classification: models.ClassificationSupportDependency},
		{Dir: "MID", Classification: models.ClassificationSupportDependency},
		{Dir: "OWNED", Classification: models.ClassificationOwned},
	}
	got := TopSupportDirs(rows, 2)
	want := []SupportDir{{Dir: "ABC", Count: 2}, {Dir: "MID", Count: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestTopUnresolvedCountsDistinctFiles(t *testing.T) {
	targets := []models.UnresolvedTarget{
		{Path: "a.f", Kind: "call", Name: "bar"},
		{Path: "b.f", Kind: "call", Name: "bar"},
		{Path: "c.f", Kind: "use", Name: "ghost"},
	}
	got := TopUnresolved(targets, 0)
	if len(got) != 2 {
		t.Fatalf("expected 2 leaders, got %d", len(got))
	}
	if got[0].Name != "bar" || got[0].FileCount != 2 {
		t.Errorf("leader: %+v", got[0])
	}
}

func TestWriteCSV(t *testing.T) {
	snap, m := classifiedSnapshot(t)
	var buf bytes.Buffer
	if err := WriteCSV(&buf, Rows(snap, m)); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines", len(lines))
	}
	if lines[0] != "path,dir,classification,primary_module,resolved_dependency_count,unresolved_target_count" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(buf.String(), "POT/pot.f90,POT,owned,pot,1,1") {
		t.Errorf("missing POT row in:\n%s", buf.String())
	}
}

func TestWriteMarkdownSections(t *testing.T) {
	snap, m := classifiedSnapshot(t)
	rows := Rows(snap, m)
	targets := Unresolved(snap)

	var buf bytes.Buffer
	meta := Meta{
		GeneratedAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		ScanRoot:     "legacy/src",
		ManifestPath: "manifest.json",
		CSVPath:      "gap/file-gap.csv",
	}
	if err := WriteMarkdown(&buf, meta, rows, targets); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{
		"# Migration Gap Report",
		"## Totals",
		"- `owned`: **1**",
		"- `support_dependency`: **1**",
		"- `out_of_scope`: **1**",
		"## Directory Coverage",
		"| POT | 1 | 1 | 0 | 0 |",
		"## Top Support Directories",
		"| COMMON | 1 |",
		"## Unresolved Target Diagnostics",
		"- Files with unresolved targets: **2**",
		"| `call::missing` | 1 |",
		"| `use::nowhere` | 1 |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}
