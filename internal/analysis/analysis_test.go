package analysis

import (
	"reflect"
	"testing"

	"github.com/fortmig/fortscan/internal/parser"
	"github.com/fortmig/fortscan/pkg/models"
)

type fileSpec struct {
	path, dir string
	modules   []string
	routines  []string
	uses      []string
	calls     []string
}

func buildSnapshot(t *testing.T, files []fileSpec) *Snapshot {
	t.Helper()
	snap := NewSnapshot()
	for _, f := range files {
		err := snap.Add(parser.FileResult{
			Path:     f.path,
			Dir:      f.dir,
			Language: "fortran",
			Extraction: parser.Extraction{
				DefinedModules:  f.modules,
				DefinedRoutines: f.routines,
				Uses:            f.uses,
				Calls:           f.calls,
			},
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	return snap
}

func dirMap(pairs map[string][]string) map[string]map[string]bool {
	out := make(map[string]map[string]bool)
	for dir, modules := range pairs {
		out[dir] = make(map[string]bool)
		for _, m := range modules {
			out[dir][m] = true
		}
	}
	return out
}

func TestResolveFanOutOnAmbiguity(t *testing.T) {
	snap := buildSnapshot(t, []fileSpec{
		{path: "A/caller.f", dir: "A", calls: []string{"dup"}},
		{path: "B/one.f", dir: "B", routines: []string{"dup"}},
		{path: "C/two.f", dir: "C", routines: []string{"dup"}},
	})
	snap.ResolveEdges()

	deps := sortedSet(snap.Files["A/caller.f"].Deps)
	want := []string{"B/one.f", "C/two.f"}
	if !reflect.DeepEqual(deps, want) {
		t.Errorf("ambiguous names must fan out to every definer: got %v", deps)
	}
}

func TestResolveNoSelfEdge(t *testing.T) {
	snap := buildSnapshot(t, []fileSpec{
		{path: "A/self.f", dir: "A", routines: []string{"init"}, calls: []string{"init"}},
	})
	snap.ResolveEdges()

	rec := snap.Files["A/self.f"]
	if len(rec.Deps) != 0 {
		t.Errorf("file defining and referencing the same name must not self-edge: %v", rec.Deps)
	}
	// With the self-definition excluded, the reference has no candidates left.
	if !rec.Unresolved["call::init"] {
		t.Errorf("expected unresolved tag call::init, got %v", rec.Unresolved)
	}
}

func TestResolveConservativeUnresolved(t *testing.T) {
	snap := buildSnapshot(t, []fileSpec{
		{path: "F/c.f", dir: "F", uses: []string{"ghostmod"}, calls: []string{"bar", "bar2"}},
	})
	edges := snap.ResolveEdges()

	rec := snap.Files["F/c.f"]
	if edges != 0 || len(rec.Deps) != 0 {
		t.Errorf("unresolved references must create no edges, got %d edges %v", edges, rec.Deps)
	}
	want := map[string]bool{"use::ghostmod": true, "call::bar": true, "call::bar2": true}
	if !reflect.DeepEqual(rec.Unresolved, want) {
		t.Errorf("expected one tag per distinct unresolved name, got %v", rec.Unresolved)
	}
}

func TestAddAfterFreezeRejected(t *testing.T) {
	snap := buildSnapshot(t, []fileSpec{{path: "A/a.f", dir: "A"}})
	snap.ResolveEdges()
	err := snap.Add(parser.FileResult{Path: "B/late.f", Dir: "B"})
	if err == nil {
		t.Fatal("expected error adding a file after the indexes are frozen")
	}
}

func TestPropagateMonotonicAndClosure(t *testing.T) {
	// D/a (owned by ALPHA) -> E/b -> E/c; seeds keep their labels and every
	// edge target of an owned file inherits at least its labels.
	snap := buildSnapshot(t, []fileSpec{
		{path: "D/a.f", dir: "D", calls: []string{"foo"}},
		{path: "E/b.f", dir: "E", routines: []string{"foo"}, calls: []string{"deeper"}},
		{path: "E/c.f", dir: "E", routines: []string{"deeper"}},
	})
	snap.ResolveEdges()
	snap.SeedOrigins(dirMap(map[string][]string{"D": {"ALPHA"}}))

	seededOrigins := map[string]map[string]bool{}
	for path, rec := range snap.Files {
		cp := make(map[string]bool, len(rec.Origins))
		for m := range rec.Origins {
			cp[m] = true
		}
		seededOrigins[path] = cp
	}

	snap.Propagate()
	snap.Classify()

	for path, before := range seededOrigins {
		after := snap.Files[path].Origins
		for m := range before {
			if !after[m] {
				t.Errorf("%s lost origin %s during propagation", path, m)
			}
		}
	}

	for dep := range snap.Files["D/a.f"].Deps {
		if snap.Files[dep].Classification == models.ClassificationOutOfScope {
			t.Errorf("edge target %s of an owned file must not be out of scope", dep)
		}
	}
	if got := snap.Files["E/c.f"].Classification; got != models.ClassificationSupportDependency {
		t.Errorf("transitive dependency must be support_dependency, got %s", got)
	}
}

func TestScenarioOwnedAndSupport(t *testing.T) {
	// Directory D maps to ALPHA; D/a invokes foo, which E/b (E unmapped)
	// defines. The edge D/a -> E/b carries ALPHA onto the helper file.
	snap := buildSnapshot(t, []fileSpec{
		{path: "D/a.f", dir: "D", calls: []string{"foo"}},
		{path: "E/b.f", dir: "E", routines: []string{"foo"}},
	})
	snap.ResolveEdges()
	snap.SeedOrigins(dirMap(map[string][]string{"D": {"ALPHA"}}))
	snap.Propagate()
	snap.Classify()

	display := func(m string) string { return map[string]string{"ALPHA": "alpha"}[m] }

	a := snap.Files["D/a.f"]
	if a.Classification != models.ClassificationOwned || PrimaryLabel(a.Origins, display) != "alpha" {
		t.Errorf("D/a: got %s / %s", a.Classification, PrimaryLabel(a.Origins, display))
	}
	if len(a.Deps) < 1 {
		t.Errorf("D/a: expected at least one resolved edge")
	}

	b := snap.Files["E/b.f"]
	if b.Classification != models.ClassificationSupportDependency {
		t.Errorf("E/b: expected support_dependency, got %s", b.Classification)
	}
	if PrimaryLabel(b.Origins, display) != "alpha" {
		t.Errorf("E/b: expected primary label alpha, got %s", PrimaryLabel(b.Origins, display))
	}
}

func TestScenarioUnresolvedOutOfScope(t *testing.T) {
	snap := buildSnapshot(t, []fileSpec{
		{path: "F/c.f", dir: "F", calls: []string{"bar"}},
	})
	snap.ResolveEdges()
	snap.SeedOrigins(dirMap(map[string][]string{"D": {"ALPHA"}}))
	snap.Propagate()
	snap.Classify()

	rec := snap.Files["F/c.f"]
	if !rec.Unresolved["call::bar"] {
		t.Errorf("expected unresolved tag for bar, got %v", rec.Unresolved)
	}
	if rec.Classification != models.ClassificationOutOfScope {
		t.Errorf("expected out_of_scope, got %s", rec.Classification)
	}
}

func TestScenarioMultipleOrigins(t *testing.T) {
	// G/shared.f is reachable from both ALPHA and BETA seeds.
	snap := buildSnapshot(t, []fileSpec{
		{path: "A/a.f", dir: "A", calls: []string{"shared"}},
		{path: "B/b.f", dir: "B", calls: []string{"shared"}},
		{path: "G/shared.f", dir: "G", routines: []string{"shared"}},
	})
	snap.ResolveEdges()
	snap.SeedOrigins(dirMap(map[string][]string{"A": {"ALPHA"}, "B": {"BETA"}}))
	snap.Propagate()
	snap.Classify()

	rec := snap.Files["G/shared.f"]
	if rec.Classification != models.ClassificationSupportDependency {
		t.Errorf("expected support_dependency, got %s", rec.Classification)
	}
	if got := PrimaryLabel(rec.Origins, func(m string) string { return m }); got != "multiple" {
		t.Errorf("expected primary label multiple, got %s", got)
	}
}

func TestMultiModuleDirectorySeedsAllLabels(t *testing.T) {
	snap := buildSnapshot(t, []fileSpec{
		{path: "FF2X/ff2x.f", dir: "FF2X"},
	})
	snap.ResolveEdges()
	seeds := snap.SeedOrigins(dirMap(map[string][]string{"FF2X": {"DEBYE", "SELF"}}))
	if seeds != 1 {
		t.Fatalf("expected 1 seed, got %d", seeds)
	}
	rec := snap.Files["FF2X/ff2x.f"]
	if !rec.Origins["DEBYE"] || !rec.Origins["SELF"] {
		t.Errorf("seed must start with every mapped label, got %v", rec.Origins)
	}
}

func TestIdempotence(t *testing.T) {
	files := []fileSpec{
		{path: "D/a.f", dir: "D", routines: []string{"foo"}, calls: []string{"baz"}},
		{path: "E/b.f", dir: "E", routines: []string{"baz"}, calls: []string{"foo"}},
		{path: "F/c.f", dir: "F", uses: []string{"nomod"}},
	}
	mapping := dirMap(map[string][]string{"D": {"ALPHA"}})

	run := func() map[string]models.Classification {
		snap := buildSnapshot(t, files)
		snap.ResolveEdges()
		snap.SeedOrigins(mapping)
		snap.Propagate()
		snap.Classify()
		out := make(map[string]models.Classification)
		for path, rec := range snap.Files {
			out[path] = rec.Classification
		}
		return out
	}

	first, second := run(), run()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two runs over identical input diverged: %v vs %v", first, second)
	}
}

func TestCycleReachesFixpoint(t *testing.T) {
	// a -> b -> c -> a: propagation must terminate and label the whole cycle.
	snap := buildSnapshot(t, []fileSpec{
		{path: "D/a.f", dir: "D", routines: []string{"ra"}, calls: []string{"rb"}},
		{path: "E/b.f", dir: "E", routines: []string{"rb"}, calls: []string{"rc"}},
		{path: "E/c.f", dir: "E", routines: []string{"rc"}, calls: []string{"ra"}},
	})
	snap.ResolveEdges()
	snap.SeedOrigins(dirMap(map[string][]string{"D": {"ALPHA"}}))
	snap.Propagate()
	snap.Classify()

	for _, path := range []string{"E/b.f", "E/c.f"} {
		if !snap.Files[path].Origins["ALPHA"] {
			t.Errorf("%s: cycle member missing propagated label", path)
		}
	}
	// The seed stays Owned even though the cycle feeds labels back into it.
	if snap.Files["D/a.f"].Classification != models.ClassificationOwned {
		t.Errorf("seed classification must never be downgraded")
	}
}
