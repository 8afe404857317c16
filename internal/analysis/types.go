package analysis

import (
	"sort"

	"github.com/fortmig/fortscan/pkg/models"
)

// FileRecord carries one scanned file through every stage of the analysis.
// Created once per file and mutated in place; never destroyed within a run.
type FileRecord struct {
	Path string
	Dir  string // upper-cased containing-directory name

	DefinedModules  []string
	DefinedRoutines []string
	Uses            []string
	Calls           []string

	// Unresolved holds kind-tagged reference names ("use::x", "call::y") that
	// matched no definition anywhere in the tree. Diagnostic output, not an
	// error condition.
	Unresolved map[string]bool

	// Deps is the set of resolved outgoing dependency edges (target paths).
	Deps map[string]bool

	// Origins is the set of in-scope module identifiers this file is
	// reachable from. Grows monotonically during propagation.
	Origins map[string]bool

	// Seed is true when the file's directory is directly mapped to an
	// in-scope module. Seeds classify Owned regardless of propagation.
	Seed bool

	Classification models.Classification
}

// Snapshot is the explicit analysis context threaded through the pipeline:
// file records, the two global symbol indexes, and the dependency adjacency.
// There is no process-wide state; each run builds its own snapshot.
type Snapshot struct {
	Files map[string]*FileRecord
	Paths []string // sorted file paths, fixed iteration order

	// name (lower-cased) -> set of defining file paths. Append-only while
	// records are added, frozen once resolution begins.
	moduleDefs  map[string]map[string]bool
	routineDefs map[string]map[string]bool
	frozen      bool
}

func NewSnapshot() *Snapshot {
	return &Snapshot{
		Files:       make(map[string]*FileRecord),
		moduleDefs:  make(map[string]map[string]bool),
		routineDefs: make(map[string]map[string]bool),
	}
}

func sortedSet(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
