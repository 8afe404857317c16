package analysis

import (
	"fmt"
	"sort"

	"github.com/fortmig/fortscan/internal/parser"
	"github.com/fortmig/fortscan/pkg/models"
)

// Add registers one file's extraction with the snapshot and indexes its
// definitions in the global symbol tables. Multiple files may define the same
// name; every definer is retained as a valid resolution candidate.
func (s *Snapshot) Add(result parser.FileResult) error {
	if s.frozen {
		return fmt.Errorf("snapshot frozen: cannot add %s after resolution began", result.Path)
	}
	if _, ok := s.Files[result.Path]; ok {
		return fmt.Errorf("duplicate file path: %s", result.Path)
	}

	rec := &FileRecord{
		Path:            result.Path,
		Dir:             result.Dir,
		DefinedModules:  result.Extraction.DefinedModules,
		DefinedRoutines: result.Extraction.DefinedRoutines,
		Uses:            result.Extraction.Uses,
		Calls:           result.Extraction.Calls,
		Unresolved:      make(map[string]bool),
		Deps:            make(map[string]bool),
		Origins:         make(map[string]bool),
		Classification:  models.ClassificationOutOfScope,
	}
	s.Files[result.Path] = rec
	s.Paths = append(s.Paths, result.Path)
	sort.Strings(s.Paths)

	for _, name := range rec.DefinedModules {
		if s.moduleDefs[name] == nil {
			s.moduleDefs[name] = make(map[string]bool)
		}
		s.moduleDefs[name][rec.Path] = true
	}
	for _, name := range rec.DefinedRoutines {
		if s.routineDefs[name] == nil {
			s.routineDefs[name] = make(map[string]bool)
		}
		s.routineDefs[name][rec.Path] = true
	}
	return nil
}

// ModuleDefiners returns the sorted paths defining a module name, or nil.
func (s *Snapshot) ModuleDefiners(name string) []string {
	if set, ok := s.moduleDefs[name]; ok {
		return sortedSet(set)
	}
	return nil
}

// RoutineDefiners returns the sorted paths defining a routine name, or nil.
func (s *Snapshot) RoutineDefiners(name string) []string {
	if set, ok := s.routineDefs[name]; ok {
		return sortedSet(set)
	}
	return nil
}
