package analysis

// ResolveEdges turns every reference into directed file-to-file edges, or an
// unresolved-target tag when the name has no definer anywhere in the tree.
//
// Resolution is deliberately conservative: a name with several definers fans
// out to every candidate (no attempt to pick the "right" one), the referencing
// file itself is never a candidate, and unresolved names add no edges at all,
// so reachability is never inferred through symbols the scan cannot see.
//
// The symbol indexes are frozen by the first call. Returns the total number
// of resolved edges.
func (s *Snapshot) ResolveEdges() int {
	s.frozen = true

	edges := 0
	for _, path := range s.Paths {
		rec := s.Files[path]

		for _, name := range rec.Uses {
			edges += s.resolveRef(rec, "use", name, s.moduleDefs[name])
		}
		for _, name := range rec.Calls {
			edges += s.resolveRef(rec, "call", name, s.routineDefs[name])
		}
	}
	return edges
}

// resolveRef adds edges to every definer other than the referencing file.
// When no such definer exists (including when the file is the sole definer
// of a name it references), the reference is tagged unresolved instead.
func (s *Snapshot) resolveRef(rec *FileRecord, kind, name string, definers map[string]bool) int {
	added := 0
	resolved := false
	for target := range definers {
		if target == rec.Path {
			continue // no self-edges, even when a file defines what it references
		}
		resolved = true
		if !rec.Deps[target] {
			rec.Deps[target] = true
			added++
		}
	}
	if !resolved {
		rec.Unresolved[kind+"::"+name] = true
	}
	return added
}
