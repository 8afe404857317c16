package analysis

// SeedOrigins initializes origin labels from the directory mapping: every
// file whose containing directory appears in dirToModules becomes a seed with
// the union of module identifiers mapped from that directory. A directory may
// map to several modules, so seeds can start with multiple labels.
// Returns the number of seeded files.
func (s *Snapshot) SeedOrigins(dirToModules map[string]map[string]bool) int {
	seeds := 0
	for _, path := range s.Paths {
		rec := s.Files[path]
		modules, ok := dirToModules[rec.Dir]
		if !ok || len(modules) == 0 {
			continue
		}
		rec.Seed = true
		for m := range modules {
			rec.Origins[m] = true
		}
		seeds++
	}
	return seeds
}

// Propagate floods origin labels across the dependency graph to fixpoint:
// a multi-source BFS that merges label sets by union instead of marking
// files visited, because a file reachable from several owned modules must
// record every one of them.
//
// Termination: label sets grow monotonically and are bounded by the finite
// set of in-scope module identifiers, so each edge re-propagates at most once
// per label.
func (s *Snapshot) Propagate() {
	queue := make([]string, 0, len(s.Paths))
	queued := make(map[string]bool)
	for _, path := range s.Paths {
		if s.Files[path].Seed {
			queue = append(queue, path)
			queued[path] = true
		}
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		queued[current] = false

		origins := s.Files[current].Origins
		if len(origins) == 0 {
			continue // stale queue entry
		}

		for _, dep := range sortedSet(s.Files[current].Deps) {
			target := s.Files[dep]
			grew := false
			for m := range origins {
				if !target.Origins[m] {
					target.Origins[m] = true
					grew = true
				}
			}
			if grew && !queued[dep] {
				queue = append(queue, dep)
				queued[dep] = true
			}
		}
	}
}
