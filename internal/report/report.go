package report

import (
	"sort"
	"strings"

	"github.com/fortmig/fortscan/internal/analysis"
	"github.com/fortmig/fortscan/internal/manifest"
	"github.com/fortmig/fortscan/pkg/models"
)

// Rows flattens a classified snapshot into display-ready records, one per
// scanned file, sorted by path. Rendering consumes rows only; it never touches
// the snapshot's mutable state.
func Rows(snap *analysis.Snapshot, m *manifest.Manifest) []models.FileRow {
	rows := make([]models.FileRow, 0, len(snap.Paths))
	for _, path := range snap.Paths {
		rec := snap.Files[path]
		rows = append(rows, models.FileRow{
			Path:            rec.Path,
			Dir:             rec.Dir,
			Classification:  rec.Classification,
			PrimaryModule:   analysis.PrimaryLabel(rec.Origins, m.DisplayName),
			ResolvedDeps:    len(rec.Deps),
			UnresolvedCount: len(rec.Unresolved),
		})
	}
	return rows
}

// Unresolved flattens the per-file unresolved-target tags, sorted by path
// then tag.
func Unresolved(snap *analysis.Snapshot) []models.UnresolvedTarget {
	var targets []models.UnresolvedTarget
	for _, path := range snap.Paths {
		rec := snap.Files[path]
		tags := make([]string, 0, len(rec.Unresolved))
		for tag := range rec.Unresolved {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		for _, tag := range tags {
			kind, name, _ := strings.Cut(tag, "::")
			targets = append(targets, models.UnresolvedTarget{Path: path, Kind: kind, Name: name})
		}
	}
	return targets
}

// Totals counts rows per classification.
func Totals(rows []models.FileRow) models.ClassificationTotals {
	var t models.ClassificationTotals
	t.Total = len(rows)
	for _, r := range rows {
		switch r.Classification {
		case models.ClassificationOwned:
			t.Owned++
		case models.ClassificationSupportDependency:
			t.Support++
		default:
			t.OutOfScope++
		}
	}
	return t
}

// DirBreakdown aggregates the classification counts per directory, sorted by
// directory name.
func DirBreakdown(rows []models.FileRow) []models.DirBreakdown {
	byDir := make(map[string]*models.DirBreakdown)
	for _, r := range rows {
		b := byDir[r.Dir]
		if b == nil {
			b = &models.DirBreakdown{Dir: r.Dir}
			byDir[r.Dir] = b
		}
		b.Total++
		switch r.Classification {
		case models.ClassificationOwned:
			b.Owned++
		case models.ClassificationSupportDependency:
			b.Support++
		default:
			b.OutOfScope++
		}
	}

	out := make([]models.DirBreakdown, 0, len(byDir))
	for _, b := range byDir {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Dir < out[j].Dir })
	return out
}

// SupportDir is a directory ranked by its support-dependency file count.
type SupportDir struct {
	Dir   string `json:"dir"`
	Count int    `json:"count"`
}

// TopSupportDirs ranks directories by support-dependency file count,
// descending, ties broken by name. Directories with zero support files are
// omitted. limit <= 0 means no limit.
func TopSupportDirs(rows []models.FileRow, limit int) []SupportDir {
	counts := make(map[string]int)
	for _, r := range rows {
		if r.Classification == models.ClassificationSupportDependency {
			counts[r.Dir]++
		}
	}

	out := make([]SupportDir, 0, len(counts))
	for dir, n := range counts {
		out = append(out, SupportDir{Dir: dir, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Dir < out[j].Dir
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// TopUnresolved ranks unresolved-target names by the number of distinct files
// referencing them, descending, ties broken by kind then name. limit <= 0
// means no limit.
func TopUnresolved(targets []models.UnresolvedTarget, limit int) []models.UnresolvedLeader {
	type key struct{ kind, name string }
	counts := make(map[key]int)
	for _, t := range targets {
		counts[key{t.Kind, t.Name}]++ // one tag per distinct name per file
	}

	out := make([]models.UnresolvedLeader, 0, len(counts))
	for k, n := range counts {
		out = append(out, models.UnresolvedLeader{Kind: k.kind, Name: k.name, FileCount: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FileCount != out[j].FileCount {
			return out[i].FileCount > out[j].FileCount
		}
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
