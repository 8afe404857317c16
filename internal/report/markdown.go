package report

import (
	"fmt"
	"io"
	"time"

	"github.com/fortmig/fortscan/pkg/models"
)

const (
	topSupportDirLimit = 15
	topUnresolvedLimit = 20
	markdownTimeLayout = "2006-01-02 15:04:05 MST"
)

// Meta carries run provenance into the rendered report.
type Meta struct {
	GeneratedAt  time.Time
	ScanRoot     string
	ManifestPath string
	CSVPath      string
}

// WriteMarkdown renders the narrative gap report: scope, method, totals,
// directory coverage, top support directories, and unresolved diagnostics.
func WriteMarkdown(w io.Writer, meta Meta, rows []models.FileRow, targets []models.UnresolvedTarget) error {
	totals := Totals(rows)
	dirs := DirBreakdown(rows)
	supportDirs := TopSupportDirs(rows, topSupportDirLimit)
	leaders := TopUnresolved(targets, topUnresolvedLimit)

	unresolvedFiles := make(map[string]bool)
	for _, t := range targets {
		unresolvedFiles[t.Path] = true
	}

	p := func(format string, args ...any) {
		fmt.Fprintf(w, format+"\n", args...)
	}

	p("# Migration Gap Report")
	p("")
	p("Generated: %s", meta.GeneratedAt.Format(markdownTimeLayout))
	p("")
	p("## Scope")
	p("- Source scanned: `%s`", meta.ScanRoot)
	p("- Module contract source: `%s` (`inScopeModules`)", meta.ManifestPath)
	if meta.CSVPath != "" {
		p("- Full file inventory: `%s`", meta.CSVPath)
	}
	p("- Unresolved policy: conservative external (no expansion through unresolved targets)")
	p("")
	p("## Method")
	p("- Parse each source file for `module`, `subroutine`, `function` definitions.")
	p("- Parse `use` and `call` references and resolve to local definitions when possible.")
	p("- Seed graph traversal with owned files from in-scope module directories.")
	p("- Classify files as `owned`, `support_dependency`, or `out_of_scope`.")
	p("")
	p("## Totals")
	p("- Total source files found: **%d**", totals.Total)
	p("- `owned`: **%d**", totals.Owned)
	p("- `support_dependency`: **%d**", totals.Support)
	p("- `out_of_scope`: **%d**", totals.OutOfScope)
	p("")
	p("## Directory Coverage")
	p("| Dir | File Count | owned | support_dependency | out_of_scope |")
	p("| --- | ---: | ---: | ---: | ---: |")
	for _, d := range dirs {
		p("| %s | %d | %d | %d | %d |", d.Dir, d.Total, d.Owned, d.Support, d.OutOfScope)
	}
	p("")
	p("## Top Support Directories")
	if len(supportDirs) > 0 {
		p("| Dir | support_dependency files |")
		p("| --- | ---: |")
		for _, d := range supportDirs {
			p("| %s | %d |", d.Dir, d.Count)
		}
	} else {
		p("No support dependency files were detected outside owned directories.")
	}
	p("")
	p("## Unresolved Target Diagnostics")
	p("- Files with unresolved targets: **%d**", len(unresolvedFiles))
	p("- Total unresolved target entries (unique per file): **%d**", len(targets))
	if len(leaders) > 0 {
		p("- Top unresolved targets by file count:")
		p("")
		p("| Target | Files |")
		p("| --- | ---: |")
		for _, l := range leaders {
			p("| `%s::%s` | %d |", l.Kind, l.Name, l.FileCount)
		}
	} else {
		p("- No unresolved targets detected.")
	}
	p("")
	p("## Notes")
	p("- This is static line-pattern parsing, not a full semantic/AST analysis.")
	p("- `call`/`use` symbols may resolve to multiple files; reachability uses unioned edges.")

	return nil
}
