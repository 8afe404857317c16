package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/fortmig/fortscan/pkg/models"
)

var csvHeader = []string{
	"path",
	"dir",
	"classification",
	"primary_module",
	"resolved_dependency_count",
	"unresolved_target_count",
}

// WriteCSV renders the per-file inventory, one row per scanned file.
func WriteCSV(w io.Writer, rows []models.FileRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.Path,
			r.Dir,
			string(r.Classification),
			r.PrimaryModule,
			strconv.Itoa(r.ResolvedDeps),
			strconv.Itoa(r.UnresolvedCount),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %s: %w", r.Path, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
