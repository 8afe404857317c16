package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fortmig/fortscan/pkg/models"
)

// InsertFileRows bulk-loads the per-file records of a run via COPY.
func (q *Queries) InsertFileRows(ctx context.Context, runID uuid.UUID, rows []models.FileRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	return q.db.CopyFrom(ctx,
		pgx.Identifier{"file_records"},
		[]string{"run_id", "path", "dir", "classification", "primary_module", "resolved_deps", "unresolved_count"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			r := rows[i]
			return []any{runID, r.Path, r.Dir, string(r.Classification), r.PrimaryModule, r.ResolvedDeps, r.UnresolvedCount}, nil
		}))
}

// InsertUnresolvedTargets bulk-loads the unresolved references of a run via COPY.
func (q *Queries) InsertUnresolvedTargets(ctx context.Context, runID uuid.UUID, targets []models.UnresolvedTarget) (int64, error) {
	if len(targets) == 0 {
		return 0, nil
	}
	return q.db.CopyFrom(ctx,
		pgx.Identifier{"unresolved_targets"},
		[]string{"run_id", "path", "kind", "name"},
		pgx.CopyFromSlice(len(targets), func(i int) ([]any, error) {
			t := targets[i]
			return []any{runID, t.Path, t.Kind, t.Name}, nil
		}))
}

// DeleteRunResults clears a run's file records and unresolved targets so a
// retried run can repopulate them.
func (q *Queries) DeleteRunResults(ctx context.Context, runID uuid.UUID) error {
	if _, err := q.db.Exec(ctx, `DELETE FROM unresolved_targets WHERE run_id = $1`, runID); err != nil {
		return err
	}
	_, err := q.db.Exec(ctx, `DELETE FROM file_records WHERE run_id = $1`, runID)
	return err
}

// FileRowFilter narrows ListFileRowsByRun. Empty fields match everything.
type FileRowFilter struct {
	Classification models.Classification
	Dir            string
}

// ListFileRowsByRun returns a run's file records ordered by path, optionally
// filtered by classification and directory label.
func (q *Queries) ListFileRowsByRun(ctx context.Context, runID uuid.UUID, filter FileRowFilter, limit, offset int32) ([]models.FileRow, error) {
	rows, err := q.db.Query(ctx,
		`SELECT id, run_id, path, dir, classification, primary_module, resolved_deps, unresolved_count
		 FROM file_records
		 WHERE run_id = $1
		   AND ($2 = '' OR classification = $2)
		   AND ($3 = '' OR dir = $3)
		 ORDER BY path
		 LIMIT $4 OFFSET $5`,
		runID, string(filter.Classification), filter.Dir, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.FileRow
	for rows.Next() {
		var r models.FileRow
		if err := rows.Scan(&r.ID, &r.RunID, &r.Path, &r.Dir, &r.Classification,
			&r.PrimaryModule, &r.ResolvedDeps, &r.UnresolvedCount); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

// ClassificationTotals aggregates a run's rows per classification.
func (q *Queries) ClassificationTotals(ctx context.Context, runID uuid.UUID) (models.ClassificationTotals, error) {
	var t models.ClassificationTotals
	err := q.db.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE classification = 'owned'),
		        COUNT(*) FILTER (WHERE classification = 'support_dependency'),
		        COUNT(*) FILTER (WHERE classification = 'out_of_scope')
		 FROM file_records
		 WHERE run_id = $1`,
		runID).Scan(&t.Total, &t.Owned, &t.Support, &t.OutOfScope)
	return t, err
}

// DirBreakdown returns per-directory classification counts for a run,
// ordered by directory label.
func (q *Queries) DirBreakdown(ctx context.Context, runID uuid.UUID) ([]models.DirBreakdown, error) {
	rows, err := q.db.Query(ctx,
		`SELECT dir,
		        COUNT(*),
		        COUNT(*) FILTER (WHERE classification = 'owned'),
		        COUNT(*) FILTER (WHERE classification = 'support_dependency'),
		        COUNT(*) FILTER (WHERE classification = 'out_of_scope')
		 FROM file_records
		 WHERE run_id = $1
		 GROUP BY dir
		 ORDER BY dir`,
		runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.DirBreakdown
	for rows.Next() {
		var b models.DirBreakdown
		if err := rows.Scan(&b.Dir, &b.Total, &b.Owned, &b.Support, &b.OutOfScope); err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

// SupportDirCount is one entry of the support-dependency directory ranking.
type SupportDirCount struct {
	Dir   string `json:"dir"`
	Count int    `json:"count"`
}

// TopSupportDirs ranks directories by how many support-dependency files they
// hold, highest first with the directory label as tiebreaker.
func (q *Queries) TopSupportDirs(ctx context.Context, runID uuid.UUID, limit int32) ([]SupportDirCount, error) {
	rows, err := q.db.Query(ctx,
		`SELECT dir, COUNT(*) AS n
		 FROM file_records
		 WHERE run_id = $1 AND classification = 'support_dependency'
		 GROUP BY dir
		 ORDER BY n DESC, dir
		 LIMIT $2`,
		runID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []SupportDirCount
	for rows.Next() {
		var c SupportDirCount
		if err := rows.Scan(&c.Dir, &c.Count); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// TopUnresolvedTargets ranks unresolved names by how many distinct files
// reference them, highest first with kind then name as tiebreakers.
func (q *Queries) TopUnresolvedTargets(ctx context.Context, runID uuid.UUID, limit int32) ([]models.UnresolvedLeader, error) {
	rows, err := q.db.Query(ctx,
		`SELECT kind, name, COUNT(DISTINCT path) AS n
		 FROM unresolved_targets
		 WHERE run_id = $1
		 GROUP BY kind, name
		 ORDER BY n DESC, kind, name
		 LIMIT $2`,
		runID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.UnresolvedLeader
	for rows.Next() {
		var l models.UnresolvedLeader
		if err := rows.Scan(&l.Kind, &l.Name, &l.FileCount); err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	return items, rows.Err()
}

// ListUnresolvedByRun returns a run's unresolved targets ordered by path,
// kind, name.
func (q *Queries) ListUnresolvedByRun(ctx context.Context, runID uuid.UUID, limit, offset int32) ([]models.UnresolvedTarget, error) {
	rows, err := q.db.Query(ctx,
		`SELECT run_id, path, kind, name
		 FROM unresolved_targets
		 WHERE run_id = $1
		 ORDER BY path, kind, name
		 LIMIT $2 OFFSET $3`,
		runID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.UnresolvedTarget
	for rows.Next() {
		var t models.UnresolvedTarget
		if err := rows.Scan(&t.RunID, &t.Path, &t.Kind, &t.Name); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}
