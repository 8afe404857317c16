package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/fortmig/fortscan/pkg/models"
)

const scanRunColumns = `id, project_id, status, error_message, files_scanned, edges_resolved,
	unresolved_count, owned_count, support_count, out_of_scope_count,
	created_at, started_at, finished_at`

func scanScanRun(row pgxRow) (models.ScanRun, error) {
	var r models.ScanRun
	err := row.Scan(
		&r.ID, &r.ProjectID, &r.Status, &r.ErrorMessage,
		&r.FilesScanned, &r.EdgesResolved, &r.UnresolvedCount,
		&r.OwnedCount, &r.SupportCount, &r.OutOfScopeCount,
		&r.CreatedAt, &r.StartedAt, &r.FinishedAt,
	)
	return r, err
}

// CreateScanRun inserts a queued run for a project.
func (q *Queries) CreateScanRun(ctx context.Context, projectID uuid.UUID) (models.ScanRun, error) {
	row := q.db.QueryRow(ctx,
		`INSERT INTO scan_runs (project_id) VALUES ($1)
		 RETURNING `+scanRunColumns,
		projectID)
	return scanScanRun(row)
}

// GetScanRun looks up a run by primary key.
func (q *Queries) GetScanRun(ctx context.Context, id uuid.UUID) (models.ScanRun, error) {
	row := q.db.QueryRow(ctx,
		`SELECT `+scanRunColumns+` FROM scan_runs WHERE id = $1`, id)
	return scanScanRun(row)
}

// ListScanRunsByProject returns a project's runs, newest first.
func (q *Queries) ListScanRunsByProject(ctx context.Context, projectID uuid.UUID, limit int32) ([]models.ScanRun, error) {
	rows, err := q.db.Query(ctx,
		`SELECT `+scanRunColumns+`
		 FROM scan_runs
		 WHERE project_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		projectID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.ScanRun
	for rows.Next() {
		r, err := scanScanRun(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

// MarkScanRunRunning flips a run to running and stamps started_at.
func (q *Queries) MarkScanRunRunning(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.Exec(ctx,
		`UPDATE scan_runs SET status = 'running', started_at = now() WHERE id = $1`, id)
	return err
}

// MarkScanRunFailed records a failure message and stamps finished_at.
func (q *Queries) MarkScanRunFailed(ctx context.Context, id uuid.UUID, errMsg string) error {
	_, err := q.db.Exec(ctx,
		`UPDATE scan_runs
		 SET status = 'failed', error_message = $2, finished_at = now()
		 WHERE id = $1`,
		id, errMsg)
	return err
}

// ScanRunStats carries the per-run counters written on successful completion.
type ScanRunStats struct {
	FilesScanned    int
	EdgesResolved   int
	UnresolvedCount int
	OwnedCount      int
	SupportCount    int
	OutOfScopeCount int
}

// MarkScanRunCompleted records final counters, flips the run to completed,
// and stamps finished_at.
func (q *Queries) MarkScanRunCompleted(ctx context.Context, id uuid.UUID, stats ScanRunStats) error {
	_, err := q.db.Exec(ctx,
		`UPDATE scan_runs
		 SET status = 'completed',
		     files_scanned = $2,
		     edges_resolved = $3,
		     unresolved_count = $4,
		     owned_count = $5,
		     support_count = $6,
		     out_of_scope_count = $7,
		     finished_at = now()
		 WHERE id = $1`,
		id, stats.FilesScanned, stats.EdgesResolved, stats.UnresolvedCount,
		stats.OwnedCount, stats.SupportCount, stats.OutOfScopeCount)
	return err
}
