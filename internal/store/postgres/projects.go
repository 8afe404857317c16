package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/fortmig/fortscan/pkg/models"
)

const projectColumns = `id, slug, name, scan_root, manifest_path, created_at, updated_at`

func scanProject(row pgxRow) (models.Project, error) {
	var p models.Project
	err := row.Scan(&p.ID, &p.Slug, &p.Name, &p.ScanRoot, &p.ManifestPath, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// CreateProjectParams carries the caller-supplied fields of a new project.
type CreateProjectParams struct {
	Slug         string
	Name         string
	ScanRoot     string
	ManifestPath string
}

// CreateProject inserts a project and returns the stored record.
func (q *Queries) CreateProject(ctx context.Context, arg CreateProjectParams) (models.Project, error) {
	row := q.db.QueryRow(ctx,
		`INSERT INTO projects (slug, name, scan_root, manifest_path)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+projectColumns,
		arg.Slug, arg.Name, arg.ScanRoot, arg.ManifestPath)
	return scanProject(row)
}

// GetProjectByID looks up a project by primary key.
func (q *Queries) GetProjectByID(ctx context.Context, id uuid.UUID) (models.Project, error) {
	row := q.db.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	return scanProject(row)
}

// GetProjectBySlug looks up a project by its unique slug.
func (q *Queries) GetProjectBySlug(ctx context.Context, slug string) (models.Project, error) {
	row := q.db.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE slug = $1`, slug)
	return scanProject(row)
}

// ListProjects returns all registered projects, newest first.
func (q *Queries) ListProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := q.db.Query(ctx,
		`SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// UpdateProjectPaths updates the scan root and manifest path of a project.
func (q *Queries) UpdateProjectPaths(ctx context.Context, id uuid.UUID, scanRoot, manifestPath string) (models.Project, error) {
	row := q.db.QueryRow(ctx,
		`UPDATE projects
		 SET scan_root = $2, manifest_path = $3, updated_at = now()
		 WHERE id = $1
		 RETURNING `+projectColumns,
		id, scanRoot, manifestPath)
	return scanProject(row)
}

// DeleteProject removes a project and, via cascade, its runs and rows.
func (q *Queries) DeleteProject(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return err
}
