package graph

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/fortmig/fortscan/pkg/models"
)

const batchSize = 500

// FileKey builds the node key for a file within a run.
func FileKey(runID uuid.UUID, path string) string {
	return runID.String() + "::" + path
}

// Edge is one resolved dependency between two scanned files.
type Edge struct {
	SourcePath string
	TargetPath string
}

// SyncFiles upserts file nodes into Neo4j from the classified rows of a run.
func (c *Client) SyncFiles(ctx context.Context, runID uuid.UUID, rows []models.FileRow) error {
	session := c.Session(ctx)
	defer session.Close(ctx)

	for i := 0; i < len(rows); i += batchSize {
		end := min(i+batchSize, len(rows))
		batch := rows[i:end]

		params := make([]map[string]any, len(batch))
		for j, row := range batch {
			params[j] = map[string]any{
				"key":            FileKey(runID, row.Path),
				"runId":          runID.String(),
				"path":           row.Path,
				"dir":            row.Dir,
				"classification": string(row.Classification),
				"primaryModule":  row.PrimaryModule,
			}
		}

		_, err := neo4j.ExecuteWrite(ctx, session, func(tx neo4j.ManagedTransaction) (any, error) {
			_, err := tx.Run(ctx, UpsertFileNode, map[string]any{"files": params})
			return struct{}{}, err
		})
		if err != nil {
			return fmt.Errorf("sync files batch %d: %w", i/batchSize, err)
		}
	}
	return nil
}

// SyncEdges upserts DEPENDS_ON relationships into Neo4j for a run.
func (c *Client) SyncEdges(ctx context.Context, runID uuid.UUID, edges []Edge) error {
	session := c.Session(ctx)
	defer session.Close(ctx)

	for i := 0; i < len(edges); i += batchSize {
		end := min(i+batchSize, len(edges))
		batch := edges[i:end]

		params := make([]map[string]any, len(batch))
		for j, edge := range batch {
			params[j] = map[string]any{
				"sourceKey": FileKey(runID, edge.SourcePath),
				"targetKey": FileKey(runID, edge.TargetPath),
				"runId":     runID.String(),
			}
		}

		_, err := neo4j.ExecuteWrite(ctx, session, func(tx neo4j.ManagedTransaction) (any, error) {
			_, err := tx.Run(ctx, UpsertDependsOn, map[string]any{"edges": params})
			return struct{}{}, err
		})
		if err != nil {
			return fmt.Errorf("sync edges batch %d: %w", i/batchSize, err)
		}
	}
	return nil
}

// ClearRun removes all graph data for a run.
func (c *Client) ClearRun(ctx context.Context, runID uuid.UUID) error {
	session := c.Session(ctx)
	defer session.Close(ctx)

	_, err := neo4j.ExecuteWrite(ctx, session, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, DeleteRunNodes, map[string]any{
			"runId": runID.String(),
		})
		return struct{}{}, err
	})
	return err
}
