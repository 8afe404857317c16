package ingestion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fortmig/fortscan/internal/store"
	"github.com/fortmig/fortscan/internal/store/postgres"
)

// PersistStage writes the classified rows and unresolved targets to Postgres.
// Previous results for the run are cleared first so retries repopulate cleanly.
type PersistStage struct {
	store  *store.Store
	logger *slog.Logger
}

func NewPersistStage(st *store.Store, logger *slog.Logger) *PersistStage {
	return &PersistStage{store: st, logger: logger}
}

func (s *PersistStage) Name() string { return "persist" }

func (s *PersistStage) Execute(ctx context.Context, rc *ScanRunContext) error {
	err := s.store.WithTx(ctx, func(q *postgres.Queries) error {
		if err := q.DeleteRunResults(ctx, rc.RunID); err != nil {
			return fmt.Errorf("clear previous results: %w", err)
		}
		if _, err := q.InsertFileRows(ctx, rc.RunID, rc.Rows); err != nil {
			return fmt.Errorf("insert file rows: %w", err)
		}
		if _, err := q.InsertUnresolvedTargets(ctx, rc.RunID, rc.Unresolved); err != nil {
			return fmt.Errorf("insert unresolved targets: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("results persisted",
		slog.String("run_id", rc.RunID.String()),
		slog.Int("rows", len(rc.Rows)),
		slog.Int("unresolved", len(rc.Unresolved)))
	return nil
}
