package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fortmig/fortscan/internal/store"
	"github.com/fortmig/fortscan/internal/store/postgres"
	"github.com/fortmig/fortscan/pkg/apierr"
	"github.com/fortmig/fortscan/pkg/models"
)

// FileHandler serves the per-file records and aggregates of a scan run.
type FileHandler struct {
	logger *slog.Logger
	store  *store.Store
}

func NewFileHandler(logger *slog.Logger, s *store.Store) *FileHandler {
	return &FileHandler{logger: logger, store: s}
}

// List returns a run's file records, optionally filtered by classification
// and directory label.
func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	run, ok := getRunOr404(w, r, h.logger, h.store)
	if !ok {
		return
	}

	q := r.URL.Query()
	classification := q.Get("classification")
	if err := validateClassification(classification); err != nil {
		writeAPIError(w, h.logger, err)
		return
	}

	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	rows, err := h.store.ListFileRowsByRun(r.Context(), run.ID, postgres.FileRowFilter{
		Classification: models.Classification(classification),
		Dir:            q.Get("dir"),
	}, int32(limit), int32(offset))
	if err != nil {
		writeAPIError(w, h.logger, apierr.FileListFailed(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"files": rows})
}

// Aggregates returns the classification totals, directory breakdown, and
// support-directory ranking for a run.
func (h *FileHandler) Aggregates(w http.ResponseWriter, r *http.Request) {
	run, ok := getRunOr404(w, r, h.logger, h.store)
	if !ok {
		return
	}

	totals, err := h.store.ClassificationTotals(r.Context(), run.ID)
	if err != nil {
		writeAPIError(w, h.logger, apierr.AggregateFailed(err))
		return
	}

	dirs, err := h.store.DirBreakdown(r.Context(), run.ID)
	if err != nil {
		writeAPIError(w, h.logger, apierr.AggregateFailed(err))
		return
	}

	supportDirs, err := h.store.TopSupportDirs(r.Context(), run.ID, 15)
	if err != nil {
		writeAPIError(w, h.logger, apierr.AggregateFailed(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"totals":       totals,
		"directories":  dirs,
		"support_dirs": supportDirs,
	})
}

// Unresolved returns a run's unresolved targets plus the leaderboard of
// names ranked by distinct referencing files.
func (h *FileHandler) Unresolved(w http.ResponseWriter, r *http.Request) {
	run, ok := getRunOr404(w, r, h.logger, h.store)
	if !ok {
		return
	}

	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	targets, err := h.store.ListUnresolvedByRun(r.Context(), run.ID, int32(limit), int32(offset))
	if err != nil {
		writeAPIError(w, h.logger, apierr.UnresolvedListFailed(err))
		return
	}

	leaders, err := h.store.TopUnresolvedTargets(r.Context(), run.ID, 20)
	if err != nil {
		writeAPIError(w, h.logger, apierr.UnresolvedListFailed(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"targets": targets,
		"top":     leaders,
	})
}
