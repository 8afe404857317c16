package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fortmig/fortscan/internal/ingestion"
	"github.com/fortmig/fortscan/internal/store"
	"github.com/fortmig/fortscan/pkg/apierr"
	"github.com/fortmig/fortscan/pkg/models"
)

type ScanRunHandler struct {
	logger   *slog.Logger
	store    *store.Store
	producer *ingestion.Producer
}

func NewScanRunHandler(logger *slog.Logger, s *store.Store, producer *ingestion.Producer) *ScanRunHandler {
	return &ScanRunHandler{logger: logger, store: s, producer: producer}
}

// getRunOr404 parses and loads a scan run from the runID URL param.
func getRunOr404(w http.ResponseWriter, r *http.Request, logger *slog.Logger, s *store.Store) (models.ScanRun, bool) {
	runID, err := uuid.Parse(chi.URLParam(r, "runID"))
	if err != nil {
		writeAPIError(w, logger, apierr.InvalidRunID())
		return models.ScanRun{}, false
	}

	run, err := s.GetScanRun(r.Context(), runID)
	if err != nil {
		if apierr.IsNotFound(err) {
			writeAPIError(w, logger, apierr.ScanRunNotFound())
		} else {
			writeAPIError(w, logger, apierr.InternalError(err))
		}
		return models.ScanRun{}, false
	}
	return run, true
}

func (h *ScanRunHandler) List(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	project, ok := getProjectOr404(w, r, h.logger, h.store, slug)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	runs, err := h.store.ListScanRunsByProject(r.Context(), project.ID, int32(limit))
	if err != nil {
		writeAPIError(w, h.logger, apierr.ScanRunListFailed(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

// Trigger creates a queued run for the project and enqueues it for a worker.
func (h *ScanRunHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	project, ok := getProjectOr404(w, r, h.logger, h.store, slug)
	if !ok {
		return
	}

	run, err := h.store.CreateScanRun(r.Context(), project.ID)
	if err != nil {
		writeAPIError(w, h.logger, apierr.ScanRunCreateFailed(err))
		return
	}

	if _, err := h.producer.Enqueue(r.Context(), ingestion.ScanMessage{
		RunID:     run.ID,
		ProjectID: project.ID,
	}); err != nil {
		errMsg := "enqueue failed: " + err.Error()
		_ = h.store.MarkScanRunFailed(r.Context(), run.ID, errMsg)
		writeAPIError(w, h.logger, apierr.ScanEnqueueFailed(err))
		return
	}

	h.logger.Info("scan run enqueued",
		slog.String("run_id", run.ID.String()),
		slog.String("project", slug))

	writeJSON(w, http.StatusAccepted, run)
}

func (h *ScanRunHandler) Get(w http.ResponseWriter, r *http.Request) {
	run, ok := getRunOr404(w, r, h.logger, h.store)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, run)
}
