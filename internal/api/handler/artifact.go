package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fortmig/fortscan/internal/store"
	minioclient "github.com/fortmig/fortscan/internal/store/minio"
	"github.com/fortmig/fortscan/pkg/apierr"
)

var artifactContentTypes = map[string]string{
	"gap-report.csv": "text/csv",
	"gap-report.md":  "text/markdown",
}

// ArtifactHandler streams stored run artifacts (CSV export, markdown report).
type ArtifactHandler struct {
	logger    *slog.Logger
	store     *store.Store
	artifacts *minioclient.Client
}

func NewArtifactHandler(logger *slog.Logger, s *store.Store, artifacts *minioclient.Client) *ArtifactHandler {
	return &ArtifactHandler{logger: logger, store: s, artifacts: artifacts}
}

func (h *ArtifactHandler) Get(w http.ResponseWriter, r *http.Request) {
	run, ok := getRunOr404(w, r, h.logger, h.store)
	if !ok {
		return
	}

	name := chi.URLParam(r, "name")
	contentType, ok := artifactContentTypes[name]
	if !ok {
		writeAPIError(w, h.logger, apierr.ArtifactNotFound())
		return
	}

	objectName := fmt.Sprintf("runs/%s/%s", run.ID, name)
	obj, err := h.artifacts.DownloadArtifact(r.Context(), objectName)
	if err != nil {
		writeAPIError(w, h.logger, apierr.ArtifactNotFound())
		return
	}
	defer obj.Close()

	w.Header().Set("Content-Type", contentType)
	if _, err := io.Copy(w, obj); err != nil {
		h.logger.Error("stream artifact",
			slog.String("object", objectName),
			slog.String("error", err.Error()))
	}
}
