package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fortmig/fortscan/internal/store"
	"github.com/fortmig/fortscan/internal/store/postgres"
	"github.com/fortmig/fortscan/pkg/apierr"
	"github.com/fortmig/fortscan/pkg/models"
)

type ProjectHandler struct {
	logger *slog.Logger
	store  *store.Store
}

func NewProjectHandler(logger *slog.Logger, s *store.Store) *ProjectHandler {
	return &ProjectHandler{logger: logger, store: s}
}

// getProjectOr404 loads a project by slug, writing a 404 response on miss.
func getProjectOr404(w http.ResponseWriter, r *http.Request, logger *slog.Logger, s *store.Store, slug string) (models.Project, bool) {
	project, err := s.GetProjectBySlug(r.Context(), slug)
	if err != nil {
		if apierr.IsNotFound(err) {
			writeAPIError(w, logger, apierr.ProjectNotFound())
		} else {
			writeAPIError(w, logger, apierr.InternalError(err))
		}
		return models.Project{}, false
	}
	return project, true
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.store.ListProjects(r.Context())
	if err != nil {
		writeAPIError(w, h.logger, apierr.ProjectListFailed(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"projects": projects,
		"total":    len(projects),
	})
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	project, ok := getProjectOr404(w, r, h.logger, h.store, slug)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string `json:"name"`
		Slug         string `json:"slug"`
		ScanRoot     string `json:"scan_root"`
		ManifestPath string `json:"manifest_path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, h.logger, apierr.InvalidRequestBody())
		return
	}

	if err := validateSlug(req.Slug); err != nil {
		writeAPIError(w, h.logger, err)
		return
	}
	if err := validateName(req.Name); err != nil {
		writeAPIError(w, h.logger, err)
		return
	}
	if req.ScanRoot == "" {
		writeAPIError(w, h.logger, apierr.ScanRootRequired())
		return
	}
	if req.ManifestPath == "" {
		writeAPIError(w, h.logger, apierr.ManifestPathRequired())
		return
	}

	project, err := h.store.CreateProject(r.Context(), postgres.CreateProjectParams{
		Name:         req.Name,
		Slug:         req.Slug,
		ScanRoot:     req.ScanRoot,
		ManifestPath: req.ManifestPath,
	})
	if err != nil {
		writeAPIError(w, h.logger, apierr.ProjectCreateFailed(err))
		return
	}

	writeJSON(w, http.StatusCreated, project)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var req struct {
		ScanRoot     string `json:"scan_root"`
		ManifestPath string `json:"manifest_path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, h.logger, apierr.InvalidRequestBody())
		return
	}

	current, ok := getProjectOr404(w, r, h.logger, h.store, slug)
	if !ok {
		return
	}

	scanRoot := current.ScanRoot
	if req.ScanRoot != "" {
		scanRoot = req.ScanRoot
	}
	manifestPath := current.ManifestPath
	if req.ManifestPath != "" {
		manifestPath = req.ManifestPath
	}

	project, err := h.store.UpdateProjectPaths(r.Context(), current.ID, scanRoot, manifestPath)
	if err != nil {
		writeAPIError(w, h.logger, apierr.ProjectUpdateFailed(err))
		return
	}

	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	project, ok := getProjectOr404(w, r, h.logger, h.store, slug)
	if !ok {
		return
	}

	if err := h.store.DeleteProject(r.Context(), project.ID); err != nil {
		writeAPIError(w, h.logger, apierr.ProjectDeleteFailed(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
