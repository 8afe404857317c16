package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fortmig/fortscan/internal/graph"
	"github.com/fortmig/fortscan/internal/store"
	"github.com/fortmig/fortscan/pkg/apierr"
)

// NeighborhoodHandler serves dependency-neighborhood queries from Neo4j.
type NeighborhoodHandler struct {
	logger *slog.Logger
	store  *store.Store
	graph  *graph.Client
}

func NewNeighborhoodHandler(logger *slog.Logger, s *store.Store, gc *graph.Client) *NeighborhoodHandler {
	return &NeighborhoodHandler{logger: logger, store: s, graph: gc}
}

// Get returns the dependency surroundings of one file within a run.
// Query params: path (required), direction (dependencies|dependents|both),
// depth (1-10, default 3).
func (h *NeighborhoodHandler) Get(w http.ResponseWriter, r *http.Request) {
	run, ok := getRunOr404(w, r, h.logger, h.store)
	if !ok {
		return
	}

	q := r.URL.Query()
	path := q.Get("path")
	if path == "" {
		writeAPIError(w, h.logger, apierr.InvalidID("file path"))
		return
	}

	depth, _ := strconv.Atoi(q.Get("depth"))
	direction := q.Get("direction")

	result, err := h.graph.Neighborhood(r.Context(), run.ID, path, direction, depth)
	if err != nil {
		writeAPIError(w, h.logger, apierr.GraphQueryFailed(err))
		return
	}

	writeJSON(w, http.StatusOK, result)
}
