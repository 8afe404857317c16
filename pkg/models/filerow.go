package models

import "github.com/google/uuid"

// FileRow is the per-file output record consumed by rendering and API clients.
type FileRow struct {
	ID              uuid.UUID      `json:"id"`
	RunID           uuid.UUID      `json:"run_id"`
	Path            string         `json:"path"`
	Dir             string         `json:"dir"`
	Classification  Classification `json:"classification"`
	PrimaryModule   string         `json:"primary_module"`
	ResolvedDeps    int            `json:"resolved_dependency_count"`
	UnresolvedCount int            `json:"unresolved_target_count"`
}

// UnresolvedTarget is a reference that matched no definition anywhere in the
// scanned tree. Kind is "use" or "call".
type UnresolvedTarget struct {
	RunID uuid.UUID `json:"run_id"`
	Path  string    `json:"path"`
	Kind  string    `json:"kind"`
	Name  string    `json:"name"`
}

// ClassificationTotals aggregates row counts per classification for a run.
type ClassificationTotals struct {
	Total      int `json:"total"`
	Owned      int `json:"owned"`
	Support    int `json:"support_dependency"`
	OutOfScope int `json:"out_of_scope"`
}

// DirBreakdown is the per-directory classification breakdown for a run.
type DirBreakdown struct {
	Dir        string `json:"dir"`
	Total      int    `json:"total"`
	Owned      int    `json:"owned"`
	Support    int    `json:"support_dependency"`
	OutOfScope int    `json:"out_of_scope"`
}

// UnresolvedLeader is one entry of the unresolved-target leaderboard: a name
// ranked by how many distinct files reference it.
type UnresolvedLeader struct {
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	FileCount int    `json:"file_count"`
}
