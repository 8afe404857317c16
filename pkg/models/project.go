package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is a registered legacy source tree under migration analysis.
type Project struct {
	ID           uuid.UUID `json:"id"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	ScanRoot     string    `json:"scan_root"`
	ManifestPath string    `json:"manifest_path"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ScanRunStatus is the lifecycle state of a scan run.
type ScanRunStatus string

const (
	ScanRunQueued    ScanRunStatus = "queued"
	ScanRunRunning   ScanRunStatus = "running"
	ScanRunCompleted ScanRunStatus = "completed"
	ScanRunFailed    ScanRunStatus = "failed"
)

// ScanRun records one full analysis pass over a project's source tree.
type ScanRun struct {
	ID              uuid.UUID     `json:"id"`
	ProjectID       uuid.UUID     `json:"project_id"`
	Status          ScanRunStatus `json:"status"`
	ErrorMessage    *string       `json:"error_message,omitempty"`
	FilesScanned    int           `json:"files_scanned"`
	EdgesResolved   int           `json:"edges_resolved"`
	UnresolvedCount int           `json:"unresolved_count"`
	OwnedCount      int           `json:"owned_count"`
	SupportCount    int           `json:"support_count"`
	OutOfScopeCount int           `json:"out_of_scope_count"`
	CreatedAt       time.Time     `json:"created_at"`
	StartedAt       *time.Time    `json:"started_at,omitempty"`
	FinishedAt      *time.Time    `json:"finished_at,omitempty"`
}
