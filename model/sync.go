package model

import "time"

// SyncReport describes a single version synchronization run.
type SyncReport struct {
	RunID           string
	Source          string
	Target          string
	SourceField     string
	TargetField     string
	PreviousVersion string
	Version         string
	Changed         bool
	DryRun          bool
	Written         bool
	Bytes           int
	ContentHash     string
	StartedAt       time.Time
	Duration        time.Duration
}

// SyncReportJSON is the JSON representation of a SyncReport.
type SyncReportJSON struct {
	RunID           string `json:"run_id"`
	Source          string `json:"source"`
	Target          string `json:"target"`
	SourceField     string `json:"source_field"`
	TargetField     string `json:"target_field"`
	PreviousVersion string `json:"previous_version,omitempty"`
	Version         string `json:"version"`
	Changed         bool   `json:"changed"`
	DryRun          bool   `json:"dry_run"`
	Written         bool   `json:"written"`
	Bytes           int    `json:"bytes"`
	ContentHash     string `json:"content_hash,omitempty"`
	GeneratedAt     string `json:"generated_at"`
	DurationMS      int64  `json:"duration_ms"`
}
