package storage

import (
	"context"
	"time"
)

// Service defines persistence and history query operations.
type Service interface {
	SaveSync(ctx context.Context, input SaveSyncInput) (int64, error)
	GetRecentSyncs(target string, limit int) ([]SyncSummary, error)
	GetSync(runUUID string) (*SyncSummary, error)
	GetVersionTimeline(target string) ([]VersionChange, error)
	Vacuum(ctx context.Context) error
	Reindex(ctx context.Context) error
	PurgeOlderThan(ctx context.Context, days int) (int64, error)
	Close() error
}

// SaveSyncInput is the payload saved for a completed sync.
type SaveSyncInput struct {
	RunUUID         string
	Source          string
	Target          string
	SourceField     string
	TargetField     string
	PreviousVersion string
	Version         string
	Changed         bool
	DryRun          bool
	Written         bool
	ContentHash     string
	DurationMS      int64
	CLIVersion      string
	SyncedAt        time.Time
}

// SyncSummary is a stored sync run.
type SyncSummary struct {
	SyncID          int64     `json:"sync_id"`
	RunUUID         string    `json:"run_uuid"`
	Source          string    `json:"source"`
	Target          string    `json:"target"`
	SourceField     string    `json:"source_field"`
	TargetField     string    `json:"target_field"`
	PreviousVersion string    `json:"previous_version"`
	Version         string    `json:"version"`
	Changed         bool      `json:"changed"`
	DryRun          bool      `json:"dry_run"`
	Written         bool      `json:"written"`
	ContentHash     string    `json:"content_hash"`
	DurationMS      int64     `json:"duration_ms"`
	CLIVersion      string    `json:"cli_version"`
	SyncedAt        time.Time `json:"synced_at"`
}

// VersionChange is a written sync that moved a target to a new version.
type VersionChange struct {
	SyncedAt time.Time `json:"synced_at"`
	From     string    `json:"from"`
	To       string    `json:"to"`
	RunUUID  string    `json:"run_uuid"`
}
