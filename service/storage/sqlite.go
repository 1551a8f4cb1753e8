// Package storage keeps a local SQLite history of sync runs.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const (
	defaultDBPath    = "~/.version-sync/history.db"
	sqliteTimeLayout = "2006-01-02 15:04:05"
	syncColumns      = `sync_id, run_uuid, source, target, source_field, target_field,
		COALESCE(previous_version, ''), version, changed, dry_run, written,
		COALESCE(content_hash, ''), COALESCE(duration_ms, 0), COALESCE(cli_version, ''), synced_at`
)

// ErrNotFound is returned when a sync run does not exist.
var ErrNotFound = errors.New("sync run not found")

// NewService creates a SQLite-backed storage service.
func NewService(dbPath string) (Service, error) {
	resolved, err := resolvePath(dbPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schemaV1); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &service{db: db, dbPath: resolved}, nil
}

type service struct {
	db     *sql.DB
	dbPath string
}

func resolvePath(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		p = defaultDBPath
	}
	if strings.HasPrefix(p, "~/") || p == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home dir: %w", err)
		}
		if p == "~" {
			p = home
		} else {
			p = filepath.Join(home, p[2:])
		}
	}
	return filepath.Clean(p), nil
}

func (s *service) SaveSync(ctx context.Context, input SaveSyncInput) (int64, error) {
	if input.Target == "" || input.Version == "" {
		return 0, errors.New("target and version are required")
	}
	if input.RunUUID == "" {
		input.RunUUID = uuid.NewString()
	}
	if input.SyncedAt.IsZero() {
		input.SyncedAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO syncs (
			run_uuid, source, target, source_field, target_field, previous_version,
			version, changed, dry_run, written, content_hash, duration_ms, cli_version, synced_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, input.RunUUID, input.Source, input.Target, input.SourceField, input.TargetField, input.PreviousVersion,
		input.Version, input.Changed, input.DryRun, input.Written, input.ContentHash, input.DurationMS,
		input.CLIVersion, input.SyncedAt.UTC().Format(sqliteTimeLayout))
	if err != nil {
		return 0, fmt.Errorf("failed to save sync: %w", err)
	}
	return res.LastInsertId()
}

func (s *service) GetRecentSyncs(target string, limit int) ([]SyncSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	query := "SELECT " + syncColumns + " FROM syncs"
	args := []any{}
	if target != "" {
		query += " WHERE target=?"
		args = append(args, target)
	}
	query += " ORDER BY synced_at DESC, sync_id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	syncs := []SyncSummary{}
	for rows.Next() {
		sum, err := scanSync(rows)
		if err != nil {
			return nil, err
		}
		syncs = append(syncs, sum)
	}
	return syncs, rows.Err()
}

func (s *service) GetSync(runUUID string) (*SyncSummary, error) {
	row := s.db.QueryRow("SELECT "+syncColumns+" FROM syncs WHERE run_uuid=?", runUUID)
	sum, err := scanSync(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, runUUID)
	}
	if err != nil {
		return nil, err
	}
	return &sum, nil
}

func (s *service) GetVersionTimeline(target string) ([]VersionChange, error) {
	rows, err := s.db.Query(`
		SELECT synced_at, COALESCE(previous_version, ''), version, run_uuid
		FROM syncs
		WHERE target=? AND changed=1 AND written=1
		ORDER BY synced_at ASC, sync_id ASC
	`, target)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []VersionChange{}
	for rows.Next() {
		var c VersionChange
		if err := rows.Scan(&c.SyncedAt, &c.From, &c.To, &c.RunUUID); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSync(row rowScanner) (SyncSummary, error) {
	var sum SyncSummary
	err := row.Scan(&sum.SyncID, &sum.RunUUID, &sum.Source, &sum.Target, &sum.SourceField, &sum.TargetField,
		&sum.PreviousVersion, &sum.Version, &sum.Changed, &sum.DryRun, &sum.Written,
		&sum.ContentHash, &sum.DurationMS, &sum.CLIVersion, &sum.SyncedAt)
	return sum, err
}

func (s *service) Vacuum(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "VACUUM")
	return err
}

func (s *service) Reindex(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "REINDEX")
	return err
}

func (s *service) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, errors.New("days must be > 0")
	}
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM syncs WHERE synced_at < DATETIME('now', ?)
	`, fmt.Sprintf("-%d day", days))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *service) Close() error {
	return s.db.Close()
}
