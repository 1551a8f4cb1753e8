package orchestrator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/thirukguru/version-sync/model"
	"github.com/thirukguru/version-sync/service/storage"
)

func contentHash(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

func (s *service) persistSyncIfEnabled(ctx context.Context, flags model.Flags, report model.SyncReport) error {
	if s.storageService == nil || !flags.Store {
		return nil
	}

	_, err := s.storageService.SaveSync(ctx, storage.SaveSyncInput{
		RunUUID:         report.RunID,
		Source:          report.Source,
		Target:          report.Target,
		SourceField:     report.SourceField,
		TargetField:     report.TargetField,
		PreviousVersion: report.PreviousVersion,
		Version:         report.Version,
		Changed:         report.Changed,
		DryRun:          report.DryRun,
		Written:         report.Written,
		ContentHash:     report.ContentHash,
		DurationMS:      report.Duration.Milliseconds(),
		CLIVersion:      s.versionInfo.Version,
		SyncedAt:        report.StartedAt,
	})
	return err
}
