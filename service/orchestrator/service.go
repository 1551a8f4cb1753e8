// Package orchestrator coordinates a version sync run from flags to report.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/thirukguru/version-sync/model"
	"github.com/thirukguru/version-sync/service/output"
	"github.com/thirukguru/version-sync/service/storage"
	"github.com/thirukguru/version-sync/service/versionsync"
	"github.com/thirukguru/version-sync/shared/console"
	"github.com/thirukguru/version-sync/shared/logging"
	"github.com/thirukguru/version-sync/shared/spinner"
)

// NewService creates a new orchestrator service. storageService may be nil
// when history is disabled; syncService may be nil for the version workflow.
func NewService(
	syncService versionsync.Service,
	outputService output.Service,
	storageService storage.Service,
	versionInfo model.VersionInfo,
) Service {
	return &service{
		syncService:    syncService,
		outputService:  outputService,
		storageService: storageService,
		versionInfo:    versionInfo,
		out:            os.Stdout,
		startSpinner:   spinner.StartSpinner,
		interactive:    func() bool { return console.IsTerminal(os.Stdout) },
		newRunID:       uuid.NewString,
		now:            time.Now,
	}
}

func (s *service) Orchestrate(ctx context.Context, flags model.Flags) error {
	if flags.Version {
		return s.versionWorkflow()
	}
	return s.syncWorkflow(ctx, flags)
}

func (s *service) versionWorkflow() error {
	s.outputService.StopSpinner()

	fmt.Fprintf(s.out, "version-sync version %s\n", s.versionInfo.Version)
	fmt.Fprintf(s.out, "commit: %s\n", s.versionInfo.Commit)
	fmt.Fprintf(s.out, "built at: %s\n", s.versionInfo.Date)

	return nil
}

func (s *service) syncWorkflow(ctx context.Context, flags model.Flags) error {
	if s.syncService == nil {
		return errors.New("sync service is not configured")
	}

	runID := s.newRunID()
	ctx = logging.ContextWithRunID(ctx, runID)
	logger := logging.FromContext(ctx)

	req := requestFromFlags(flags)
	startedAt := s.now()

	if s.outputService.Format() == output.FormatTable && s.interactive() {
		s.startSpinner(fmt.Sprintf("Syncing version from %s to %s...", req.Source, req.Target))
	}
	result, syncErr := s.syncService.Sync(ctx, req)
	s.outputService.StopSpinner()

	if syncErr != nil && !errors.Is(syncErr, versionsync.ErrOutOfSync) {
		return syncErr
	}

	report := buildReport(runID, req, result, startedAt, s.now().Sub(startedAt))
	logger.Debug().
		Bool("changed", report.Changed).
		Bool("written", report.Written).
		Dur("duration", report.Duration).
		Msg("sync finished")

	if err := s.outputService.RenderSync(report); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if err := s.persistSyncIfEnabled(ctx, flags, report); err != nil {
		return fmt.Errorf("failed to persist sync: %w", err)
	}

	return syncErr
}

func requestFromFlags(flags model.Flags) versionsync.Request {
	return versionsync.Request{
		Source:       flags.Source,
		Target:       flags.Target,
		SourceField:  flags.SourceField,
		TargetField:  flags.TargetField,
		SourceFormat: flags.SourceFormat,
		TargetFormat: flags.TargetFormat,
		DryRun:       flags.DryRun,
		Check:        flags.Check,
		Atomic:       flags.Atomic,
		FinalNewline: flags.FinalNewline,
	}.WithDefaults()
}

func buildReport(runID string, req versionsync.Request, result versionsync.Result, startedAt time.Time, took time.Duration) model.SyncReport {
	report := model.SyncReport{
		RunID:           runID,
		Source:          req.Source,
		Target:          req.Target,
		SourceField:     req.SourceField,
		TargetField:     req.TargetField,
		PreviousVersion: result.PreviousVersion,
		Version:         result.Version,
		Changed:         result.Changed,
		DryRun:          req.DryRun,
		Written:         result.Written,
		Bytes:           len(result.Content),
		StartedAt:       startedAt,
		Duration:        took,
	}
	if len(result.Content) > 0 {
		report.ContentHash = contentHash(result.Content)
	}
	return report
}
