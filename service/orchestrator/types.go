package orchestrator

import (
	"context"
	"io"
	"time"

	"github.com/thirukguru/version-sync/model"
	"github.com/thirukguru/version-sync/service/output"
	"github.com/thirukguru/version-sync/service/storage"
	"github.com/thirukguru/version-sync/service/versionsync"
)

type service struct {
	syncService    versionsync.Service
	outputService  output.Service
	storageService storage.Service
	versionInfo    model.VersionInfo

	out          io.Writer
	startSpinner func(message string)
	interactive  func() bool
	newRunID     func() string
	now          func() time.Time
}

// Service is the interface for orchestrator service.
type Service interface {
	Orchestrate(ctx context.Context, flags model.Flags) error
}
