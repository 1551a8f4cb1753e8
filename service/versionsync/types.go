package versionsync

import (
	"context"
	"strings"

	"github.com/thirukguru/version-sync/service/document"
	"github.com/thirukguru/version-sync/service/location"
)

const (
	DefaultSource = "elm.json"
	DefaultTarget = "package.json"
)

// Request describes one synchronisation. Zero values select the conventional
// elm.json -> package.json copy of the top-level "version" field.
type Request struct {
	Source       string
	Target       string
	SourceField  string
	TargetField  string
	SourceFormat string
	TargetFormat string
	DryRun       bool
	Check        bool
	Atomic       bool
	FinalNewline bool
}

// Result reports what a synchronisation did.
type Result struct {
	PreviousVersion string
	HadVersion      bool
	Version         string
	Changed         bool
	Written         bool
	Content         []byte
}

type service struct {
	locations location.Service
}

// Service is the interface for the version synchronizer.
type Service interface {
	Sync(ctx context.Context, req Request) (Result, error)
}

// WithDefaults fills empty request fields with the conventional values.
func (r Request) WithDefaults() Request {
	if strings.TrimSpace(r.Source) == "" {
		r.Source = DefaultSource
	}
	if strings.TrimSpace(r.Target) == "" {
		r.Target = DefaultTarget
	}
	if strings.TrimSpace(r.SourceField) == "" {
		r.SourceField = document.DefaultField
	}
	if strings.TrimSpace(r.TargetField) == "" {
		r.TargetField = document.DefaultField
	}
	return r
}
