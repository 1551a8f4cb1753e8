// Package output provides a service for rendering sync results to the console.
package output

import (
	"os"

	"github.com/thirukguru/version-sync/model"
)

// NewService creates a new output service with the specified format.
// Unknown formats fall back to quiet.
func NewService(format string) Service {
	return &service{
		format:   ParseFormat(format),
		renderer: &realRenderer{},
		out:      os.Stdout,
	}
}

// ParseFormat maps a flag value to a Format.
func ParseFormat(format string) Format {
	switch Format(format) {
	case FormatTable:
		return FormatTable
	case FormatJSON:
		return FormatJSON
	default:
		return FormatQuiet
	}
}

func (s *service) RenderSync(report model.SyncReport) error {
	switch s.format {
	case FormatJSON:
		return s.renderer.OutputSyncJSON(s.out, report)
	case FormatTable:
		s.renderer.DrawSyncTable(s.out, report)
	}
	return nil
}

func (s *service) Format() Format {
	return s.format
}

func (s *service) StopSpinner() {
	s.renderer.StopSpinner()
}
