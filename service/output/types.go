package output

import (
	"io"

	"github.com/thirukguru/version-sync/model"
	jsonoutput "github.com/thirukguru/version-sync/shared/json_output"
	"github.com/thirukguru/version-sync/shared/spinner"
	synctable "github.com/thirukguru/version-sync/shared/sync_table"
)

// Format represents the output format type
type Format string

const (
	FormatQuiet Format = "quiet"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// Renderer defines the interface for drawing reports
type Renderer interface {
	DrawSyncTable(w io.Writer, report model.SyncReport)
	OutputSyncJSON(w io.Writer, report model.SyncReport) error
	StopSpinner()
}

type realRenderer struct{}

func (r *realRenderer) DrawSyncTable(w io.Writer, report model.SyncReport) {
	synctable.DrawSyncTable(w, report)
}

func (r *realRenderer) OutputSyncJSON(w io.Writer, report model.SyncReport) error {
	return jsonoutput.OutputSyncJSON(w, report)
}

func (r *realRenderer) StopSpinner() {
	spinner.StopSpinner()
}

// service is the internal implementation
type service struct {
	format   Format
	renderer Renderer
	out      io.Writer
}

// Service defines the interface for output operations
type Service interface {
	RenderSync(report model.SyncReport) error
	Format() Format
	StopSpinner()
}
