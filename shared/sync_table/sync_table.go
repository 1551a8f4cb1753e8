// Package synctable renders a sync report as a table.
package synctable

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/thirukguru/version-sync/model"
)

// DrawSyncTable writes a summary line and a details table for report.
func DrawSyncTable(w io.Writer, report model.SyncReport) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "🔄 Version Sync   %s\n", statusLine(report))

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRow(table.Row{"Source", fmt.Sprintf("%s (%s)", report.Source, report.SourceField)})
	t.AppendRow(table.Row{"Target", fmt.Sprintf("%s (%s)", report.Target, report.TargetField)})
	t.AppendRow(table.Row{"Previous", orNone(report.PreviousVersion)})
	t.AppendRow(table.Row{"Version", report.Version})
	t.AppendRow(table.Row{"Bytes", report.Bytes})
	if report.ContentHash != "" {
		t.AppendRow(table.Row{"SHA-256", report.ContentHash})
	}
	t.AppendRow(table.Row{"Duration", report.Duration.Round(time.Microsecond).String()})
	if report.RunID != "" {
		t.AppendRow(table.Row{"Run", report.RunID})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func statusLine(report model.SyncReport) string {
	switch {
	case report.DryRun && report.Changed:
		return text.FgYellow.Sprintf("🟡 would update %s -> %s", orNone(report.PreviousVersion), report.Version)
	case report.DryRun:
		return text.FgGreen.Sprint("🟢 already in sync (dry run)")
	case report.Changed:
		return text.FgCyan.Sprintf("🔵 updated %s -> %s", orNone(report.PreviousVersion), report.Version)
	default:
		return text.FgGreen.Sprint("🟢 already in sync")
	}
}

func orNone(v string) string {
	if v == "" {
		return "(none)"
	}
	return v
}
