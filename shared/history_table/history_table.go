package historytable

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/thirukguru/version-sync/service/storage"
)

const timeLayout = "2006-01-02 15:04:05"

// RenderHistoryTable prints an ASCII table of stored sync runs.
func RenderHistoryTable(w io.Writer, syncs []storage.SyncSummary) {
	if len(syncs) == 0 {
		fmt.Fprintln(w, "No sync history found")
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Run", "Synced At", "Target", "Previous", "Version", "Changed", "Mode"})
	for _, s := range syncs {
		t.AppendRow(table.Row{s.RunUUID, s.SyncedAt.UTC().Format(timeLayout), s.Target, s.PreviousVersion, s.Version, yesNo(s.Changed), mode(s)})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

// RenderSyncDetail prints every stored column of one sync run.
func RenderSyncDetail(w io.Writer, s *storage.SyncSummary) {
	if s == nil {
		fmt.Fprintln(w, "No sync data available")
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRows([]table.Row{
		{"Run", s.RunUUID},
		{"Synced At", s.SyncedAt.UTC().Format(timeLayout)},
		{"Source", s.Source + " (" + s.SourceField + ")"},
		{"Target", s.Target + " (" + s.TargetField + ")"},
		{"Previous", s.PreviousVersion},
		{"Version", s.Version},
		{"Changed", yesNo(s.Changed)},
		{"Mode", mode(*s)},
		{"SHA-256", s.ContentHash},
		{"Duration (ms)", s.DurationMS},
		{"CLI Version", s.CLIVersion},
	})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

// RenderTimelineTable prints the version changes written to a target.
func RenderTimelineTable(w io.Writer, target string, changes []storage.VersionChange) {
	if len(changes) == 0 {
		fmt.Fprintf(w, "No version changes recorded for %s\n", target)
		return
	}
	fmt.Fprintf(w, "\nVersion timeline for %s\n", target)
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Synced At", "From", "To", "Run"})
	for _, c := range changes {
		from := c.From
		if from == "" {
			from = "(none)"
		}
		t.AppendRow(table.Row{c.SyncedAt.UTC().Format(timeLayout), from, c.To, c.RunUUID})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func mode(s storage.SyncSummary) string {
	switch {
	case s.DryRun:
		return "dry-run"
	case s.Written:
		return "write"
	default:
		return "check"
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
