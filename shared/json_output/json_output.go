package jsonoutput

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/thirukguru/version-sync/model"
)

// OutputSyncJSON writes report as an indented JSON document.
func OutputSyncJSON(w io.Writer, report model.SyncReport) error {
	return PrintJSON(w, BuildSyncReport(report, time.Now().UTC().Format(time.RFC3339)))
}

// BuildSyncReport builds the sync JSON report model.
func BuildSyncReport(report model.SyncReport, generatedAt string) model.SyncReportJSON {
	return model.SyncReportJSON{
		RunID:           report.RunID,
		Source:          report.Source,
		Target:          report.Target,
		SourceField:     report.SourceField,
		TargetField:     report.TargetField,
		PreviousVersion: report.PreviousVersion,
		Version:         report.Version,
		Changed:         report.Changed,
		DryRun:          report.DryRun,
		Written:         report.Written,
		Bytes:           report.Bytes,
		ContentHash:     report.ContentHash,
		GeneratedAt:     generatedAt,
		DurationMS:      report.Duration.Milliseconds(),
	}
}

// PrintJSON writes v with two-space indentation followed by a newline.
func PrintJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))
	return err
}
