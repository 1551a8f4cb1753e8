package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/thirukguru/version-sync/service/storage"
	historytable "github.com/thirukguru/version-sync/shared/history_table"
	jsonoutput "github.com/thirukguru/version-sync/shared/json_output"
)

var (
	openStorage           = storage.NewService
	stdout      io.Writer = os.Stdout
)

func runStorageCommand(cmd string, args []string) error {
	switch cmd {
	case "db":
		return runDBCommand(args)
	case "history":
		return runHistoryCommand(args)
	case "dashboard":
		return runDashboardCommand(args)
	default:
		return fmt.Errorf("unsupported command: %s", cmd)
	}
}

func runDBCommand(args []string) error {
	fs := pflag.NewFlagSet("db", pflag.ContinueOnError)
	dbPath := fs.String("db-path", "", "SQLite database path")
	olderThan := fs.Int("older-than", 30, "Purge syncs older than N days")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		return fmt.Errorf("usage: version-sync db <vacuum|reindex|purge> [--db-path ...]")
	}

	store, err := openStorage(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	return dbCommand(context.Background(), stdout, store, rest[0], *olderThan)
}

func dbCommand(ctx context.Context, w io.Writer, store storage.Service, sub string, olderThan int) error {
	switch sub {
	case "vacuum":
		return store.Vacuum(ctx)
	case "reindex":
		return store.Reindex(ctx)
	case "purge":
		count, err := store.PurgeOlderThan(ctx, olderThan)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Purged %d syncs\n", count)
		return nil
	default:
		return fmt.Errorf("unsupported db command: %s", sub)
	}
}

type historyOptions struct {
	target     string
	limit      int
	output     string
	exportJSON string
	exportCSV  string
}

func runHistoryCommand(args []string) error {
	fs := pflag.NewFlagSet("history", pflag.ContinueOnError)
	dbPath := fs.String("db-path", "", "SQLite database path")
	target := fs.String("target", "", "Target record filter")
	limit := fs.Int("limit", 20, "Number of rows to list")
	out := fs.StringP("output", "o", "table", "Output format (table or json)")
	exportJSON := fs.String("export-json", "", "Write listed syncs to a JSON file")
	exportCSV := fs.String("export-csv", "", "Write listed syncs to a CSV file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		return fmt.Errorf("usage: version-sync history <list|show|versions>")
	}

	store, err := openStorage(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	return historyCommand(stdout, store, rest, historyOptions{
		target:     *target,
		limit:      *limit,
		output:     *out,
		exportJSON: *exportJSON,
		exportCSV:  *exportCSV,
	})
}

func historyCommand(w io.Writer, store storage.Service, rest []string, opts historyOptions) error {
	asJSON := opts.output == "json"

	switch rest[0] {
	case "list":
		syncs, err := store.GetRecentSyncs(opts.target, opts.limit)
		if err != nil {
			return err
		}
		if err := exportHistory(syncs, opts.exportJSON, opts.exportCSV); err != nil {
			return err
		}
		if asJSON {
			return jsonoutput.PrintJSON(w, syncs)
		}
		historytable.RenderHistoryTable(w, syncs)
		return nil
	case "show":
		if len(rest) < 2 {
			return fmt.Errorf("usage: version-sync history show <run-uuid>")
		}
		sync, err := store.GetSync(rest[1])
		if err != nil {
			return err
		}
		if asJSON {
			return jsonoutput.PrintJSON(w, sync)
		}
		historytable.RenderSyncDetail(w, sync)
		return nil
	case "versions":
		if opts.target == "" {
			return fmt.Errorf("usage: version-sync history versions --target <record>")
		}
		changes, err := store.GetVersionTimeline(opts.target)
		if err != nil {
			return err
		}
		if asJSON {
			return jsonoutput.PrintJSON(w, changes)
		}
		historytable.RenderTimelineTable(w, opts.target, changes)
		return nil
	default:
		return fmt.Errorf("unsupported history command: %s", rest[0])
	}
}

func exportHistory(syncs []storage.SyncSummary, jsonPath, csvPath string) error {
	if strings.TrimSpace(jsonPath) != "" {
		b, err := json.MarshalIndent(syncs, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(jsonPath, b, 0o644); err != nil {
			return err
		}
	}
	if strings.TrimSpace(csvPath) != "" {
		f, err := os.Create(csvPath)
		if err != nil {
			return err
		}
		w := csv.NewWriter(f)
		_ = w.Write([]string{"run_uuid", "synced_at", "source", "target", "previous_version", "version", "changed", "dry_run", "written", "content_hash"})
		for _, s := range syncs {
			_ = w.Write([]string{
				s.RunUUID,
				s.SyncedAt.UTC().Format(time.RFC3339),
				s.Source,
				s.Target,
				s.PreviousVersion,
				s.Version,
				strconv.FormatBool(s.Changed),
				strconv.FormatBool(s.DryRun),
				strconv.FormatBool(s.Written),
				s.ContentHash,
			})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	}
	return nil
}

func runDashboardCommand(args []string) error {
	fs := pflag.NewFlagSet("dashboard", pflag.ContinueOnError)
	dbPath := fs.String("db-path", "", "SQLite database path")
	port := fs.Int("port", 8080, "Dashboard HTTP port")
	target := fs.String("target", "", "Target record filter")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := openStorage(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	addr := fmt.Sprintf(":%d", *port)
	fmt.Fprintf(stdout, "Dashboard running on http://localhost%s\n", addr)
	return http.ListenAndServe(addr, newDashboardMux(store, *target))
}

var dashboardPage = template.Must(template.New("dashboard").Parse(`<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>version-sync history</title>
  <style>
    body { font-family: sans-serif; margin: 24px; color: #1f2937; }
    table { width: 100%; border-collapse: collapse; }
    th, td { border: 1px solid #e5e7eb; padding: 8px; text-align: left; }
    th { background: #f9fafb; }
  </style>
</head>
<body>
  <h1>version-sync history</h1>
  {{if .Target}}<p>Target: <code>{{.Target}}</code></p>{{end}}
  {{if .Syncs}}
  <table>
    <thead><tr><th>Synced At</th><th>Target</th><th>Previous</th><th>Version</th><th>Changed</th><th>Run</th></tr></thead>
    <tbody>
    {{range .Syncs}}
      <tr><td>{{.SyncedAt.Format "2006-01-02 15:04:05"}}</td><td>{{.Target}}</td><td>{{.PreviousVersion}}</td><td>{{.Version}}</td><td>{{.Changed}}</td><td>{{.RunUUID}}</td></tr>
    {{end}}
    </tbody>
  </table>
  {{else}}<em>No sync history found.</em>{{end}}
</body>
</html>`))

func newDashboardMux(store storage.Service, target string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		syncs, err := store.GetRecentSyncs(target, 50)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = dashboardPage.Execute(w, struct {
			Target string
			Syncs  []storage.SyncSummary
		}{target, syncs})
	})
	mux.HandleFunc("/api/syncs", func(w http.ResponseWriter, r *http.Request) {
		filter := r.URL.Query().Get("target")
		if filter == "" {
			filter = target
		}
		syncs, err := store.GetRecentSyncs(filter, 50)
		writeJSON(w, syncs, err)
	})
	mux.HandleFunc("/api/sync", func(w http.ResponseWriter, r *http.Request) {
		runUUID := r.URL.Query().Get("run")
		if runUUID == "" {
			http.Error(w, "run is required", http.StatusBadRequest)
			return
		}
		sync, err := store.GetSync(runUUID)
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		writeJSON(w, sync, err)
	})
	mux.HandleFunc("/api/versions", func(w http.ResponseWriter, r *http.Request) {
		filter := r.URL.Query().Get("target")
		if filter == "" {
			filter = target
		}
		if filter == "" {
			http.Error(w, "target is required", http.StatusBadRequest)
			return
		}
		changes, err := store.GetVersionTimeline(filter)
		writeJSON(w, changes, err)
	})
	return mux
}

func writeJSON(w http.ResponseWriter, v any, err error) {
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
