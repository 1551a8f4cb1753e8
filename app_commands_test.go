package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/thirukguru/version-sync/service/storage"
)

type mockStorage struct {
	syncs    []storage.SyncSummary
	timeline []storage.VersionChange
	purged   int
	vacuumed bool
	reindex  bool
	closed   bool
	err      error
}

func (m *mockStorage) SaveSync(context.Context, storage.SaveSyncInput) (int64, error) {
	return 0, nil
}
func (m *mockStorage) GetRecentSyncs(target string, limit int) ([]storage.SyncSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []storage.SyncSummary{}
	for _, s := range m.syncs {
		if target == "" || s.Target == target {
			out = append(out, s)
		}
	}
	return out, nil
}
func (m *mockStorage) GetSync(runUUID string) (*storage.SyncSummary, error) {
	for i := range m.syncs {
		if m.syncs[i].RunUUID == runUUID {
			return &m.syncs[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, runUUID)
}
func (m *mockStorage) GetVersionTimeline(string) ([]storage.VersionChange, error) {
	return m.timeline, nil
}
func (m *mockStorage) Vacuum(context.Context) error  { m.vacuumed = true; return nil }
func (m *mockStorage) Reindex(context.Context) error { m.reindex = true; return nil }
func (m *mockStorage) PurgeOlderThan(_ context.Context, days int) (int64, error) {
	m.purged = days
	return 3, nil
}
func (m *mockStorage) Close() error { m.closed = true; return nil }

func sampleStore() *mockStorage {
	at := time.Date(2026, 2, 10, 8, 30, 0, 0, time.UTC)
	return &mockStorage{
		syncs: []storage.SyncSummary{
			{RunUUID: "run-2", SyncedAt: at, Source: "elm.json", Target: "package.json", PreviousVersion: "1.0.0", Version: "1.1.0", Changed: true, Written: true},
			{RunUUID: "run-1", SyncedAt: at.Add(-time.Hour), Source: "elm.json", Target: "web/package.json", Version: "1.0.0", Changed: true, DryRun: true},
		},
		timeline: []storage.VersionChange{{SyncedAt: at, From: "1.0.0", To: "1.1.0", RunUUID: "run-2"}},
	}
}

func TestDBCommand(t *testing.T) {
	store := &mockStorage{}
	var buf bytes.Buffer

	if err := dbCommand(context.Background(), &buf, store, "vacuum", 30); err != nil || !store.vacuumed {
		t.Fatalf("vacuum failed: %v", err)
	}
	if err := dbCommand(context.Background(), &buf, store, "reindex", 30); err != nil || !store.reindex {
		t.Fatalf("reindex failed: %v", err)
	}
	if err := dbCommand(context.Background(), &buf, store, "purge", 7); err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	if store.purged != 7 || !strings.Contains(buf.String(), "Purged 3 syncs") {
		t.Fatalf("unexpected purge result: days=%d out=%q", store.purged, buf.String())
	}
	if err := dbCommand(context.Background(), &buf, store, "shrink", 30); err == nil {
		t.Fatalf("expected error for unsupported db command")
	}
}

func TestHistoryCommandList(t *testing.T) {
	var buf bytes.Buffer
	if err := historyCommand(&buf, sampleStore(), []string{"list"}, historyOptions{target: "package.json", output: "table"}); err != nil {
		t.Fatalf("history list failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "run-2") || strings.Contains(out, "run-1") {
		t.Fatalf("unexpected filtered history: %s", out)
	}

	buf.Reset()
	if err := historyCommand(&buf, sampleStore(), []string{"list"}, historyOptions{output: "json"}); err != nil {
		t.Fatalf("history list json failed: %v", err)
	}
	var decoded []storage.SyncSummary
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 syncs, got %d", len(decoded))
	}
}

func TestHistoryCommandShowAndVersions(t *testing.T) {
	var buf bytes.Buffer
	if err := historyCommand(&buf, sampleStore(), []string{"show", "run-1"}, historyOptions{}); err != nil {
		t.Fatalf("history show failed: %v", err)
	}
	if !strings.Contains(buf.String(), "web/package.json") {
		t.Fatalf("unexpected show output: %s", buf.String())
	}

	if err := historyCommand(&buf, sampleStore(), []string{"show"}, historyOptions{}); err == nil {
		t.Fatalf("expected usage error for show without uuid")
	}
	if err := historyCommand(&buf, sampleStore(), []string{"show", "nope"}, historyOptions{}); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := historyCommand(&buf, sampleStore(), []string{"versions"}, historyOptions{}); err == nil {
		t.Fatalf("expected usage error for versions without target")
	}
	buf.Reset()
	if err := historyCommand(&buf, sampleStore(), []string{"versions"}, historyOptions{target: "package.json"}); err != nil {
		t.Fatalf("history versions failed: %v", err)
	}
	if !strings.Contains(buf.String(), "1.1.0") {
		t.Fatalf("unexpected timeline output: %s", buf.String())
	}

	if err := historyCommand(&buf, sampleStore(), []string{"finding"}, historyOptions{}); err == nil {
		t.Fatalf("expected error for unsupported history command")
	}
}

func TestHistoryCommandExports(t *testing.T) {
	tmp := t.TempDir()
	jsonPath := filepath.Join(tmp, "history.json")
	csvPath := filepath.Join(tmp, "history.csv")

	var buf bytes.Buffer
	err := historyCommand(&buf, sampleStore(), []string{"list"}, historyOptions{exportJSON: jsonPath, exportCSV: csvPath})
	if err != nil {
		t.Fatalf("history export failed: %v", err)
	}

	jsonBytes, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("failed reading exported json: %v", err)
	}
	var out []storage.SyncSummary
	if err := json.Unmarshal(jsonBytes, &out); err != nil {
		t.Fatalf("invalid json export: %v", err)
	}
	if len(out) != 2 || out[0].RunUUID != "run-2" {
		t.Fatalf("unexpected json export content: %+v", out)
	}

	csvBytes, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("failed reading exported csv: %v", err)
	}
	csv := string(csvBytes)
	if !strings.HasPrefix(csv, "run_uuid,synced_at,source,target") {
		t.Fatalf("csv header missing: %s", csv)
	}
	if !strings.Contains(csv, "run-1,2026-02-10T07:30:00Z") {
		t.Fatalf("csv content missing expected row: %s", csv)
	}
}

func TestExportHistoryReportsWriteErrors(t *testing.T) {
	if err := exportHistory(sampleStore().syncs, "", filepath.Join(t.TempDir(), "missing", "history.csv")); err == nil {
		t.Fatal("expected error creating csv in a missing directory")
	}
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	if err := exportHistory(sampleStore().syncs, "", "/dev/full"); err == nil {
		t.Fatal("expected error when the csv cannot be written")
	}
}

func TestRunHistoryCommandWithSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	store, err := storage.NewService(dbPath)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	if _, err := store.SaveSync(context.Background(), storage.SaveSyncInput{RunUUID: "run-x", Target: "package.json", Version: "3.0.0"}); err != nil {
		t.Fatalf("SaveSync failed: %v", err)
	}
	_ = store.Close()

	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })

	if err := runStorageCommand("history", []string{"list", "--db-path", dbPath, "-o", "json"}); err != nil {
		t.Fatalf("history list failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"run_uuid": "run-x"`) {
		t.Fatalf("unexpected output: %s", buf.String())
	}

	if err := runStorageCommand("db", []string{"--db-path", dbPath}); err == nil {
		t.Fatalf("expected usage error without db subcommand")
	}
	if err := runStorageCommand("history", []string{"--db-path", dbPath}); err == nil {
		t.Fatalf("expected usage error without history subcommand")
	}
	if err := runStorageCommand("nope", nil); err == nil {
		t.Fatalf("expected error for unsupported command")
	}
}

func TestDashboardMux(t *testing.T) {
	mux := newDashboardMux(sampleStore(), "")

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "run-2") {
		t.Fatalf("unexpected dashboard page: %d %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/syncs?target=web/package.json", nil))
	var syncs []storage.SyncSummary
	if err := json.Unmarshal(rr.Body.Bytes(), &syncs); err != nil || len(syncs) != 1 {
		t.Fatalf("unexpected /api/syncs response: %v %s", err, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/sync", nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without run, got %d", rr.Code)
	}
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/sync?run=missing", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown run, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/versions", nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without target, got %d", rr.Code)
	}
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/versions?target=package.json", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"to":"1.1.0"`) {
		t.Fatalf("unexpected /api/versions response: %d %s", rr.Code, rr.Body.String())
	}

	failing := newDashboardMux(&mockStorage{err: errors.New("db locked")}, "")
	rr = httptest.NewRecorder()
	failing.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 when storage fails, got %d", rr.Code)
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	writeJSON(rr, map[string]string{"status": "ok"}, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("unexpected content type: %s", ct)
	}

	rr = httptest.NewRecorder()
	writeJSON(rr, nil, context.DeadlineExceeded)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for error path, got %d", rr.Code)
	}
}
