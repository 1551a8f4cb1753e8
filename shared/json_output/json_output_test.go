package jsonoutput

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirukguru/version-sync/model"
)

func TestBuildSyncReport(t *testing.T) {
	got := BuildSyncReport(model.SyncReport{
		RunID:       "run-1",
		Source:      "elm.json",
		Target:      "package.json",
		SourceField: "version",
		TargetField: "version",
		Version:     "1.2.3",
		Changed:     true,
		Written:     true,
		Bytes:       40,
		Duration:    2500 * time.Millisecond,
	}, "2026-01-01T00:00:00Z")

	assert.Equal(t, int64(2500), got.DurationMS)
	assert.Equal(t, "2026-01-01T00:00:00Z", got.GeneratedAt)
	assert.Equal(t, "1.2.3", got.Version)
}

func TestOutputSyncJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, OutputSyncJSON(&buf, model.SyncReport{Target: "package.json", Version: "1.2.3"}))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "1.2.3", decoded["version"])
	assert.NotContains(t, decoded, "previous_version")
	assert.NotContains(t, decoded, "content_hash")
	assert.Equal(t, byte('\n'), buf.Bytes()[buf.Len()-1])
}

func TestPrintJSONError(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, PrintJSON(&buf, map[string]any{"bad": make(chan int)}))
}
