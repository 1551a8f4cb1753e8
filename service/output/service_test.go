package output

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirukguru/version-sync/model"
)

type fakeRenderer struct {
	tables   int
	jsons    int
	stops    int
	jsonErr  error
	lastSeen model.SyncReport
}

func (f *fakeRenderer) DrawSyncTable(_ io.Writer, report model.SyncReport) {
	f.tables++
	f.lastSeen = report
}

func (f *fakeRenderer) OutputSyncJSON(_ io.Writer, report model.SyncReport) error {
	f.jsons++
	f.lastSeen = report
	return f.jsonErr
}

func (f *fakeRenderer) StopSpinner() { f.stops++ }

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatTable, ParseFormat("table"))
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatQuiet, ParseFormat("quiet"))
	assert.Equal(t, FormatQuiet, ParseFormat(""))
	assert.Equal(t, FormatQuiet, ParseFormat("html"))
}

func TestRenderSyncDispatch(t *testing.T) {
	report := model.SyncReport{Target: "package.json", Version: "1.2.3"}

	for _, tc := range []struct {
		format Format
		tables int
		jsons  int
	}{
		{FormatQuiet, 0, 0},
		{FormatTable, 1, 0},
		{FormatJSON, 0, 1},
	} {
		r := &fakeRenderer{}
		svc := &service{format: tc.format, renderer: r, out: &bytes.Buffer{}}
		require.NoError(t, svc.RenderSync(report))
		assert.Equal(t, tc.tables, r.tables, tc.format)
		assert.Equal(t, tc.jsons, r.jsons, tc.format)
	}
}

func TestRenderSyncJSONError(t *testing.T) {
	r := &fakeRenderer{jsonErr: errors.New("boom")}
	svc := &service{format: FormatJSON, renderer: r, out: &bytes.Buffer{}}
	assert.EqualError(t, svc.RenderSync(model.SyncReport{}), "boom")
}

func TestRealRendererWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	svc := &service{format: FormatJSON, renderer: &realRenderer{}, out: &buf}
	require.NoError(t, svc.RenderSync(model.SyncReport{Target: "package.json", Version: "1.2.3"}))
	assert.Contains(t, buf.String(), `"version": "1.2.3"`)
}

func TestStopSpinnerDelegates(t *testing.T) {
	r := &fakeRenderer{}
	svc := &service{format: FormatTable, renderer: r}
	svc.StopSpinner()
	assert.Equal(t, 1, r.stops)
	assert.Equal(t, FormatTable, svc.Format())
}
