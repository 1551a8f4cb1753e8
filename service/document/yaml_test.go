package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLSetVersionKeepsCommentsAndOrder(t *testing.T) {
	in := `# chart metadata
name: app
version: 0.0.1 # bumped by release
dependencies:
  - name: redis
    version: 17.0.0
description: demo
`
	doc, err := Parse(FormatYAML, []byte(in), Options{})
	require.NoError(t, err)
	require.NoError(t, doc.SetString([]string{"version"}, "1.2.3"))

	out, err := doc.Encode()
	require.NoError(t, err)
	want := `# chart metadata
name: app
version: 1.2.3 # bumped by release
dependencies:
  - name: redis
    version: 17.0.0
description: demo
`
	assert.Equal(t, want, string(out))
}

func TestYAMLQuotesNumericLookingVersions(t *testing.T) {
	doc, err := Parse(FormatYAML, []byte("name: app\nversion: 0.0.1\n"), Options{})
	require.NoError(t, err)
	require.NoError(t, doc.SetString([]string{"version"}, "2.0"))

	out, err := doc.Encode()
	require.NoError(t, err)
	assert.Equal(t, "name: app\nversion: \"2.0\"\n", string(out))

	again, err := Parse(FormatYAML, out, Options{})
	require.NoError(t, err)
	v, ok := again.Lookup([]string{"version"})
	require.True(t, ok)
	assert.Equal(t, "2.0", v)
}

func TestYAMLLookupTypes(t *testing.T) {
	doc, err := Parse(FormatYAML, []byte("version: 1.5\nname: \"1.5\"\nmeta:\n  tag: x\n"), Options{})
	require.NoError(t, err)

	v, ok := doc.Lookup([]string{"version"})
	require.True(t, ok)
	assert.Equal(t, 1.5, v)

	v, ok = doc.Lookup([]string{"name"})
	require.True(t, ok)
	assert.Equal(t, "1.5", v)

	v, ok = doc.Lookup([]string{"meta", "tag"})
	require.True(t, ok)
	assert.Equal(t, "x", v)

	_, ok = doc.Lookup([]string{"meta", "missing"})
	assert.False(t, ok)
}

func TestYAMLNestedSetAndConflicts(t *testing.T) {
	doc, err := Parse(FormatYAML, []byte("name: app\nlist:\n  - 1\n"), Options{})
	require.NoError(t, err)

	require.NoError(t, doc.SetString([]string{"image", "tag"}, "1.0.0"))
	out, err := doc.Encode()
	require.NoError(t, err)
	assert.Equal(t, "name: app\nlist:\n  - 1\nimage:\n  tag: 1.0.0\n", string(out))

	assert.ErrorIs(t, doc.SetString([]string{"list", "tag"}, "1"), ErrNotMapping)
}

func TestYAMLReplacesNonScalarValue(t *testing.T) {
	doc, err := Parse(FormatYAML, []byte("version:\n  major: 1\nname: app\n"), Options{})
	require.NoError(t, err)
	require.NoError(t, doc.SetString([]string{"version"}, "1.0.0"))

	out, err := doc.Encode()
	require.NoError(t, err)
	assert.Equal(t, "version: 1.0.0\nname: app\n", string(out))
}

func TestYAMLKeepsLaterDocuments(t *testing.T) {
	doc, err := Parse(FormatYAML, []byte("version: 0.0.1\nname: app\n---\nkind: Service\nport: 80\n"), Options{})
	require.NoError(t, err)

	v, ok := doc.Lookup([]string{"version"})
	require.True(t, ok)
	assert.Equal(t, "0.0.1", v)
	_, ok = doc.Lookup([]string{"kind"})
	assert.False(t, ok, "fields of later documents are not addressable")

	require.NoError(t, doc.SetString([]string{"version"}, "1.2.3"))
	out, err := doc.Encode()
	require.NoError(t, err)
	assert.Equal(t, "version: 1.2.3\nname: app\n---\nkind: Service\nport: 80\n", string(out))
}

func TestYAMLFirstDocumentMustBeMapping(t *testing.T) {
	_, err := Parse(FormatYAML, []byte("- a\n---\nversion: 1\n"), Options{})
	assert.ErrorIs(t, err, ErrNotMapping)

	_, err = Parse(FormatYAML, []byte("version: 1\n---\n: [\n"), Options{})
	assert.Error(t, err)
}

func TestYAMLAnchoredVersionLeavesAliasesAlone(t *testing.T) {
	doc, err := Parse(FormatYAML, []byte("version: &v 0.0.1\nimage:\n  tag: *v\n"), Options{})
	require.NoError(t, err)
	require.NoError(t, doc.SetString([]string{"version"}, "1.2.3"))

	v, ok := doc.Lookup([]string{"image", "tag"})
	require.True(t, ok)
	assert.Equal(t, "0.0.1", v)

	out, err := doc.Encode()
	require.NoError(t, err)
	assert.Equal(t, "version: &v 1.2.3\nimage:\n  tag: 0.0.1\n", string(out))
}

func TestYAMLReplacedAnchorKeepsAliasesValid(t *testing.T) {
	doc, err := Parse(FormatYAML, []byte("version: &v\n  major: 1\ncopy: *v\n"), Options{})
	require.NoError(t, err)
	require.NoError(t, doc.SetString([]string{"version"}, "1.0.0"))

	out, err := doc.Encode()
	require.NoError(t, err)
	assert.Equal(t, "version: 1.0.0\ncopy:\n  major: 1\n", string(out))

	_, err = Parse(FormatYAML, out, Options{})
	require.NoError(t, err)
}

func TestYAMLRefusesToWriteThroughSharedMapping(t *testing.T) {
	in := "base: &base\n  version: 0.1.0\nchart: *base\n"
	doc, err := Parse(FormatYAML, []byte(in), Options{})
	require.NoError(t, err)

	assert.ErrorIs(t, doc.SetString([]string{"chart", "version"}, "1.0.0"), ErrSharedValue)
	assert.ErrorIs(t, doc.SetString([]string{"base", "version"}, "1.0.0"), ErrSharedValue)

	out, err := doc.Encode()
	require.NoError(t, err)
	assert.Equal(t, in, string(out))
}
