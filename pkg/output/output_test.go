package output_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rqlerrors "github.com/deontologician/rql/pkg/errors"
	"github.com/deontologician/rql/pkg/output"
	"github.com/deontologician/rql/pkg/query"
)

func display(t *testing.T, res query.Result, mode output.RenderMode, keys []byte) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	pager := &output.Pager{
		Out:      &buf,
		Keys:     &scriptedKeys{keys: keys},
		PageSize: 2,
	}
	err := output.Display(res, newRenderer(t, mode), pager, &buf, testTrace)
	return buf.String(), err
}

func TestDisplayScalarPretty(t *testing.T) {
	got, err := display(t, query.Result{Atom: float64(16)}, output.ModePrettyPlain, nil)
	require.NoError(t, err)

	// Direct print with trailer: no counts, no prompt.
	want := "16\nRan:\n" + testTrace + "\n"
	assert.Equal(t, want, got)
}

func TestDisplayScalarCompact(t *testing.T) {
	got, err := display(t, query.Result{Atom: float64(16)}, output.ModeCompact, nil)
	require.NoError(t, err)
	assert.Equal(t, "16\n", got, "no trailer in piped mode")
}

func TestDisplayDocumentPretty(t *testing.T) {
	doc := map[string]interface{}{"name": "ada"}
	got, err := display(t, query.Result{Atom: doc}, output.ModePrettyPlain, nil)
	require.NoError(t, err)

	assert.Contains(t, got, "\"name\": \"ada\"")
	assert.Contains(t, got, "Ran:")
	assert.NotContains(t, got, "Hit any key")
}

func TestDisplaySmallPrimitiveArrayPrintsDirectly(t *testing.T) {
	// Page size is 2 in these tests, so only a 1-element array counts
	// as small.
	got, err := display(t, query.Result{Atom: []interface{}{1}}, output.ModePrettyPlain, nil)
	require.NoError(t, err)

	assert.NotContains(t, got, "Hit any key")
	assert.Contains(t, got, "Ran:")
}

func TestDisplayLargeArrayPages(t *testing.T) {
	docs := []interface{}{1, 2, 3, 4, 5}
	got, err := display(t, query.Result{Atom: docs}, output.ModePrettyPlain, []byte{' ', ' '})
	require.NoError(t, err)

	assert.Contains(t, got, "Hit any key")
	assert.Contains(t, got, "Total docs: 5")
}

func TestDisplayFirstErrorDocument(t *testing.T) {
	doc := map[string]interface{}{"first_error": "Table `users` does not exist"}
	got, err := display(t, query.Result{Atom: doc}, output.ModePrettyPlain, nil)

	require.Error(t, err)
	assert.True(t, rqlerrors.IsErrorCode(err, rqlerrors.ErrQueryFailed))
	assert.Contains(t, err.Error(), "does not exist")
	assert.Empty(t, got, "an embedded error renders nothing")
}

func TestDisplayFirstErrorCollapsesTabs(t *testing.T) {
	doc := map[string]interface{}{
		"first_error": "Table `users` does not exist in:\n\tr.table('users')",
	}
	_, err := display(t, query.Result{Atom: doc}, output.ModePrettyPlain, nil)

	require.Error(t, err)
	assert.NotContains(t, err.Error(), "\t")
	assert.Contains(t, err.Error(), "\n  r.table('users')")
}

func TestDisplayFirstErrorIgnoredWhenPiped(t *testing.T) {
	// Piped modes write the document as data; consumers want the raw
	// response, not an interpretation of it.
	doc := map[string]interface{}{"first_error": "boom"}
	got, err := display(t, query.Result{Atom: doc}, output.ModeCompact, nil)
	require.NoError(t, err)
	assert.Equal(t, "{\"first_error\":\"boom\"}\n", got)
}

func TestDisplayCursorCompact(t *testing.T) {
	cur := &fakeCursor{docs: []interface{}{1, 2, 3}}
	got, err := display(t, query.Result{Cursor: cur}, output.ModeCompact, nil)
	require.NoError(t, err)

	assert.Equal(t, "1\n2\n3\n", got)
	assert.True(t, cur.closed, "display closes the cursor")
}

func TestDisplayCursorPaged(t *testing.T) {
	cur := &fakeCursor{docs: []interface{}{1, 2, 3}}
	got, err := display(t, query.Result{Cursor: cur}, output.ModePrettyPlain, []byte{' '})
	require.NoError(t, err)

	assert.Contains(t, got, "[2] Hit any key")
	assert.Contains(t, got, "Total docs: 3")
	assert.True(t, cur.closed)
}
