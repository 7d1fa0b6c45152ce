package output_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rqlerrors "github.com/deontologician/rql/pkg/errors"
	"github.com/deontologician/rql/pkg/output"
)

func newRenderer(t *testing.T, mode output.RenderMode) *output.Renderer {
	t.Helper()
	rend, err := output.NewRenderer(mode, "monokai")
	require.NoError(t, err)
	return rend
}

func TestNewRendererUnknownStyle(t *testing.T) {
	_, err := output.NewRenderer(output.ModePrettyColor, "no-such-style")
	require.Error(t, err)
	assert.True(t, rqlerrors.IsErrorCode(err, rqlerrors.ErrConfigInvalid))

	// Empty style falls back to the default instead of erroring.
	_, err = output.NewRenderer(output.ModePrettyColor, "")
	assert.NoError(t, err)
}

func TestRenderCompact(t *testing.T) {
	rend := newRenderer(t, output.ModeCompact)

	tests := []struct {
		name string
		item interface{}
		want string
	}{
		{"scalar", float64(16), "16"},
		{"string", "hello", `"hello"`},
		{"null", nil, "null"},
		{"document", map[string]interface{}{"b": 2, "a": 1}, `{"a":1,"b":2}`},
		{"nested", map[string]interface{}{"xs": []interface{}{1, 2}}, `{"xs":[1,2]}`},
		{"string with newline", "a\nb", `"a\nb"`},
		{"no html escaping", "a<b>&c", `"a<b>&c"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rend.Render(tt.item)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "\n", "compact rendering must be a single line")
		})
	}
}

func TestRenderPrettyPlain(t *testing.T) {
	rend := newRenderer(t, output.ModePrettyPlain)

	got, err := rend.Render(map[string]interface{}{"name": "ada", "id": float64(1)})
	require.NoError(t, err)

	want := "{\n    \"id\": 1,\n    \"name\": \"ada\"\n}"
	assert.Equal(t, want, got)
}

func TestRenderPrettyColorHighlights(t *testing.T) {
	rend := newRenderer(t, output.ModePrettyColor)

	got, err := rend.Render(map[string]interface{}{"name": "ada"})
	require.NoError(t, err)

	assert.Contains(t, got, "\x1b[", "color mode should emit ANSI sequences")
	assert.Contains(t, got, "name")
}

func TestRenderTrace(t *testing.T) {
	expr := `r.table("users").limit(5)`

	plain := newRenderer(t, output.ModePrettyPlain)
	assert.Equal(t, expr, plain.RenderTrace(expr))

	color := newRenderer(t, output.ModePrettyColor)
	traced := color.RenderTrace(expr)
	assert.Contains(t, traced, "\x1b[")
	assert.False(t, strings.HasSuffix(traced, "\n"))
}
