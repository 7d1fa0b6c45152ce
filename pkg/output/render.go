package output

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	chromastyles "github.com/alecthomas/chroma/v2/styles"

	"github.com/deontologician/rql/pkg/errors"
)

// DefaultStyle is the highlight style used when none is configured.
const DefaultStyle = "monokai"

// Renderer converts one output item to text for the active mode.
// Rendering has no side effects and never mutates the item.
type Renderer struct {
	mode  RenderMode
	style string
}

// NewRenderer returns a renderer for mode. styleName must name a known
// chroma style; an unknown name is a configuration error here, at
// startup, never deferred to the first rendered item.
func NewRenderer(mode RenderMode, styleName string) (*Renderer, error) {
	if styleName == "" {
		styleName = DefaultStyle
	}
	if _, ok := chromastyles.Registry[styleName]; !ok {
		return nil, errors.Newf(errors.ErrConfigInvalid, "unknown highlight style %q", styleName)
	}
	return &Renderer{mode: mode, style: styleName}, nil
}

// Mode returns the renderer's active mode.
func (r *Renderer) Mode() RenderMode { return r.mode }

// Render returns the textual form of item for the active mode. Pretty
// modes produce indented multi-line JSON (4-space nesting, sorted
// keys), optionally highlighted. Compact and array modes produce a
// single line with minimal separators and no embedded newlines; the
// caller owns framing (trailing newline, array brackets).
func (r *Renderer) Render(item interface{}) (string, error) {
	switch r.mode {
	case ModePrettyColor:
		text, err := marshalIndent(item)
		if err != nil {
			return "", err
		}
		return r.highlight(text, "json"), nil
	case ModePrettyPlain:
		return marshalIndent(item)
	default:
		return marshalCompact(item)
	}
}

// RenderTrace returns the execution trace (the original expression) for
// the trailer shown in interactive modes. The expression is highlighted
// in color mode; the query language's surface syntax is close enough to
// Python for the generic lexer to do a good job.
func (r *Renderer) RenderTrace(expr string) string {
	if r.mode == ModePrettyColor {
		return r.highlight(expr, "python")
	}
	return expr
}

// highlight returns source with ANSI highlighting applied, or the
// source unchanged if highlighting fails.
func (r *Renderer) highlight(source, lexer string) string {
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, source, lexer, "terminal256", r.style); err != nil {
		return source
	}
	return strings.TrimRight(buf.String(), "\n")
}

// marshalIndent produces multi-line indented JSON without HTML escaping.
func marshalIndent(item interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(item); err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to encode item as JSON")
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// marshalCompact produces single-line JSON without HTML escaping. JSON
// string escaping guarantees no embedded literal newlines.
func marshalCompact(item interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(item); err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to encode item as JSON")
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
