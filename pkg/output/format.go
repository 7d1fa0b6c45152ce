package output

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// RenderMode represents the output rendering mode for a run. Exactly
// one mode is active per invocation and it never changes mid-stream.
type RenderMode int

const (
	// ModePrettyColor renders indented, syntax-highlighted output with
	// interactive pagination.
	ModePrettyColor RenderMode = iota
	// ModePrettyPlain is ModePrettyColor without ANSI codes, for
	// terminals that cannot (or should not) display color.
	ModePrettyPlain
	// ModeCompact renders one item per line with minimal separators.
	ModeCompact
	// ModeArray renders the whole sequence as a single JSON array.
	ModeArray
)

// String returns the string representation of the mode
func (m RenderMode) String() string {
	switch m {
	case ModePrettyColor:
		return "pretty-color"
	case ModePrettyPlain:
		return "pretty-plain"
	case ModeCompact:
		return "compact-line"
	case ModeArray:
		return "json-array"
	default:
		return "unknown"
	}
}

// Interactive reports whether the mode paginates on a terminal.
func (m RenderMode) Interactive() bool {
	return m == ModePrettyColor || m == ModePrettyPlain
}

// ModeFlags holds the explicit output-mode overrides from the command
// line. All false means auto.
type ModeFlags struct {
	Array   bool
	Newline bool
	Color   bool
	Auto    bool
}

// DecideMode picks the render mode for a run. Explicit flags win over
// terminal detection, resolved in a fixed priority order
// (array > newline > color > auto) so ambiguous combinations are
// deterministic rather than an error. Pure function: isTTY is read
// once at startup and threaded through.
func DecideMode(flags ModeFlags, isTTY bool) RenderMode {
	switch {
	case flags.Array:
		return ModeArray
	case flags.Newline:
		return ModeCompact
	case flags.Color:
		return ModePrettyColor
	case isTTY:
		return ModePrettyColor
	default:
		return ModeCompact
	}
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ColorDisabled reports whether colored output should be suppressed
// even in an interactive mode: NO_COLOR is set, or the terminal
// profile is plain ASCII. An explicit --color flag overrides this.
func ColorDisabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return true
	}
	return termenv.ColorProfile() == termenv.Ascii
}
