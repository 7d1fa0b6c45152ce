package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/deontologician/rql/pkg/errors"
	"github.com/deontologician/rql/pkg/query"
)

// Display runs the full output pipeline for one evaluated result.
// Interactive modes go through the pager; piped modes go through the
// stream writer. out is where rendered items land (the pager also
// writes there).
func Display(res query.Result, rend *Renderer, pager *Pager, out io.Writer, trace string) error {
	if !rend.Mode().Interactive() {
		seq := Normalize(res)
		defer func() { _ = seq.Close() }()
		return WriteAll(seq, rend, out)
	}

	if !res.IsCursor() {
		// Some servers report execution failures inside an otherwise
		// successful response document rather than as a protocol error.
		if doc, ok := res.Atom.(map[string]interface{}); ok {
			if msg, found := doc["first_error"]; found {
				// Server backtraces indent with tabs, which render
				// unevenly on terminals.
				text := strings.ReplaceAll(fmt.Sprintf("%v", msg), "\t", "  ")
				return errors.New(errors.ErrQueryFailed, text)
			}
		}
		// Scalars, documents and small primitive arrays print directly
		// with the trailer; no point prompting through a pager.
		if directPrintable(res.Atom, pager.PageSize) {
			text, err := rend.Render(res.Atom)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(out, text); err != nil {
				return writeError(err)
			}
			pager.printTrailer(rend, trace)
			return nil
		}
	}

	seq := Normalize(res)
	defer func() { _ = seq.Close() }()
	return pager.Run(seq, rend, trace)
}

// directPrintable reports whether v is small enough to show as one
// value: any scalar, any single document, or an array of primitives
// shorter than a page.
func directPrintable(v interface{}, pageSize int) bool {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	switch val := v.(type) {
	case nil, bool, string, float64, int, int64, json.Number:
		return true
	case map[string]interface{}:
		return true
	case []interface{}:
		if len(val) >= pageSize {
			return false
		}
		for _, elem := range val {
			if !isPrimitive(elem) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func isPrimitive(v interface{}) bool {
	switch v.(type) {
	case nil, bool, string, float64, int, int64, json.Number:
		return true
	default:
		return false
	}
}
