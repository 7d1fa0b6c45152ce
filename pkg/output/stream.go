package output

import (
	stderrors "errors"
	"fmt"
	"io"
	"syscall"

	"github.com/deontologician/rql/pkg/errors"
)

// WriteAll drives the non-interactive write loop: every item streams to
// out as soon as it is rendered, so downstream consumers can start
// before the result set is complete. Compact mode frames one item per
// line; array mode wraps the whole sequence in brackets with comma
// separators (an empty sequence yields []).
func WriteAll(seq *Sequence, rend *Renderer, out io.Writer) error {
	if rend.Mode() == ModeArray {
		return writeArray(seq, rend, out)
	}
	return writeLines(seq, rend, out)
}

func writeLines(seq *Sequence, rend *Renderer, out io.Writer) error {
	for {
		item, ok, err := seq.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		text, err := rend.Render(item)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, text); err != nil {
			return writeError(err)
		}
	}
}

func writeArray(seq *Sequence, rend *Renderer, out io.Writer) error {
	if _, err := io.WriteString(out, "["); err != nil {
		return writeError(err)
	}
	first := true
	for {
		item, ok, err := seq.Next()
		if err != nil {
			// Close the bracket so partial output stays parseable,
			// then surface the stream failure.
			_, _ = io.WriteString(out, "]\n")
			return err
		}
		if !ok {
			break
		}
		text, err := rend.Render(item)
		if err != nil {
			return err
		}
		if !first {
			if _, err := io.WriteString(out, ","); err != nil {
				return writeError(err)
			}
		}
		first = false
		if _, err := io.WriteString(out, text); err != nil {
			return writeError(err)
		}
	}
	if _, err := io.WriteString(out, "]\n"); err != nil {
		return writeError(err)
	}
	return nil
}

// writeError classifies a sink write failure. A consumer that closed
// its end early (`| head`) is expected usage, not a failure; it maps
// to BROKEN_PIPE which the caller treats as clean termination.
func writeError(err error) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, syscall.EPIPE) || stderrors.Is(err, io.ErrClosedPipe) {
		return errors.Wrap(err, errors.ErrBrokenPipe, "output consumer closed the pipe")
	}
	return errors.Wrap(err, errors.ErrOutputWrite, "failed writing output")
}
