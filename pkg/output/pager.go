package output

import (
	"fmt"
	"io"

	"github.com/deontologician/rql/pkg/output/styles"
)

// DefaultPageSize is how many items a page holds unless configured.
const DefaultPageSize = 40

// Pager drives an interactive, bounded display loop over a sequence.
// Items print as they arrive; after every PageSize items it shows a
// status line with the cumulative count and waits for a keypress.
// Pressing q (or closing the input) aborts cleanly without draining
// the rest of the sequence.
type Pager struct {
	Out      io.Writer
	Keys     KeyReader
	PageSize int
}

// Run paginates seq, rendering each item with rend. trace is the
// original expression, echoed at page boundaries and in the trailer.
// A nil return covers both full completion and a keypress quit; a
// mid-stream read failure is returned after the items rendered so far
// have been flushed.
func (p *Pager) Run(seq *Sequence, rend *Renderer, trace string) error {
	pageSize := p.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	shown := 0
	for {
		// Filling
		item, ok, err := seq.Next()
		if err != nil {
			// Items already printed stay put; the caller reports the
			// error distinctly on stderr.
			return err
		}
		if !ok {
			break
		}

		text, err := rend.Render(item)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(p.Out, text); err != nil {
			return writeError(err)
		}
		shown++

		if shown%pageSize == 0 {
			// AwaitingInput
			quit, err := p.prompt(rend, trace, shown)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		}
	}

	// Draining
	fmt.Fprintln(p.Out, styles.GetStyle("Count").Render(fmt.Sprintf("Total docs: %d", shown)))
	p.printTrailer(rend, trace)
	return nil
}

// prompt shows the page-boundary status line and blocks for one
// keypress. Returns true when the user quit (q/Q or end of input). A
// write failure means the consumer went away mid-page and is
// classified like any other output error.
func (p *Pager) prompt(rend *Renderer, trace string, shown int) (bool, error) {
	if _, err := fmt.Fprintln(p.Out, styles.GetStyle("Label").Render("Running:"), rend.RenderTrace(trace)); err != nil {
		return false, writeError(err)
	}
	promptLine := fmt.Sprintf("[%d] Hit any key to continue (or q to quit)...", shown)
	if _, err := fmt.Fprintln(p.Out, styles.GetStyle("Prompt").Render(promptLine)); err != nil {
		return false, writeError(err)
	}

	key, err := p.Keys.ReadKey()
	if err != nil {
		return true, nil
	}
	return key == 'q' || key == 'Q', nil
}

// printTrailer shows the execution trace after a fully drained run.
func (p *Pager) printTrailer(rend *Renderer, trace string) {
	fmt.Fprintln(p.Out, styles.GetStyle("Label").Render("Ran:"))
	fmt.Fprintln(p.Out, rend.RenderTrace(trace))
}
