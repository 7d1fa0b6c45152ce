package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/deontologician/rql/pkg/errors"
	"github.com/deontologician/rql/pkg/output/styles"

	// Register drivers
	_ "github.com/deontologician/rql/pkg/driver/sqlite"
)

func main() {
	// Writes to a closed stdout must come back as EPIPE errors instead
	// of killing the process with SIGPIPE; truncated consumers
	// (`rql ... | head`) are normal usage, not a crash.
	signal.Ignore(syscall.SIGPIPE)

	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if errors.IsErrorCode(err, errors.ErrBrokenPipe) {
			os.Exit(0)
		}
		errorStyle := styles.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
