package main

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed docs/usage.md
var usageDoc string

func newDocsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "docs",
		Short: MsgDocsShort,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), renderMarkdown(usageDoc))
		},
	}
}

// renderMarkdown converts markdown to terminal output, falling back to
// the raw text when rendering is unavailable.
func renderMarkdown(content string) string {
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
