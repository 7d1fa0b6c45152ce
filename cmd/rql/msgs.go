package main

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort    = "Run database query expressions from the terminal"
	MsgVersionShort = "Print version information"
	MsgDocsShort    = "Show extended documentation"
	MsgManShort     = "Generate man page"

	// Flag help
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagHost     = "Server host to connect to"
	MsgFlagPort     = "Server driver port"
	MsgFlagAuth     = "Authentication key, if required by the server"
	MsgFlagDB       = "Default database for the query"
	MsgFlagDriver   = "Query driver to evaluate the expression with"
	MsgFlagDSN      = "Data source name for embedded drivers"
	MsgFlagPageSize = "Documents to show per page in interactive mode"
	MsgFlagStyle    = "Highlight style for colorized output"
	MsgFlagArray    = "Force output as a single JSON array"
	MsgFlagNewline  = "Force newline-delimited compact output"
	MsgFlagColor    = "Force colorized pretty output"
	MsgFlagAuto     = "Pick the output mode from the terminal (default)"
)

// Long messages (multi-line)
const (
	MsgRootLong = `rql evaluates a single query expression against a database and prints
the result. On a terminal, results are pretty-printed with syntax
highlighting and paged interactively; when piped, each document is
written as one compact JSON line so the output composes with jq, head,
and friends.`
)

// Templates
var (
	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
