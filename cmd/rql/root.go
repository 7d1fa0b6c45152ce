package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/deontologician/rql/internal/version"
	"github.com/deontologician/rql/pkg/config"
	"github.com/deontologician/rql/pkg/logging"
	"github.com/deontologician/rql/pkg/output"
	"github.com/deontologician/rql/pkg/query"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	var (
		verbosity int
		modeFlags output.ModeFlags
	)

	rootCmd := &cobra.Command{
		Use:     "rql 'expression'",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		Args:    cobra.ExactArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args[0], modeFlags)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)

	flags := rootCmd.Flags()
	flags.String("host", "", MsgFlagHost)
	flags.Int("port", 0, MsgFlagPort)
	flags.String("auth", "", MsgFlagAuth)
	flags.String("db", "", MsgFlagDB)
	flags.String("driver", "", MsgFlagDriver)
	flags.String("dsn", "", MsgFlagDSN)
	flags.Int("pagesize", 0, MsgFlagPageSize)
	flags.String("style", "", MsgFlagStyle)

	// Output-mode overrides. Independent toggles; DecideMode resolves
	// ambiguous combinations with a fixed priority.
	flags.BoolVarP(&modeFlags.Array, "array", "a", false, MsgFlagArray)
	flags.BoolVarP(&modeFlags.Newline, "newline", "n", false, MsgFlagNewline)
	flags.BoolVarP(&modeFlags.Color, "color", "c", false, MsgFlagColor)
	flags.BoolVar(&modeFlags.Auto, "auto", false, MsgFlagAuto)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newDocsCmd())
	rootCmd.AddCommand(newManCmd(rootCmd))

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	return rootCmd
}

// runQuery is the full pipeline for one invocation: config, mode
// decision, connect, evaluate, display.
func runQuery(cmd *cobra.Command, expr string, modeFlags output.ModeFlags) error {
	logger := logging.GetLogger("cmd.rql")
	defer logging.LogDuration(time.Now(), "query")

	cfg, err := config.Load("")
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Terminal state is read once here so the mode decision stays
	// deterministic for the whole run.
	isTTY := output.IsTerminal(os.Stdout)
	mode := output.DecideMode(modeFlags, isTTY)
	if mode == output.ModePrettyColor && !modeFlags.Color && output.ColorDisabled() {
		mode = output.ModePrettyPlain
	}
	logger.Debug().
		Stringer("mode", mode).
		Bool("tty", isTTY).
		Str("driver", cfg.Driver).
		Msg("Output mode decided")

	rend, err := output.NewRenderer(mode, cfg.Style)
	if err != nil {
		return err
	}

	connector, err := query.Lookup(cfg.Driver)
	if err != nil {
		return err
	}
	conn, err := connector.Connect(query.ConnectOpts{
		Host:     cfg.Host,
		Port:     cfg.Port,
		AuthKey:  cfg.AuthKey,
		Database: cfg.Database,
		DSN:      cfg.DSN,
	})
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	keys := output.NewTerminalKeyReader(os.Stdin)

	// The run can block indefinitely on a keypress or a changefeed; an
	// interrupt must still restore the terminal and release the
	// connection before exiting.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer func() {
		signal.Stop(sigCh)
		close(sigCh)
	}()
	go func() {
		if _, ok := <-sigCh; !ok {
			return
		}
		keys.Restore()
		_ = conn.Close()
		os.Exit(0)
	}()

	res, err := conn.Evaluate(expr)
	if err != nil {
		return err
	}

	pager := &output.Pager{
		Out:      cmd.OutOrStdout(),
		Keys:     keys,
		PageSize: cfg.PageSize,
	}
	return output.Display(res, rend, pager, cmd.OutOrStdout(), expr)
}

// applyFlagOverrides lets explicit flags win over file and env config.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Settings) {
	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Host, _ = flags.GetString("host")
	}
	if flags.Changed("port") {
		cfg.Port, _ = flags.GetInt("port")
	}
	if flags.Changed("auth") {
		cfg.AuthKey, _ = flags.GetString("auth")
	}
	if flags.Changed("db") {
		cfg.Database, _ = flags.GetString("db")
	}
	if flags.Changed("driver") {
		cfg.Driver, _ = flags.GetString("driver")
	}
	if flags.Changed("dsn") {
		cfg.DSN, _ = flags.GetString("dsn")
	}
	if flags.Changed("pagesize") {
		cfg.PageSize, _ = flags.GetInt("pagesize")
	}
	if flags.Changed("style") {
		cfg.Style, _ = flags.GetString("style")
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "rql version %s\n", version.Version)
			fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}

func newManCmd(rootCmd *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:    "man",
		Short:  MsgManShort,
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "RQL",
				Section: "1",
			}
			return doc.GenManTree(rootCmd, header, "/tmp")
		},
	}
}
