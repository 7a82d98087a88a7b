package cli

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/mrlokans/hikam/internal/config"
	"github.com/mrlokans/hikam/internal/entrypoint"
)

type globalFlags struct {
	dbPath string
	user   string
}

// NewRootCommand builds the hikam command tree. Without a subcommand the
// HTTP server is started.
func NewRootCommand(version string) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:     "hikam",
		Short:   "Arabic quotes collection with semantic search",
		Version: version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			entrypoint.Run(flags.config(), version)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&flags.dbPath, "db", "", "Database path (overrides DATABASE_PATH)")
	root.PersistentFlags().StringVarP(&flags.user, "user", "u", "", "Username or ID owning the quotes (default: the unauthenticated user)")

	root.AddCommand(serveCmd(flags, version))
	root.AddCommand(searchCmd(flags))
	root.AddCommand(reindexCmd(flags))
	root.AddCommand(importCmd(flags))
	root.AddCommand(seedCmd(flags))
	root.AddCommand(exportCmd(flags))
	return root
}

func (f *globalFlags) config() *config.Config {
	cfg := config.NewConfig()
	if f.dbPath != "" {
		cfg.Database.Path = f.dbPath
	}
	return cfg
}

// openApp opens the application without background workers and resolves
// the --user flag.
func (f *globalFlags) openApp() (*entrypoint.App, uint, error) {
	app, err := entrypoint.NewApp(f.config())
	if err != nil {
		return nil, 0, err
	}
	userID, err := app.ResolveUser(f.user)
	if err != nil {
		_ = app.Close()
		return nil, 0, err
	}
	return app, userID, nil
}

func serveCmd(flags *globalFlags, version string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default if no command given)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entrypoint.Run(flags.config(), version)
			return nil
		},
	}
}

func renderTable(w io.Writer, headers []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:n-1])) + "…"
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
