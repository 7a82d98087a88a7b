package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrlokans/hikam/internal/database/quotes"
	"github.com/mrlokans/hikam/internal/exporters"
)

func exportCmd(flags *globalFlags) *cobra.Command {
	var (
		format    string
		output    string
		category  string
		favorites bool
		title     string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export quotes as Markdown or JSON",
		Long: `Export a user's quotes. Markdown groups quotes by category; JSON
produces a file that "hikam import" accepts.

With --output set to a directory the file is named after the format and
today's date.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			exporter, err := exporters.ForFormat(format, title)
			if err != nil {
				return err
			}

			app, userID, err := flags.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			list, err := app.Quotes.List(userID, quotes.Filter{Category: category, FavoritesOnly: favorites})
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				path := output
				if info, err := os.Stat(output); err == nil && info.IsDir() {
					path = filepath.Join(output, exporters.FileName("hikam", time.Now(), exporter))
				}
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", path, err)
				}
				defer f.Close()
				w = f
				output = path
			}

			result, err := exporter.Export(w, list)
			if err != nil {
				return err
			}
			if output != "" {
				printf(cmd, "Exported %d quote(s) in %d categories to %s\n", result.QuotesExported, result.Categories, output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", exporters.FormatMarkdown, "Output format: markdown or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file or directory (default: stdout)")
	cmd.Flags().StringVar(&category, "category", "", "Only export this category")
	cmd.Flags().BoolVar(&favorites, "favorites", false, "Only export favourite quotes")
	cmd.Flags().StringVar(&title, "title", "", "Markdown document title")
	return cmd
}
