package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func importCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE...",
		Short: "Import quotes from .json, .csv or .txt files",
		Long: `Import quotes into a user's collection. Supported formats:

  .json  an array of {"text", "source", "category"} objects
  .csv   text,source,category rows with an optional header
  .txt   plain text, one quote per paragraph

Blank quotes and quotes already in the collection are skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, userID, err := flags.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			rows := make([][]string, 0, len(args))
			var failed int
			for _, path := range args {
				result, err := app.Pipeline.ImportFile(ctx, userID, path)
				if err != nil {
					failed++
					rows = append(rows, []string{filepath.Base(path), "-", "-", "-", err.Error()})
					continue
				}
				rows = append(rows, []string{
					filepath.Base(path),
					fmt.Sprint(result.Imported),
					fmt.Sprint(result.Skipped),
					fmt.Sprint(result.Failed),
					"",
				})
			}
			if err := renderTable(cmd.OutOrStdout(), []string{"File", "Imported", "Skipped", "Failed", "Error"}, rows); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d file(s) could not be imported", failed, len(args))
			}
			return nil
		},
	}
}
