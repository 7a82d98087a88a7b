package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mrlokans/hikam/internal/demo"
)

func seedCmd(flags *globalFlags) *cobra.Command {
	var withBook bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the sample Arabic quotes into a user's collection",
		Args:  cobra.NoArgs,
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

			var books demo.BookCreator
			if withBook {
				books = app.Reading
			}
			result, err := demo.Seed(ctx, app.Importer, books, userID)
			if err != nil {
				return err
			}
			printf(cmd, "Seeded %d quote(s), skipped %d\n", result.Imported, result.Skipped)
			return nil
		},
	}
	cmd.Flags().BoolVar(&withBook, "book", false, "Also add the sample devotional book")
	return cmd
}
