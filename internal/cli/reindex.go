package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrlokans/hikam/internal/tasks"
)

func reindexCmd(flags *globalFlags) *cobra.Command {
	var (
		all   bool
		queue bool
	)
	cmd := &cobra.Command{
		Use:   "reindex",
		Short: "Build search indexes and report their size",
		Long: `Build the search index of one user (or --all) and print how many quotes
and terms it holds. With --queue the rebuild is instead enqueued on the task
queue shared with a running server.`,
		Args: cobra.NoArgs,
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

			userIDs := []uint{userID}
			if all {
				if userIDs, err = app.Quotes.UserIDs(); err != nil {
					return err
				}
			}

			if queue {
				client, err := tasks.NewClient(app.Config.Database.Path, tasks.FromConfig(app.Config.Tasks))
				if err != nil {
					return err
				}
				defer client.Close()
				for _, id := range userIDs {
					ids, err := client.Enqueue(ctx, tasks.RebuildSearchIndexTask{UserID: id})
					if err != nil {
						return fmt.Errorf("enqueue rebuild for user %d: %w", id, err)
					}
					printf(cmd, "Enqueued rebuild for user %d (task %s)\n", id, ids[0])
				}
				return nil
			}

			rows := make([][]string, 0, len(userIDs))
			for _, id := range userIDs {
				if err := app.Quotes.RefreshIndexNow(ctx, id); err != nil {
					return fmt.Errorf("rebuild index for user %d: %w", id, err)
				}
				status, err := app.Quotes.SearchStatus(ctx, id)
				if err != nil {
					return err
				}
				rows = append(rows, []string{
					strconv.FormatUint(uint64(id), 10),
					strconv.Itoa(status.Quotes),
					strconv.Itoa(status.Terms),
					status.State,
				})
			}
			return renderTable(cmd.OutOrStdout(), []string{"User", "Quotes", "Terms", "State"}, rows)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Rebuild the index of every user with quotes")
	cmd.Flags().BoolVar(&queue, "queue", false, "Enqueue the rebuild for a running server instead")
	return cmd
}
