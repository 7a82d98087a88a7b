package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrlokans/hikam/internal/services"
)

const searchTextWidth = 60

func searchCmd(flags *globalFlags) *cobra.Command {
	var (
		limit    int
		minScore int
		exact    bool
		semantic bool
		jsonOut  bool
	)
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search quotes by exact word, synonym or shared root",
		Long: `Search a user's quotes and print them ranked by relevance.

Examples:
  hikam search صبر
  hikam search --semantic=false "العلم نور"
  hikam search --user admin --limit 5 الأمل`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			if strings.TrimSpace(query) == "" {
				return fmt.Errorf("empty search query")
			}

			app, userID, err := flags.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if err := app.Quotes.RefreshIndexNow(ctx, userID); err != nil {
				return err
			}
			resp, err := app.Quotes.Search(ctx, userID, services.SearchRequest{
				Query:    query,
				Limit:    limit,
				MinScore: minScoreFlag(cmd, minScore),
				Exact:    &exact,
				Semantic: &semantic,
			})
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}
			if len(resp.Results) == 0 {
				printf(cmd, "No quotes match %q\n", resp.Query)
				return nil
			}

			rows := make([][]string, 0, len(resp.Results))
			for i, r := range resp.Results {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					strconv.Itoa(r.Score),
					truncate(r.Quote.Text, searchTextWidth),
					r.Quote.Category,
				})
			}
			return renderTable(cmd.OutOrStdout(), []string{"#", "Score", "Quote", "Category"}, rows)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of results")
	cmd.Flags().IntVar(&minScore, "min-score", 0, "Minimum relevance score, 0 keeps every candidate (default from SEARCH_MIN_SCORE)")
	cmd.Flags().BoolVar(&exact, "exact", true, "Match the query words themselves")
	cmd.Flags().BoolVar(&semantic, "semantic", true, "Match synonyms and words sharing a root")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

// minScoreFlag is nil unless --min-score was given, so the configured
// threshold applies by default.
func minScoreFlag(cmd *cobra.Command, v int) *int {
	if !cmd.Flags().Changed("min-score") {
		return nil
	}
	return &v
}
