package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"textinsight/internal/models"
	"textinsight/internal/store"
	"textinsight/internal/validation"
)

func newSearchCmd() *cobra.Command {
	var (
		keyword   string
		sentiment string
		limit     int
		pretty    bool
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search stored analyses, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, valid, msg := validation.ParseSentimentFilter(sentiment)
			if !valid {
				return errors.New(msg)
			}

			a, cleanup, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if a.Repo == nil {
				return store.ErrNotConfigured
			}

			records, err := a.Repo.Search(cmd.Context(), models.SearchFilters{
				Keyword:   validation.NormalizeKeyword(keyword),
				Sentiment: s,
			}, limit)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), records, pretty)
		},
	}

	cmd.Flags().StringVarP(&keyword, "keyword", "k", "", "match stored keywords exactly or text case-insensitively")
	cmd.Flags().StringVarP(&sentiment, "sentiment", "s", "", "positive, neutral or negative")
	cmd.Flags().IntVar(&limit, "limit", store.SearchLimit, "maximum number of results (at most 50)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent JSON output")
	return cmd
}
