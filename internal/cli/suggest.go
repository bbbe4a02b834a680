package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/citytable/internal/cities"
	"github.com/rshade/citytable/internal/citylist"
	"github.com/rshade/citytable/internal/config"
)

// defaultSuggestPages is how many pages suggest searches by default.
const defaultSuggestPages = 5

// NewSuggestCmd creates the suggest command, which prints name completions.
func NewSuggestCmd() *cobra.Command {
	var (
		pages int
		limit int
	)

	cmd := &cobra.Command{
		Use:   "suggest <prefix>",
		Short: "Print city names starting with a prefix",
		Example: `  citytable suggest Lon
  citytable suggest san --pages 20 --limit 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closer := newCityClient()
			defer func() { _ = closer.Close() }()
			return runSuggest(cmd, client, args[0], pages, limit)
		},
	}

	cmd.Flags().IntVar(&pages, "pages", defaultSuggestPages, "number of pages to search")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum suggestions (default from ui.suggestion_limit)")
	return cmd
}

func runSuggest(cmd *cobra.Command, src cities.Source, prefix string, pages, limit int) error {
	if pages < 1 || pages > maxPages {
		return fmt.Errorf("--pages must be between 1 and %d, got %d", maxPages, pages)
	}
	cfg := config.GetGlobalConfig()
	if limit <= 0 {
		limit = cfg.UI.SuggestionLimit
	}

	fetched, err := fetchPages(cmd.Context(), src, pages, cfg.API.PageSize)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	matches := citylist.Suggest(fetched, prefix, limit)
	if len(matches) == 0 {
		fmt.Fprintf(out, "No cities start with %q.\n", prefix)
		return nil
	}
	for _, c := range matches {
		fmt.Fprintf(out, "%s, %s (%s)\n", c.Name, c.CountryName, c.GeonameID)
	}
	return nil
}
