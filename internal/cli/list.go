package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/citytable/internal/cities"
	"github.com/rshade/citytable/internal/citylist"
	"github.com/rshade/citytable/internal/cli/pagination"
	"github.com/rshade/citytable/internal/config"
	"github.com/rshade/citytable/internal/logging"
	"github.com/rshade/citytable/internal/tui"
)

// maxConcurrentPages bounds the page requests in flight during list.
const maxConcurrentPages = 4

// maxPages bounds --pages so a typo cannot walk the whole dataset.
const maxPages = 500

// ListFlags holds the list command's flags.
type ListFlags struct {
	Pages  int
	Search string
	Output string
	Plain  bool
	Page   pagination.Params
}

// NewListCmd creates the list command, which fetches pages and prints them.
func NewListCmd() *cobra.Command {
	var flags ListFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Fetch city pages and print them",
		Long: `Fetches the first N pages of the dataset concurrently, then filters,
sorts and slices them the way the interactive table does.`,
		Example: `  # First page as a table
  citytable list

  # Five pages, cities containing "san", largest first
  citytable list --pages 5 --search san --sort population:desc

  # Second page of 10 rows of the fetched result, as JSON
  citytable list --pages 2 --page 2 --page-size 10 --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, closer := newCityClient()
			defer func() { _ = closer.Close() }()
			return runList(cmd, client, flags)
		},
	}

	addListFlags(cmd, &flags)
	return cmd
}

func addListFlags(cmd *cobra.Command, flags *ListFlags) {
	cmd.Flags().IntVar(&flags.Pages, "pages", 1, "number of pages to fetch")
	cmd.Flags().StringVar(&flags.Search, "search", "", "keep cities whose name contains this text (case-insensitive)")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", OutputTable, "output format: table, json, ndjson")
	cmd.Flags().BoolVar(&flags.Plain, "plain", false, "disable styling in table output")
	flags.Page.AddFlags(cmd)
}

func (f ListFlags) validate() error {
	if f.Pages < 1 || f.Pages > maxPages {
		return fmt.Errorf("--pages must be between 1 and %d, got %d", maxPages, f.Pages)
	}
	if !isValidOutputFormat(f.Output) {
		return fmt.Errorf("unsupported output format: %s", f.Output)
	}
	return f.Page.Validate()
}

func runList(cmd *cobra.Command, src cities.Source, flags ListFlags) error {
	if err := flags.validate(); err != nil {
		return err
	}
	ctx := cmd.Context()
	cfg := config.GetGlobalConfig()

	fetched, err := fetchPages(ctx, src, flags.Pages, cfg.API.PageSize)
	if err != nil {
		return err
	}

	filtered := citylist.Filter(fetched, flags.Search)
	sorted, err := pagination.NewCitySorter().Sort(filtered, flags.Page.Sort)
	if err != nil {
		return err
	}
	shown := pagination.Apply(flags.Page, sorted)

	logging.FromContext(ctx).Debug().
		Str("component", "cli").
		Str("operation", "list").
		Int("fetched", len(fetched)).
		Int("matched", len(filtered)).
		Int("shown", len(shown)).
		Msg("list assembled")

	result := listResult{
		Search:  flags.Search,
		Sort:    flags.Page.Sort,
		Meta:    pagination.NewMeta(flags.Page, len(sorted)),
		Results: toRecords(shown, cfg.Weather.URLTemplate),
	}
	return renderCities(cmd.OutOrStdout(), flags.Output, tui.DetectOutputMode(flags.Plain), result)
}

// fetchPages requests pages [0, pages) concurrently and concatenates them in
// offset order. Pages after the first short page are dropped.
func fetchPages(ctx context.Context, src cities.Source, pages, pageSize int) ([]cities.City, error) {
	results := make([]cities.Page, pages)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentPages)
	for i := range pages {
		g.Go(func() error {
			page, err := src.FetchPage(gctx, i*pageSize, pageSize)
			if err != nil {
				return fmt.Errorf("fetching page %d: %w", i+1, err)
			}
			results[i] = page
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var apiErr *cities.APIError
		if errors.As(err, &apiErr) {
			logging.FromContext(ctx).Error().
				Str("component", "cli").
				Str("operation", "fetch_pages").
				Int("status", apiErr.StatusCode).
				Str("error_code", apiErr.ErrorCode).
				Msg("records API rejected request")
		}
		return nil, err
	}

	var all []cities.City
	for _, page := range results {
		all = append(all, page.Results...)
		if len(page.Results) < pageSize {
			break
		}
	}
	return all, nil
}
