package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rshade/citytable/internal/cities"
	"github.com/rshade/citytable/internal/config"
	"github.com/rshade/citytable/internal/tui"
)

// NewWeatherCmd creates the weather command, which resolves a city's weather page.
func NewWeatherCmd() *cobra.Command {
	var open bool

	cmd := &cobra.Command{
		Use:   "weather <geoname_id>",
		Short: "Print or open the weather page for a city",
		Example: `  citytable weather 2643743
  citytable weather 2643743 --open`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWeather(cmd, args[0], open, tui.BrowserOpener{})
		},
	}

	cmd.Flags().BoolVar(&open, "open", false, "open the page in the default browser")
	return cmd
}

func runWeather(cmd *cobra.Command, arg string, open bool, opener tui.Opener) error {
	n, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || n <= 0 {
		return fmt.Errorf("invalid geoname id %q: must be a positive integer", arg)
	}

	url := cities.WeatherURL(config.GetGlobalConfig().Weather.URLTemplate, cities.GeonameID(n))
	fmt.Fprintln(cmd.OutOrStdout(), url)

	if !open {
		return nil
	}
	if err := opener.Open(url); err != nil {
		return fmt.Errorf("opening browser: %w", err)
	}
	return nil
}
