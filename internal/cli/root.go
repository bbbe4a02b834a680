package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/citytable/internal/cache"
	"github.com/rshade/citytable/internal/config"
	"github.com/rshade/citytable/internal/logging"
	"github.com/rshade/citytable/internal/tui"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// Command annotations.
const (
	// annotationTUI marks commands that own the terminal, so logs must not go to stderr.
	annotationTUI = "citytable/tui"
	// annotationConfigOptional marks commands that run before --config exists.
	annotationConfigOptional = "citytable/config-optional"
)

// NewRootCmd creates the root Cobra command for the citytable CLI.
// It loads configuration, wires up logging and tracing, and registers the
// browse, list, suggest, weather, cache and config subcommands. Running the
// root without a subcommand in a terminal starts browse.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "citytable",
		Short:         "Browse the GeoNames city dataset",
		Long:          "citytable: scroll, search and sort cities from the OpenDataSoft GeoNames dataset",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		Annotations:   map[string]string{annotationTUI: "true"},
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if tui.DetectOutputMode(false) != tui.OutputModeInteractive {
				return cmd.Help()
			}
			return runBrowse(cmd)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file (default $CITYTABLE_HOME/config.yaml or ~/.citytable/config.yaml)")
	cmd.PersistentFlags().Bool("no-cache", false, "bypass the page cache")
	cmd.PersistentFlags().
		String("cache-ttl", "", "enable the page cache with this TTL, as seconds or a duration like 10m")

	cmd.AddCommand(
		NewBrowseCmd(), NewListCmd(), NewSuggestCmd(), NewWeatherCmd(),
		newCacheCmd(), newConfigCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Open the interactive table
  citytable

  # Print the first three pages sorted by population, largest first
  citytable list --pages 3 --sort population:desc

  # Search the first 500 cities and emit JSON
  citytable list --pages 25 --search lon --output json

  # Suggest city names for a prefix
  citytable suggest Lon

  # Open the weather page for London
  citytable weather 2643743 --open

  # Cache pages for ten minutes
  citytable list --pages 5 --cache-ttl 10m

  # Write a default configuration file
  citytable config init`

// loadConfig applies --config and flag overrides to the global configuration.
func loadConfig(cmd *cobra.Command) error {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err := config.Load(path)
		switch {
		case err == nil:
			config.SetGlobalConfig(cfg)
		case errors.Is(err, os.ErrNotExist) && cmd.Annotations[annotationConfigOptional] == "true":
		default:
			return fmt.Errorf("loading config: %w", err)
		}
	}
	cfg := config.GetGlobalConfig()

	if ttl, _ := cmd.Flags().GetString("cache-ttl"); ttl != "" {
		seconds, err := cache.ParseTTL(ttl)
		if err != nil {
			return fmt.Errorf("invalid --cache-ttl: %w", err)
		}
		cfg.Cache.TTLSeconds = seconds
		cfg.Cache.Enabled = true
	}
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		cfg.Cache.Enabled = false
	}
	return nil
}

// ownsTerminal reports whether cmd or one of its parents draws the TUI.
func ownsTerminal(cmd *cobra.Command) bool {
	if cmd.Annotations[annotationTUI] != "true" {
		return false
	}
	return tui.DetectOutputMode(false) == tui.OutputModeInteractive
}

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigPathCmd())
	return cmd
}

// newCacheCmd creates the cache command group.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Page cache commands"}
	cmd.AddCommand(NewCacheClearCmd(), NewCacheStatsCmd(), NewCachePruneCmd())
	return cmd
}
