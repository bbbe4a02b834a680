package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/citytable/internal/cli/pagination"
	"github.com/rshade/citytable/internal/config"
	"github.com/rshade/citytable/internal/tui"
)

// NewBrowseCmd creates the browse command, which runs the interactive table.
func NewBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive city table",
		Long: `Opens a scrollable table of cities. More cities load as you scroll
toward the bottom. Press / to search, 1-4 to sort, enter to open the weather
page, y to copy its URL and q to quit.

When stdout is not a terminal, prints the first page like "citytable list".`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationTUI: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd)
		},
	}
}

func runBrowse(cmd *cobra.Command) error {
	client, closer := newCityClient()
	defer func() { _ = closer.Close() }()

	if tui.DetectOutputMode(false) != tui.OutputModeInteractive {
		return runList(cmd, client, ListFlags{Pages: 1, Output: OutputTable, Page: pagination.Params{}})
	}

	cfg := config.GetGlobalConfig()
	model := tui.NewCityTableModel(cmd.Context(), client, tui.Options{
		PageSize:           cfg.API.PageSize,
		ScrollThreshold:    cfg.UI.ScrollThreshold,
		SuggestionLimit:    cfg.UI.SuggestionLimit,
		WeatherURLTemplate: cfg.Weather.URLTemplate,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(cmd.Context())}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(model, opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}
	return nil
}
