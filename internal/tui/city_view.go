package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current view (Bubble Tea interface).
func (m CityTableModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateLoading:
		return m.loadingState.View()
	case ViewStateList:
		return m.renderListView()
	default:
		return ""
	}
}

func (m CityTableModel) renderListView() string {
	sections := []string{m.renderTitle()}

	if m.showSearch {
		sections = append(sections, LabelStyle.Render("Search: ")+m.search.View())
		if m.suggestions.Len() > 0 {
			sections = append(sections, BoxStyle.Render(m.suggestions.View()))
		}
	} else if term := m.list.SearchTerm(); term != "" {
		sections = append(sections, LabelStyle.Render("Search: ")+ValueStyle.Render(term))
	}

	if m.list.VisibleLen() == 0 && m.list.Len() > 0 {
		sections = append(sections, InfoStyle.Render("No cities match the search."))
	}
	sections = append(sections, m.table.View())

	if err := m.list.Err(); err != nil {
		sections = append(sections, m.renderErrorBanner(err))
	}
	if m.list.Loading() {
		sections = append(sections, m.loadingState.Indicator())
	}

	sections = append(sections, m.renderStatusBar(), m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m CityTableModel) renderTitle() string {
	title := HeaderStyle.Render("CITIES")
	loaded := fmt.Sprintf("%d loaded", m.list.Len())
	if m.total > 0 {
		loaded = fmt.Sprintf("%d of %s loaded", m.list.Len(), FormatPopulation(m.opts.Language, int64(m.total)))
	}
	return title + "  " + SubtleStyle.Render(loaded)
}

func (m CityTableModel) renderErrorBanner(err error) string {
	msg := fmt.Sprintf("Failed to load cities: %v. Scroll down to try again.", err)
	return ErrorStyle.Width(max(m.width-borderPadding, 0)).Render(msg)
}

// renderStatusBar displays counts, the next offset, the sort and any message
// from the last action.
func (m CityTableModel) renderStatusBar() string {
	parts := []string{
		fmt.Sprintf("Showing %d/%d", m.list.VisibleLen(), m.list.Len()),
		fmt.Sprintf("Next offset %d", m.list.Cursor()),
	}
	if col, dir, ok := m.list.ActiveSort(); ok {
		parts = append(parts, fmt.Sprintf("Sort: %s %s", col.Title(), dir.Arrow()))
	}
	if m.flash != "" {
		parts = append(parts, m.flash)
	}
	return SubtleStyle.Render(strings.Join(parts, " | "))
}
