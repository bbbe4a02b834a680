package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"

	"github.com/rshade/citytable/internal/cities"
	"github.com/rshade/citytable/internal/citylist"
	"github.com/rshade/citytable/internal/logging"
	listview "github.com/rshade/citytable/internal/tui/list"
)

// Column widths.
const (
	colWidthName       = 28
	colWidthCountry    = 24
	colWidthTimezone   = 24
	colWidthPopulation = 14
	searchInputWidth   = 40
	// mouseWheelStep is the number of rows moved per wheel notch.
	mouseWheelStep = 3
)

// CitiesLoadedMsg carries a fetched page back to the model.
type CitiesLoadedMsg struct {
	Offset  int
	Initial bool
	Page    cities.Page
}

// FetchFailedMsg reports a failed page request.
type FetchFailedMsg struct {
	Offset int
	Err    error
}

// actionResultMsg reports the outcome of opening or copying a URL.
type actionResultMsg struct {
	text string
	err  error
}

// Options configures a CityTableModel. Zero fields take defaults.
type Options struct {
	PageSize           int
	ScrollThreshold    int
	SuggestionLimit    int
	WeatherURLTemplate string
	Language           language.Tag
	Opener             Opener
	Clipboard          Clipboard
}

// CityTableModel is the Bubble Tea model for the scrollable city table.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type CityTableModel struct {
	ctx    context.Context
	source cities.Source
	list   *citylist.Controller
	opts   Options

	state ViewState

	table       table.Model
	search      textinput.Model
	suggestions listview.Model[cities.City]
	showSearch  bool
	keys        keyMap
	help        help.Model

	width  int
	height int

	initOffset int
	initLimit  int
	total      int
	flash      string

	loadingState *LoadingState
}

// NewCityTableModel creates the model and prepares the initial page request,
// which is issued by Init.
func NewCityTableModel(ctx context.Context, source cities.Source, opts Options) CityTableModel {
	if opts.Language == language.Und {
		opts.Language = language.English
	}
	if opts.Opener == nil {
		opts.Opener = BrowserOpener{}
	}
	if opts.Clipboard == nil {
		opts.Clipboard = SystemClipboard{}
	}

	list := citylist.New(citylist.Options{
		PageSize:        opts.PageSize,
		ScrollThreshold: opts.ScrollThreshold,
		SuggestionLimit: opts.SuggestionLimit,
	})

	m := CityTableModel{
		ctx:          ctx,
		source:       source,
		list:         list,
		opts:         opts,
		state:        ViewStateLoading,
		search:       newSearchInput(),
		suggestions:  listview.New[cities.City](nil, renderSuggestion),
		keys:         newKeyMap(),
		help:         help.New(),
		width:        TerminalWidth(),
		height:       defaultHeight,
		loadingState: NewLoadingState(),
	}
	m.initOffset, m.initLimit = list.BeginInitialLoad()
	m.table = m.buildTable()
	return m
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "city name"
	ti.Prompt = ""
	ti.CharLimit = 64
	ti.Width = searchInputWidth
	return ti
}

func renderSuggestion(c cities.City, selected bool) string {
	label := fmt.Sprintf("%s, %s", c.Name, c.CountryName)
	if selected {
		return SuggestionSelectedStyle.Render(label)
	}
	return SuggestionStyle.Render(label)
}

// Init starts the spinner and issues the first page request.
func (m CityTableModel) Init() tea.Cmd {
	return tea.Batch(m.loadingState.Init(), m.fetchCmd(m.initOffset, m.initLimit, true))
}

// Update handles messages and updates the model state (Bubble Tea interface).
func (m CityTableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(m.tableHeight())
		return m, nil
	case CitiesLoadedMsg:
		return m.handleLoaded(msg)
	case FetchFailedMsg:
		return m.handleFetchFailed(msg)
	case actionResultMsg:
		m.flash = msg.text
		if msg.err != nil {
			m.flash = fmt.Sprintf("%s: %v", msg.text, msg.err)
		}
		return m, nil
	case spinner.TickMsg:
		if !m.list.Loading() {
			return m, nil
		}
		return m, m.loadingState.Update(msg)
	case tea.MouseMsg:
		if m.state != ViewStateList {
			return m, nil
		}
		return m.handleMouse(msg)
	case tea.KeyMsg:
		if m.showSearch {
			return m.handleSearchInput(msg)
		}
		switch m.state {
		case ViewStateLoading:
			return m.handleLoadingKeypress(msg)
		case ViewStateList:
			return m.handleListKeypress(msg)
		case ViewStateQuitting:
			return m, nil
		}
	}
	return m, nil
}

func (m CityTableModel) handleLoaded(msg CitiesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Initial {
		m.list.ApplyInitial(msg.Page.Results)
	} else {
		m.list.AppendPage(msg.Page.Results)
	}
	if msg.Page.TotalCount > 0 {
		m.total = msg.Page.TotalCount
	}
	m.state = ViewStateList

	logging.FromContext(m.ctx).Debug().
		Str("component", "tui").
		Str("operation", "page_loaded").
		Int("offset", msg.Offset).
		Int("count", len(msg.Page.Results)).
		Int("loaded", m.list.Len()).
		Msg("page applied")

	m.refreshTable()
	return m, nil
}

func (m CityTableModel) handleFetchFailed(msg FetchFailedMsg) (tea.Model, tea.Cmd) {
	m.list.FailFetch(msg.Err)
	m.state = ViewStateList

	logging.FromContext(m.ctx).Warn().
		Str("component", "tui").
		Str("operation", "page_failed").
		Int("offset", msg.Offset).
		Err(msg.Err).
		Msg("page request failed")

	m.refreshTable()
	return m, nil
}

func (m CityTableModel) handleLoadingKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.state = ViewStateQuitting
		return m, tea.Quit
	}
	return m, nil
}

//nolint:exhaustive // Only wheel events scroll; clicks and motion are ignored.
func (m CityTableModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		m.table.MoveDown(mouseWheelStep)
	case tea.MouseButtonWheelUp:
		m.table.MoveUp(mouseWheelStep)
	default:
		return m, nil
	}
	return m, m.maybeFetch()
}

func (m CityTableModel) handleListKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyStr := msg.String(); keyStr {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keySlash:
		m.showSearch = true
		m.flash = ""
		m.search.Focus()
		return m, textinput.Blink
	case "1", "2", "3", "4":
		idx, _ := strconv.Atoi(keyStr)
		col := cities.Columns[idx-1]
		dir := m.list.ToggleSort(col)
		m.flash = fmt.Sprintf("Sorted by %s %s", col.Title(), dir)
		m.refreshTable()
		return m, nil
	case keyEnter:
		url, ok := m.list.WeatherURL(m.opts.WeatherURLTemplate, m.table.Cursor())
		if !ok {
			return m, nil
		}
		return m, m.openCmd(url)
	case keyY:
		url, ok := m.list.WeatherURL(m.opts.WeatherURLTemplate, m.table.Cursor())
		if !ok {
			return m, nil
		}
		return m, m.copyCmd(url)
	case keyEsc:
		if m.list.SearchTerm() != "" {
			m.search.SetValue("")
			m.list.SetSearchTerm("")
			m.list.ClearSuggestions()
			m.refreshTable()
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		if !m.isScrollKey(msg) {
			return m, cmd
		}
		return m, tea.Batch(cmd, m.maybeFetch())
	}
}

// isScrollKey reports whether msg is one of the table's navigation keys.
func (m *CityTableModel) isScrollKey(msg tea.KeyMsg) bool {
	km := m.table.KeyMap
	return key.Matches(msg,
		km.LineUp, km.LineDown,
		km.PageUp, km.PageDown,
		km.HalfPageUp, km.HalfPageDown,
		km.GotoTop, km.GotoBottom,
	)
}

func (m CityTableModel) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyEsc:
		m.closeSearch()
		return m, nil
	case keyEnter:
		if i, ok := m.suggestions.Selected(); ok && m.list.SelectSuggestion(i) {
			m.search.SetValue(m.list.SearchTerm())
		}
		m.closeSearch()
		m.refreshTable()
		return m, nil
	case keyTab:
		m.suggestions.Next()
		return m, nil
	case keyShiftTab:
		m.suggestions.Prev()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if after := m.search.Value(); after != before {
		m.list.SetSearchTerm(after)
		m.suggestions.SetItems(m.list.Suggestions())
		m.refreshTable()
	}
	return m, cmd
}

func (m *CityTableModel) closeSearch() {
	m.showSearch = false
	m.search.Blur()
	m.list.ClearSuggestions()
	m.suggestions.SetItems(nil)
}

// viewport maps the table onto the controller's scroll geometry. The table
// keeps its cursor on screen, so the cursor row stands in for the bottom edge.
func (m *CityTableModel) viewport() citylist.Viewport {
	height := m.table.Height()
	top := max(m.table.Cursor()+1-height, 0)
	return citylist.Viewport{
		ScrollTop:    top,
		ClientHeight: height,
		ScrollHeight: m.list.VisibleLen(),
	}
}

// maybeFetch requests the next page when the cursor is near the bottom and no
// request is in flight.
func (m *CityTableModel) maybeFetch() tea.Cmd {
	if m.list.Loading() || !m.list.ShouldFetchMore(m.viewport()) {
		return nil
	}
	offset, limit := m.list.BeginFetch()
	return tea.Batch(m.loadingState.Tick, m.fetchCmd(offset, limit, false))
}

func (m CityTableModel) fetchCmd(offset, limit int, initial bool) tea.Cmd {
	ctx, source := m.ctx, m.source
	return func() tea.Msg {
		page, err := source.FetchPage(ctx, offset, limit)
		if err != nil {
			return FetchFailedMsg{Offset: offset, Err: err}
		}
		return CitiesLoadedMsg{Offset: offset, Initial: initial, Page: page}
	}
}

func (m CityTableModel) openCmd(url string) tea.Cmd {
	opener := m.opts.Opener
	return func() tea.Msg {
		return actionResultMsg{text: "Opened " + url, err: opener.Open(url)}
	}
}

func (m CityTableModel) copyCmd(url string) tea.Cmd {
	cb := m.opts.Clipboard
	return func() tea.Msg {
		return actionResultMsg{text: "Copied " + url, err: cb.WriteAll(url)}
	}
}

// refreshTable pushes the controller's visible rows and sort markers into the
// table, keeping the cursor in range.
func (m *CityTableModel) refreshTable() {
	rows := m.buildRows()
	m.table.SetColumns(m.buildColumns())
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m *CityTableModel) buildColumns() []table.Column {
	widths := map[cities.Column]int{
		cities.ColumnName:       colWidthName,
		cities.ColumnCountry:    colWidthCountry,
		cities.ColumnTimezone:   colWidthTimezone,
		cities.ColumnPopulation: colWidthPopulation,
	}
	active, dir, sorted := m.list.ActiveSort()

	columns := make([]table.Column, len(cities.Columns))
	for i, col := range cities.Columns {
		title := fmt.Sprintf("%d %s", i+1, col.Title())
		if sorted && col == active {
			title += " " + dir.Arrow()
		}
		columns[i] = table.Column{Title: title, Width: widths[col]}
	}
	return columns
}

func (m *CityTableModel) buildRows() []table.Row {
	visible := m.list.Visible()
	rows := make([]table.Row, len(visible))
	for i, c := range visible {
		rows[i] = table.Row{
			truncate(c.Name, colWidthName),
			truncate(c.CountryName, colWidthCountry),
			truncate(c.Timezone, colWidthTimezone),
			FormatPopulation(m.opts.Language, c.Population),
		}
	}
	return rows
}

func (m *CityTableModel) tableHeight() int {
	return max(m.height-chromeHeight, minHeight)
}

func (m *CityTableModel) buildTable() table.Model {
	t := table.New(
		table.WithColumns(m.buildColumns()),
		table.WithRows(m.buildRows()),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)

	return t
}

// Controller exposes the list state, for callers that print a summary after
// the program exits.
func (m CityTableModel) Controller() *citylist.Controller {
	return m.list
}
