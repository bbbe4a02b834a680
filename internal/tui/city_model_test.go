package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/rshade/citytable/internal/cities"
)

// fakeSource serves a fixed dataset and records every request.
type fakeSource struct {
	all   []cities.City
	calls []int
	err   error
}

func (s *fakeSource) FetchPage(_ context.Context, offset, limit int) (cities.Page, error) {
	s.calls = append(s.calls, offset)
	if s.err != nil {
		return cities.Page{}, s.err
	}
	end := min(offset+limit, len(s.all))
	if offset >= end {
		return cities.Page{TotalCount: len(s.all)}, nil
	}
	return cities.Page{TotalCount: len(s.all), Results: s.all[offset:end]}, nil
}

func newFakeSource(n int) *fakeSource {
	named := []cities.City{
		{GeonameID: 2643743, Name: "London", CountryName: "United Kingdom", Timezone: "Europe/London", Population: 8961989},
		{GeonameID: 2643736, Name: "Londonderry", CountryName: "United Kingdom", Timezone: "Europe/London", Population: 83652},
		{GeonameID: 2988507, Name: "Paris", CountryName: "France", Timezone: "Europe/Paris", Population: 2138551},
	}
	s := &fakeSource{}
	for i := range n {
		if i < len(named) {
			s.all = append(s.all, named[i])
			continue
		}
		s.all = append(s.all, cities.City{
			GeonameID:   cities.GeonameID(10000 + i),
			Name:        fmt.Sprintf("Town %03d", i),
			CountryName: "Nowhere",
			Timezone:    "Etc/UTC",
			Population:  int64(i * 100),
		})
	}
	return s
}

type recorder struct {
	urls []string
	err  error
}

func (r *recorder) Open(url string) error {
	r.urls = append(r.urls, url)
	return r.err
}

func (r *recorder) WriteAll(text string) error {
	r.urls = append(r.urls, text)
	return r.err
}

// collect runs cmd and any batched commands, returning the produced messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func update(t *testing.T, m CityTableModel, msg tea.Msg) (CityTableModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(CityTableModel)
	require.True(t, ok)
	return next, cmd
}

// deliver feeds every page result produced by cmd back into the model.
func deliver(t *testing.T, m CityTableModel, cmd tea.Cmd) CityTableModel {
	t.Helper()
	for _, msg := range collect(cmd) {
		switch msg.(type) {
		case CitiesLoadedMsg, FetchFailedMsg, actionResultMsg:
			m, _ = update(t, m, msg)
		}
	}
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newLoadedModel(t *testing.T, src *fakeSource, rec *recorder) CityTableModel {
	t.Helper()
	m := NewCityTableModel(context.Background(), src, Options{
		PageSize:        20,
		ScrollThreshold: 3,
		SuggestionLimit: 5,
		Opener:          rec,
		Clipboard:       rec,
	})
	m = deliver(t, m, m.Init())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 12})
	return m
}

func TestNewCityTableModel(t *testing.T) {
	src := newFakeSource(50)
	m := NewCityTableModel(context.Background(), src, Options{})

	assert.Equal(t, ViewStateLoading, m.state)
	assert.True(t, m.list.Loading())
	assert.Empty(t, src.calls, "nothing fetched before Init")
	assert.Contains(t, m.View(), "Loading...")
	assert.NotNil(t, m.Init())
}

func TestCityTableModel_InitialLoad(t *testing.T) {
	src := newFakeSource(50)
	m := newLoadedModel(t, src, &recorder{})

	assert.Equal(t, []int{0}, src.calls)
	assert.Equal(t, ViewStateList, m.state)
	assert.Equal(t, 20, m.list.Len())
	assert.Equal(t, 20, m.list.Cursor())
	assert.False(t, m.list.Loading())
	assert.Len(t, m.table.Rows(), 20)
	assert.Equal(t, 50, m.total)
	assert.Contains(t, m.View(), "20 of 50 loaded")
}

func TestCityTableModel_ScrollFetchesNextPage(t *testing.T) {
	src := newFakeSource(50)
	m := newLoadedModel(t, src, &recorder{})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = deliver(t, m, cmd)
	assert.Equal(t, []int{0}, src.calls, "top of the list does not fetch")

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	assert.True(t, m.list.Loading())
	assert.Contains(t, m.View(), "Loading...")

	m = deliver(t, m, cmd)
	assert.Equal(t, []int{0, 20}, src.calls)
	assert.Equal(t, 40, m.list.Len())
	assert.Equal(t, 40, m.list.Cursor())
	assert.False(t, m.list.Loading())
	assert.Len(t, m.table.Rows(), 40)
}

func TestCityTableModel_NoOverlappingFetch(t *testing.T) {
	src := newFakeSource(100)
	m := newLoadedModel(t, src, &recorder{})

	m, first := update(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	require.True(t, m.list.Loading())

	m, second := update(t, m, keyRunes("j"))
	m = deliver(t, m, second)
	assert.Empty(t, src.calls[1:], "second scroll issues no request while loading")

	m = deliver(t, m, first)
	assert.Equal(t, []int{0, 20}, src.calls)
	assert.Equal(t, 40, m.list.Len())
}

func TestCityTableModel_StopsAtEndOfDataset(t *testing.T) {
	src := newFakeSource(25)
	m := newLoadedModel(t, src, &recorder{})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	m = deliver(t, m, cmd)
	require.Equal(t, 25, m.list.Len())
	require.Equal(t, 40, m.list.Cursor())

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	m = deliver(t, m, cmd)
	assert.Equal(t, []int{0, 20}, src.calls)
	assert.False(t, m.list.Loading())
}

func TestCityTableModel_UnboundKeysDoNotFetch(t *testing.T) {
	src := newFakeSource(100)
	m := newLoadedModel(t, src, &recorder{})

	m, _ = update(t, m, keyRunes("/"))
	for _, r := range "zzz" {
		m, _ = update(t, m, keyRunes(string(r)))
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Zero(t, m.list.VisibleLen())

	for _, k := range []string{"x", "a", "z"} {
		var cmd tea.Cmd
		m, cmd = update(t, m, keyRunes(k))
		m = deliver(t, m, cmd)
	}
	assert.Equal(t, []int{0}, src.calls)
	assert.False(t, m.list.Loading())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = deliver(t, m, cmd)
	assert.Equal(t, []int{0, 20}, src.calls, "navigation still pages in more cities")
}

func TestCityTableModel_MouseWheel(t *testing.T) {
	src := newFakeSource(50)
	m := newLoadedModel(t, src, &recorder{})

	for range 7 {
		var cmd tea.Cmd
		m, cmd = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
		m = deliver(t, m, cmd)
	}
	assert.Equal(t, []int{0, 20}, src.calls)
	assert.Equal(t, 40, m.list.Len())

	m, cmd := update(t, m, tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Nil(t, cmd)
	assert.Equal(t, 40, m.list.Len())
}

func TestCityTableModel_FetchFailure(t *testing.T) {
	src := newFakeSource(50)
	m := newLoadedModel(t, src, &recorder{})

	src.err = errors.New("connection refused")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	m = deliver(t, m, cmd)

	assert.False(t, m.list.Loading())
	require.Error(t, m.list.Err())
	assert.Equal(t, 20, m.list.Cursor())
	assert.Contains(t, m.View(), "Failed to load cities")

	src.err = nil
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, cmd2 := update(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	m = deliver(t, m, tea.Batch(cmd, cmd2))
	assert.Equal(t, []int{0, 20, 20}, src.calls, "same offset requested again")
	assert.NoError(t, m.list.Err())
	assert.Equal(t, 40, m.list.Len())
}

func TestCityTableModel_InitialFailure(t *testing.T) {
	src := newFakeSource(50)
	src.err = errors.New("dns failure")
	m := newLoadedModel(t, src, &recorder{})

	assert.Equal(t, ViewStateList, m.state)
	assert.Zero(t, m.list.Len())
	assert.Contains(t, m.View(), "dns failure")
}

func TestCityTableModel_Search(t *testing.T) {
	src := newFakeSource(20)
	m := newLoadedModel(t, src, &recorder{})

	m, cmd := update(t, m, keyRunes("/"))
	assert.NotNil(t, cmd)
	assert.True(t, m.showSearch)

	for _, r := range "Lon" {
		m, _ = update(t, m, keyRunes(string(r)))
	}
	assert.Equal(t, "Lon", m.list.SearchTerm())
	assert.Equal(t, 2, m.list.VisibleLen())
	assert.Len(t, m.table.Rows(), 2)
	assert.Equal(t, 2, m.suggestions.Len())

	view := m.View()
	assert.Contains(t, view, "Londonderry")
	assert.NotContains(t, view, "Paris")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.showSearch)
	assert.Equal(t, "Londonderry", m.list.SearchTerm())
	assert.Empty(t, m.list.Suggestions())
	assert.Equal(t, 1, m.list.VisibleLen())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.list.SearchTerm())
	assert.Equal(t, 20, m.list.VisibleLen())
	assert.Equal(t, []int{0}, src.calls, "search never fetches")
}

func TestCityTableModel_SearchEscKeepsTerm(t *testing.T) {
	m := newLoadedModel(t, newFakeSource(20), &recorder{})

	m, _ = update(t, m, keyRunes("/"))
	m, _ = update(t, m, keyRunes("p"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, m.showSearch)
	assert.Equal(t, "p", m.list.SearchTerm())
	assert.Empty(t, m.list.Suggestions())
	assert.Equal(t, 1, m.list.VisibleLen())
}

func TestCityTableModel_Sort(t *testing.T) {
	m := newLoadedModel(t, newFakeSource(20), &recorder{})

	m, _ = update(t, m, keyRunes("4"))
	assert.True(t, strings.HasSuffix(m.table.Columns()[3].Title, "▲"))
	first, _ := m.list.VisibleAt(0)
	assert.Equal(t, int64(300), first.Population)

	m, _ = update(t, m, keyRunes("4"))
	assert.True(t, strings.HasSuffix(m.table.Columns()[3].Title, "▼"))
	first, _ = m.list.VisibleAt(0)
	assert.Equal(t, "London", first.Name)
	assert.Equal(t, "8,961,989", m.table.Rows()[0][3])

	m, _ = update(t, m, keyRunes("1"))
	assert.NotContains(t, m.table.Columns()[3].Title, "▼")
	assert.True(t, strings.HasSuffix(m.table.Columns()[0].Title, "▲"))
	assert.Contains(t, m.View(), "Sort: City Name ▲")
}

func TestCityTableModel_OpenAndCopy(t *testing.T) {
	rec := &recorder{}
	m := newLoadedModel(t, newFakeSource(20), rec)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = deliver(t, m, cmd)
	m, cmd = update(t, m, keyRunes("y"))
	m = deliver(t, m, cmd)

	want := "https://openweathermap.org/city/2643743"
	assert.Equal(t, []string{want, want}, rec.urls)
	assert.Contains(t, m.View(), "Copied "+want)

	rec.err = errors.New("no clipboard")
	m, cmd = update(t, m, keyRunes("y"))
	m = deliver(t, m, cmd)
	assert.Contains(t, m.flash, "no clipboard")
}

func TestCityTableModel_WeatherTemplate(t *testing.T) {
	rec := &recorder{}
	m := NewCityTableModel(context.Background(), newFakeSource(5), Options{
		WeatherURLTemplate: "https://example.test/w?id={id}",
		Opener:             rec,
	})
	m = deliver(t, m, m.Init())

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	collect(cmd)
	assert.Equal(t, []string{"https://example.test/w?id=2643743"}, rec.urls)
}

func TestCityTableModel_Quit(t *testing.T) {
	m := newLoadedModel(t, newFakeSource(5), &recorder{})

	m, cmd := update(t, m, keyRunes("q"))
	assert.Equal(t, ViewStateQuitting, m.state)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestCityTableModel_QuitWhileLoading(t *testing.T) {
	m := NewCityTableModel(context.Background(), newFakeSource(5), Options{})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Equal(t, ViewStateQuitting, m.state)
	require.NotNil(t, cmd)
}

func TestTerminalWidth(t *testing.T) {
	assert.Positive(t, TerminalWidth())
}

func TestCityTableModel_SuggestionsBoxed(t *testing.T) {
	src := newFakeSource(20)
	m := newLoadedModel(t, src, &recorder{})

	m, _ = update(t, m, keyRunes("/"))
	for _, r := range "Lon" {
		m, _ = update(t, m, keyRunes(string(r)))
	}
	view := m.View()
	assert.Contains(t, view, "╭")
	assert.Contains(t, view, "London")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.NotContains(t, m.View(), "╭")
}

func TestFormatPopulation(t *testing.T) {
	assert.Equal(t, "8,961,989", FormatPopulation(language.English, 8961989))
	assert.Equal(t, "0", FormatPopulation(language.English, 0))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "London", truncate("London", 10))
	assert.Equal(t, "Lond…", truncate("London", 5))
	assert.Equal(t, "…", truncate("London", 1))
	assert.Equal(t, "München", truncate("München", 7))
}

func TestDetectOutputMode(t *testing.T) {
	env := func(vals map[string]string) func(string) string {
		return func(k string) string { return vals[k] }
	}
	tests := []struct {
		name     string
		plain    bool
		stdout   bool
		stdin    bool
		env      map[string]string
		expected OutputMode
	}{
		{name: "terminal", stdout: true, stdin: true, expected: OutputModeInteractive},
		{name: "piped stdin", stdout: true, expected: OutputModeStyled},
		{name: "piped stdout", stdin: true, expected: OutputModePlain},
		{name: "forced plain", plain: true, stdout: true, stdin: true, expected: OutputModePlain},
		{name: "no color", stdout: true, stdin: true, env: map[string]string{"NO_COLOR": "1"}, expected: OutputModePlain},
		{name: "dumb term", stdout: true, stdin: true, env: map[string]string{"TERM": "dumb"}, expected: OutputModePlain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectOutputMode(tt.plain, tt.stdout, tt.stdin, env(tt.env))
			assert.Equal(t, tt.expected, got)
			assert.NotEmpty(t, got.String())
		})
	}
}
