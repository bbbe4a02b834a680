package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Color palette.
const (
	ColorHeader   = lipgloss.Color("39")
	ColorLabel    = lipgloss.Color("245")
	ColorValue    = lipgloss.Color("255")
	ColorInfo     = lipgloss.Color("86")
	ColorSubtle   = lipgloss.Color("241")
	ColorError    = lipgloss.Color("196")
	ColorSelected = lipgloss.Color("57")
	ColorBorder   = lipgloss.Color("63")
)

// Shared styles.
//
//nolint:gochecknoglobals // Styles are immutable values shared by every view.
var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	LabelStyle  = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle  = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	InfoStyle   = lipgloss.NewStyle().Foreground(ColorInfo)
	SubtleStyle = lipgloss.NewStyle().Foreground(ColorSubtle)
	ErrorStyle  = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	BoxStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorHeader).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(ColorBorder).
				Padding(0, 1)
	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorValue).
				Background(ColorSelected).
				Bold(true)

	SuggestionStyle         = lipgloss.NewStyle().Foreground(ColorLabel).PaddingLeft(2)
	SuggestionSelectedStyle = lipgloss.NewStyle().Foreground(ColorValue).Background(ColorSelected).PaddingLeft(2)
)

// ViewState is the top-level screen the model is showing.
type ViewState int

// View states.
const (
	ViewStateLoading ViewState = iota
	ViewStateList
	ViewStateQuitting
)

// Key names shared by the handlers.
const (
	keyQuit     = "q"
	keyCtrlC    = "ctrl+c"
	keyEnter    = "enter"
	keyEsc      = "esc"
	keySlash    = "/"
	keyY        = "y"
	keyTab      = "tab"
	keyShiftTab = "shift+tab"
)

// Layout constants.
const (
	defaultWidth  = 100
	defaultHeight = 30
	minHeight     = 5
	// chromeHeight is the rows taken by the title, banner, status and help lines.
	chromeHeight  = 7
	borderPadding = 2
)

// LoadingState wraps the spinner shown while a fetch is in flight.
type LoadingState struct {
	spinner spinner.Model
	message string
}

// NewLoadingState creates a dot spinner with the default message.
func NewLoadingState() *LoadingState {
	return &LoadingState{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(InfoStyle),
		),
		message: "Loading...",
	}
}

// Init starts the spinner.
func (l *LoadingState) Init() tea.Cmd {
	return l.spinner.Tick
}

// Tick schedules the next spinner frame.
func (l *LoadingState) Tick() tea.Msg {
	return l.spinner.Tick()
}

// Update advances the spinner on its tick messages.
func (l *LoadingState) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// Indicator returns the spinner frame and message on one line.
func (l *LoadingState) Indicator() string {
	return fmt.Sprintf("%s %s", l.spinner.View(), l.message)
}

// View renders the full-screen loading state.
func (l *LoadingState) View() string {
	return fmt.Sprintf("\n %s %s\n\n", l.spinner.View(), l.message)
}
