package citylist

import (
	"slices"

	"github.com/rshade/citytable/internal/cities"
)

// Defaults mirror the records API paging and the search box behavior.
const (
	DefaultPageSize        = 20
	DefaultScrollThreshold = 20
	DefaultSuggestionLimit = 5
)

// Options configures a Controller. Zero fields take the defaults, except
// ScrollThreshold where zero is meaningful and negative selects the default.
type Options struct {
	PageSize        int
	ScrollThreshold int
	SuggestionLimit int
}

// DefaultOptions returns the paging, threshold and suggestion defaults.
func DefaultOptions() Options {
	return Options{
		PageSize:        DefaultPageSize,
		ScrollThreshold: DefaultScrollThreshold,
		SuggestionLimit: DefaultSuggestionLimit,
	}
}

// Viewport describes the scroll position of the list container in whatever
// unit the caller measures: pixels in a browser, rows in a terminal.
type Viewport struct {
	ScrollTop    int
	ClientHeight int
	ScrollHeight int
}

// Controller owns the fetched cities and the UI state derived from them.
// It is not safe for concurrent use; the TUI drives it from its update loop.
type Controller struct {
	opts Options

	cities  []cities.City
	visible []cities.City
	cursor  int
	loading bool
	err     error

	searchTerm  string
	suggestions []cities.City

	sortOrder  map[cities.Column]Direction
	activeSort cities.Column
}

// New creates an empty controller.
func New(opts Options) *Controller {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.ScrollThreshold < 0 {
		opts.ScrollThreshold = DefaultScrollThreshold
	}
	if opts.SuggestionLimit <= 0 {
		opts.SuggestionLimit = DefaultSuggestionLimit
	}
	return &Controller{
		opts:      opts,
		sortOrder: make(map[cities.Column]Direction),
	}
}

// PageSize returns the number of records requested per fetch.
func (c *Controller) PageSize() int {
	return c.opts.PageSize
}

// BeginInitialLoad sets the loading flag and returns the first page request.
//
//nolint:nonamedreturns // Named returns document the request pair.
func (c *Controller) BeginInitialLoad() (offset, limit int) {
	c.loading = true
	c.err = nil
	return 0, c.opts.PageSize
}

// ApplyInitial replaces the list with the first page and moves the cursor
// one page forward.
func (c *Controller) ApplyInitial(records []cities.City) {
	c.cities = slices.Clone(records)
	c.cursor = c.opts.PageSize
	c.loading = false
	c.err = nil
	c.refresh()
}

// NearBottom reports whether the visible bottom edge is within the scroll
// threshold of the content bottom.
func (c *Controller) NearBottom(v Viewport) bool {
	return v.ScrollTop+v.ClientHeight >= v.ScrollHeight-c.opts.ScrollThreshold
}

// ShouldFetchMore reports whether a scroll to v should request the next page.
// Once a short page has been appended the cursor runs ahead of the list and
// no further pages are requested.
func (c *Controller) ShouldFetchMore(v Viewport) bool {
	return c.NearBottom(v) && c.cursor <= len(c.cities)
}

// BeginFetch sets the loading flag and returns the next page request.
// Overlapping fetches are not prevented here; callers that want exclusivity
// check Loading first.
//
//nolint:nonamedreturns // Named returns document the request pair.
func (c *Controller) BeginFetch() (offset, limit int) {
	c.loading = true
	c.err = nil
	return c.cursor, c.opts.PageSize
}

// AppendPage appends a fetched page and advances the cursor by one page.
func (c *Controller) AppendPage(records []cities.City) {
	c.cities = append(c.cities, records...)
	c.cursor += c.opts.PageSize
	c.loading = false
	c.refresh()
}

// FailFetch records a failed request. The loading flag is cleared and the
// cursor stays put, so the next scroll past the threshold asks for the same page.
func (c *Controller) FailFetch(err error) {
	c.loading = false
	c.err = err
}

// Err returns the last fetch error, cleared by the next request.
func (c *Controller) Err() error {
	return c.err
}

// Loading reports whether a fetch is in flight.
func (c *Controller) Loading() bool {
	return c.loading
}

// Cursor returns the dataset offset of the next page.
func (c *Controller) Cursor() int {
	return c.cursor
}

// Len returns the number of fetched cities.
func (c *Controller) Len() int {
	return len(c.cities)
}

// Cities returns a copy of every fetched city in fetch order.
func (c *Controller) Cities() []cities.City {
	return slices.Clone(c.cities)
}

// Visible returns a copy of the filtered, sorted view.
func (c *Controller) Visible() []cities.City {
	return slices.Clone(c.visible)
}

// VisibleLen returns the size of the filtered view.
func (c *Controller) VisibleLen() int {
	return len(c.visible)
}

// VisibleAt returns the i-th visible city.
func (c *Controller) VisibleAt(i int) (cities.City, bool) {
	if i < 0 || i >= len(c.visible) {
		return cities.City{}, false
	}
	return c.visible[i], true
}

// SearchTerm returns the current search input.
func (c *Controller) SearchTerm() string {
	return c.searchTerm
}

// SetSearchTerm updates the term, recomputes suggestions from the full list,
// and refilters the view.
func (c *Controller) SetSearchTerm(term string) {
	c.searchTerm = term
	c.suggestions = Suggest(c.cities, term, c.opts.SuggestionLimit)
	c.refresh()
}

// Suggestions returns the current prefix matches.
func (c *Controller) Suggestions() []cities.City {
	return slices.Clone(c.suggestions)
}

// SelectSuggestion makes the i-th suggestion's name the search term and
// clears the suggestions.
func (c *Controller) SelectSuggestion(i int) bool {
	if i < 0 || i >= len(c.suggestions) {
		return false
	}
	c.searchTerm = c.suggestions[i].Name
	c.suggestions = nil
	c.refresh()
	return true
}

// ClearSuggestions hides the suggestion list without touching the term.
func (c *Controller) ClearSuggestions() {
	c.suggestions = nil
}

// ToggleSort flips col's direction (ascending first), makes it the active
// sort column and reorders the view. Directions of other columns are kept.
func (c *Controller) ToggleSort(col cities.Column) Direction {
	next := c.sortOrder[col].Toggle()
	c.sortOrder[col] = next
	c.activeSort = col
	SortCities(c.visible, col, next)
	return next
}

// SortDirection returns the last direction toggled for col.
func (c *Controller) SortDirection(col cities.Column) (Direction, bool) {
	d, ok := c.sortOrder[col]
	return d, ok
}

// ActiveSort returns the column currently ordering the view.
func (c *Controller) ActiveSort() (cities.Column, Direction, bool) {
	if c.activeSort == "" {
		return "", "", false
	}
	return c.activeSort, c.sortOrder[c.activeSort], true
}

// WeatherURL returns the weather page for the i-th visible city.
func (c *Controller) WeatherURL(template string, i int) (string, bool) {
	city, ok := c.VisibleAt(i)
	if !ok {
		return "", false
	}
	return cities.WeatherURL(template, city.GeonameID), true
}

// refresh rebuilds the visible view from the list, term and active sort.
func (c *Controller) refresh() {
	c.visible = Filter(c.cities, c.searchTerm)
	if c.activeSort != "" {
		SortCities(c.visible, c.activeSort, c.sortOrder[c.activeSort])
	}
}
