// Package citylist holds the state behind the city table: the fetched
// records, the fetch cursor, the loading flag, the search term with its
// suggestions, and the per-column sort directions.
//
// The Controller performs no I/O. A caller (the TUI or a CLI command) asks it
// which page to fetch, performs the request, and reports the outcome back
// with ApplyInitial, AppendPage or FailFetch. Every mutation recomputes the
// visible view so readers always see a consistent filtered and sorted slice.
package citylist
