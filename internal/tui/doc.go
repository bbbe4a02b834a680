// Package tui implements the interactive city table.
//
// CityTableModel is a Bubble Tea model that shows fetched cities in a
// scrollable table, requests the next page as the cursor nears the bottom,
// filters rows through a search box with prefix suggestions, and sorts by
// column. The list state itself lives in citylist.Controller; this package
// maps terminal events onto it and renders the result.
package tui
