// Package listview renders a short, selectable list such as the search
// suggestions under the table's search box.
package listview
