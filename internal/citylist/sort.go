package citylist

import (
	"sort"

	"github.com/rshade/citytable/internal/cities"
)

// Direction is a column sort direction.
type Direction string

// Sort directions.
const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Toggle flips the direction. The zero value toggles to Ascending.
func (d Direction) Toggle() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// Arrow returns a header marker for the direction.
func (d Direction) Arrow() string {
	switch d {
	case Ascending:
		return "▲"
	case Descending:
		return "▼"
	default:
		return ""
	}
}

// SortCities sorts list in place by col in direction dir.
func SortCities(list []cities.City, col cities.Column, dir Direction) {
	sort.SliceStable(list, func(i, j int) bool {
		if dir == Descending {
			return cities.Compare(list[j], list[i], col) < 0
		}
		return cities.Compare(list[i], list[j], col) < 0
	})
}
