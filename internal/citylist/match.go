package citylist

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/rshade/citytable/internal/cities"
)

// Filter returns the cities whose name contains term, ignoring case, in
// their original order. An empty term returns every city.
func Filter(list []cities.City, term string) []cities.City {
	folder := cases.Fold()
	needle := folder.String(term)

	out := make([]cities.City, 0, len(list))
	for _, c := range list {
		if strings.Contains(folder.String(c.Name), needle) {
			out = append(out, c)
		}
	}
	return out
}

// Suggest returns up to limit cities whose name starts with term, ignoring
// case. An empty term yields no suggestions.
func Suggest(list []cities.City, term string, limit int) []cities.City {
	if term == "" || limit <= 0 {
		return nil
	}

	folder := cases.Fold()
	prefix := folder.String(term)

	var out []cities.City
	for _, c := range list {
		if strings.HasPrefix(folder.String(c.Name), prefix) {
			out = append(out, c)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}
