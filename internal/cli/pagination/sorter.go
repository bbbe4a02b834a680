package pagination

import (
	"fmt"

	"github.com/rshade/citytable/internal/cities"
	"github.com/rshade/citytable/internal/citylist"
)

// CitySorter sorts cities by a table column.
type CitySorter struct{}

// NewCitySorter creates a CitySorter.
func NewCitySorter() *CitySorter {
	return &CitySorter{}
}

// ValidFields returns the accepted sort field names.
func (s *CitySorter) ValidFields() []string {
	fields := make([]string, len(cities.Columns))
	for i, c := range cities.Columns {
		fields[i] = string(c)
	}
	return fields
}

// Sort returns a sorted copy of list according to a sort expression. An
// empty expression returns list unchanged.
func (s *CitySorter) Sort(list []cities.City, expr string) ([]cities.City, error) {
	if expr == "" {
		return list, nil
	}
	field, order, err := ParseSort(expr)
	if err != nil {
		return nil, err
	}
	col, err := cities.ParseColumn(field)
	if err != nil {
		return nil, fmt.Errorf("%w (valid: %v): %w", ErrInvalidSortField, s.ValidFields(), err)
	}

	sorted := make([]cities.City, len(list))
	copy(sorted, list)

	dir := citylist.Ascending
	if order == SortOrderDesc {
		dir = citylist.Descending
	}
	citylist.SortCities(sorted, col, dir)
	return sorted, nil
}
