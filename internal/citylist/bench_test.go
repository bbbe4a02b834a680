package citylist_test

import (
	"fmt"
	"testing"

	"github.com/rshade/citytable/internal/cities"
	"github.com/rshade/citytable/internal/citylist"
)

func syntheticCities(n int) []cities.City {
	out := make([]cities.City, n)
	for i := range out {
		out[i] = cities.City{
			GeonameID:   cities.GeonameID(i + 1),
			Name:        fmt.Sprintf("City %05d", n-i),
			CountryName: fmt.Sprintf("Country %03d", i%250),
			Timezone:    "Europe/London",
			Population:  int64((i * 7919) % 1_000_000),
		}
	}
	return out
}

// BenchmarkFilter measures substring search over a fully loaded list.
func BenchmarkFilter(b *testing.B) {
	for _, size := range []int{1_000, 10_000} {
		list := syntheticCities(size)
		b.Run(fmt.Sprintf("cities=%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_ = citylist.Filter(list, "ity 00")
			}
		})
	}
}

// BenchmarkSortCities measures a population sort, the only numeric column.
func BenchmarkSortCities(b *testing.B) {
	for _, size := range []int{1_000, 10_000} {
		src := syntheticCities(size)
		b.Run(fmt.Sprintf("cities=%d", size), func(b *testing.B) {
			b.ReportAllocs()
			work := make([]cities.City, len(src))
			for b.Loop() {
				copy(work, src)
				citylist.SortCities(work, cities.ColumnPopulation, citylist.Ascending)
			}
		})
	}
}
