package cities

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Column identifies a sortable table column by its dataset field name.
type Column string

// Columns shown in the table, in display order.
const (
	ColumnName       Column = "name"
	ColumnCountry    Column = "cou_name_en"
	ColumnTimezone   Column = "timezone"
	ColumnPopulation Column = "population"
)

// Columns lists the table columns in display order.
//
//nolint:gochecknoglobals // Fixed lookup table.
var Columns = []Column{ColumnName, ColumnCountry, ColumnTimezone, ColumnPopulation}

// Title returns the header label for the column.
func (c Column) Title() string {
	switch c {
	case ColumnName:
		return "City Name"
	case ColumnCountry:
		return "Country"
	case ColumnTimezone:
		return "Timezone"
	case ColumnPopulation:
		return "Population"
	default:
		return string(c)
	}
}

// IsNumeric reports whether the column holds integer values.
func (c Column) IsNumeric() bool {
	return c == ColumnPopulation
}

// ParseColumn resolves a field name or a friendly alias ("country", "tz", "pop").
func ParseColumn(s string) (Column, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name", "city":
		return ColumnName, nil
	case "cou_name_en", "country":
		return ColumnCountry, nil
	case "timezone", "tz":
		return ColumnTimezone, nil
	case "population", "pop":
		return ColumnPopulation, nil
	default:
		return "", fmt.Errorf("unknown column %q", s)
	}
}

// Coordinates is the dataset's geo point.
type Coordinates struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// City is one GeoNames record. Records are treated as immutable once fetched.
type City struct {
	GeonameID   GeonameID    `json:"geoname_id"`
	Name        string       `json:"name"`
	ASCIIName   string       `json:"ascii_name,omitempty"`
	CountryCode string       `json:"country_code,omitempty"`
	CountryName string       `json:"cou_name_en"`
	Timezone    string       `json:"timezone"`
	Population  int64        `json:"population"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// Field returns the column's value coerced to text.
func (c City) Field(col Column) string {
	switch col {
	case ColumnName:
		return c.Name
	case ColumnCountry:
		return c.CountryName
	case ColumnTimezone:
		return c.Timezone
	case ColumnPopulation:
		return strconv.FormatInt(c.Population, 10)
	default:
		return ""
	}
}

// Compare orders a and b by col: numerically for population, by text otherwise.
// It returns a negative number, zero, or a positive number.
func Compare(a, b City, col Column) int {
	if col.IsNumeric() {
		switch {
		case a.Population < b.Population:
			return -1
		case a.Population > b.Population:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a.Field(col), b.Field(col))
}

// GeonameID is the record identifier. The API serves it as a JSON string;
// numbers are accepted too.
type GeonameID int64

// UnmarshalJSON accepts 2643743 and "2643743".
func (id *GeonameID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}
	s := string(bytes.Trim(data, `"`))
	if s == "" {
		*id = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid geoname_id %s: %w", data, err)
	}
	*id = GeonameID(n)
	return nil
}

// MarshalJSON writes the identifier as a number.
func (id GeonameID) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(id))
}

// String returns the decimal identifier.
func (id GeonameID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Page is one response from the records endpoint.
type Page struct {
	TotalCount int    `json:"total_count"`
	Results    []City `json:"results"`
}
