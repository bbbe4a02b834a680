package cities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCity_Decode(t *testing.T) {
	raw := `{
		"geoname_id": "2643743",
		"name": "London",
		"ascii_name": "London",
		"country_code": "GB",
		"cou_name_en": "United Kingdom",
		"timezone": "Europe/London",
		"population": 8961989,
		"coordinates": {"lon": -0.12574, "lat": 51.50853}
	}`

	var c City
	require.NoError(t, json.Unmarshal([]byte(raw), &c))
	assert.Equal(t, GeonameID(2643743), c.GeonameID)
	assert.Equal(t, "United Kingdom", c.CountryName)
	assert.Equal(t, int64(8961989), c.Population)
	require.NotNil(t, c.Coordinates)
	assert.InDelta(t, 51.50853, c.Coordinates.Lat, 1e-9)
}

func TestGeonameID_Unmarshal(t *testing.T) {
	tests := []struct {
		in      string
		want    GeonameID
		wantErr bool
	}{
		{`123`, 123, false},
		{`"456"`, 456, false},
		{`null`, 0, false},
		{`""`, 0, false},
		{`"abc"`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var id GeonameID
			err := json.Unmarshal([]byte(tt.in), &id)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}

	out, err := json.Marshal(GeonameID(42))
	require.NoError(t, err)
	assert.Equal(t, "42", string(out))
}

func TestCity_Field(t *testing.T) {
	c := City{Name: "Paris", CountryName: "France", Timezone: "Europe/Paris", Population: 2138551}
	assert.Equal(t, "Paris", c.Field(ColumnName))
	assert.Equal(t, "France", c.Field(ColumnCountry))
	assert.Equal(t, "Europe/Paris", c.Field(ColumnTimezone))
	assert.Equal(t, "2138551", c.Field(ColumnPopulation))
	assert.Empty(t, c.Field(Column("unknown")))
}

func TestCompare(t *testing.T) {
	small := City{Name: "Zurich", Population: 9}
	large := City{Name: "Amsterdam", Population: 10}

	// Numeric, not "10" < "9".
	assert.Negative(t, Compare(small, large, ColumnPopulation))
	assert.Positive(t, Compare(large, small, ColumnPopulation))
	assert.Zero(t, Compare(small, small, ColumnPopulation))

	assert.Positive(t, Compare(small, large, ColumnName))
}

func TestParseColumn(t *testing.T) {
	for in, want := range map[string]Column{
		"name": ColumnName, "City": ColumnName, "country": ColumnCountry,
		"cou_name_en": ColumnCountry, "tz": ColumnTimezone, "POPULATION": ColumnPopulation,
	} {
		got, err := ParseColumn(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseColumn("elevation")
	assert.Error(t, err)
}

func TestColumn_Title(t *testing.T) {
	assert.Equal(t, "City Name", ColumnName.Title())
	assert.Equal(t, "Population", ColumnPopulation.Title())
	assert.True(t, ColumnPopulation.IsNumeric())
	assert.False(t, ColumnTimezone.IsNumeric())
}

func TestWeatherURL(t *testing.T) {
	assert.Equal(t, "https://openweathermap.org/city/2643743", WeatherURL("", 2643743))
	assert.Equal(t, "https://example.test/w?id=7", WeatherURL("https://example.test/w?id={id}", 7))
}
