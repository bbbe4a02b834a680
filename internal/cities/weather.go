package cities

import "strings"

// DefaultWeatherURLTemplate links a city to its OpenWeatherMap page.
const DefaultWeatherURLTemplate = "https://openweathermap.org/city/{id}"

// WeatherURL expands template for id. An empty template uses the default.
func WeatherURL(template string, id GeonameID) string {
	if template == "" {
		template = DefaultWeatherURLTemplate
	}
	return strings.ReplaceAll(template, "{id}", id.String())
}
