package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"

	"github.com/rshade/citytable/internal/cities"
	"github.com/rshade/citytable/internal/cli/pagination"
	"github.com/rshade/citytable/internal/tui"
)

// Output formats accepted by --output.
const (
	OutputTable  = "table"
	OutputJSON   = "json"
	OutputNDJSON = "ndjson"
)

// tabPadding is the column gap for tabular output.
const tabPadding = 2

// cityRecord is a city plus its weather page, as printed by list.
type cityRecord struct {
	cities.City

	WeatherURL string `json:"weather_url"`
}

// listResult is the JSON document printed by list --output json.
type listResult struct {
	Search  string          `json:"search,omitempty"`
	Sort    string          `json:"sort,omitempty"`
	Meta    pagination.Meta `json:"meta"`
	Results []cityRecord    `json:"results"`
}

func isValidOutputFormat(format string) bool {
	switch format {
	case OutputTable, OutputJSON, OutputNDJSON:
		return true
	default:
		return false
	}
}

func toRecords(list []cities.City, template string) []cityRecord {
	out := make([]cityRecord, len(list))
	for i, c := range list {
		out[i] = cityRecord{City: c, WeatherURL: cities.WeatherURL(template, c.GeonameID)}
	}
	return out
}

// renderCities writes result in the requested format. mode only affects the
// table format.
func renderCities(w io.Writer, format string, mode tui.OutputMode, result listResult) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case OutputNDJSON:
		enc := json.NewEncoder(w)
		for _, r := range result.Results {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	case OutputTable:
		return renderTable(w, mode, result)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func renderTable(w io.Writer, mode tui.OutputMode, result listResult) error {
	if mode != tui.OutputModePlain {
		summary := fmt.Sprintf("%d shown, %d fetched", len(result.Results), result.Meta.TotalItems)
		if result.Search != "" {
			summary += fmt.Sprintf(", search %q", result.Search)
		}
		fmt.Fprintln(w, tui.HeaderStyle.Render("CITIES")+"  "+tui.SubtleStyle.Render(summary))
	}

	if len(result.Results) == 0 {
		fmt.Fprintln(w, "No cities found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	headers := []string{"Geoname ID", "City Name", "Country", "Timezone", "Population"}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	underline := make([]string, len(headers))
	for i, h := range headers {
		underline[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(tw, strings.Join(underline, "\t"))

	for _, r := range result.Results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.GeonameID, r.Name, r.CountryName, r.Timezone,
			tui.FormatPopulation(language.English, r.Population))
	}
	return tw.Flush()
}
