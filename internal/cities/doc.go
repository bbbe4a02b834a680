// Package cities models GeoNames city records and fetches them page by page
// from the OpenDataSoft records API.
package cities
