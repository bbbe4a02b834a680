// Package pagination provides the list command's client-side slicing,
// sorting and result metadata.
//
// It contains:
//   - Params: --limit/--offset and --page/--page-size flags with validation
//   - ParseSort: "field" or "field:order" sort expressions
//   - CitySorter: column sorting over fetched cities
//   - Meta: page metadata attached to JSON output
package pagination
