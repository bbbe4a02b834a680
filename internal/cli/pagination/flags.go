package pagination

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/citytable/internal/cities"
)

// Pagination defaults and limits.
const (
	DefaultLimit     = 0
	DefaultOffset    = 0
	DefaultSortOrder = SortOrderAsc
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
)

// Validation errors.
var (
	ErrNegativeLimit        = errors.New("limit cannot be negative")
	ErrNegativeOffset       = errors.New("offset cannot be negative")
	ErrNegativePage         = errors.New("page cannot be negative")
	ErrNegativePageSize     = errors.New("page-size cannot be negative")
	ErrMixedPaginationModes = errors.New("cannot use both --offset and --page")
	ErrPageWithoutSize      = errors.New("--page requires --page-size")
	ErrPageSizeWithoutPage  = errors.New("--page-size requires --page")
	ErrPageOutOfRange       = errors.New("--page times --page-size is too large")
	ErrInvalidSortFormat    = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'population:desc')")
	ErrEmptySortField       = errors.New("sort field cannot be empty")
	ErrInvalidSortOrder     = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortField     = errors.New("invalid sort field")
)

// Params holds the list command's slicing flags. Two modes are supported and
// are mutually exclusive:
//   - Offset-based: --limit and --offset
//   - Page-based: --page and --page-size
//
// A zero Limit means no limit.
type Params struct {
	Limit    int
	Offset   int
	Page     int
	PageSize int
	Sort     string
}

// AddFlags registers the pagination flags on cmd, bound to p.
func (p *Params) AddFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.Limit, "limit", DefaultLimit, "maximum number of rows to print (0 for all)")
	cmd.Flags().IntVar(&p.Offset, "offset", DefaultOffset, "number of rows to skip")
	cmd.Flags().IntVar(&p.Page, "page", 0, "1-based page number (requires --page-size)")
	cmd.Flags().IntVar(&p.PageSize, "page-size", 0, "rows per page (requires --page)")
	cmd.Flags().StringVar(&p.Sort, "sort", "", "sort by column, as field or field:order (name, country, timezone, population)")
}

// Validate checks bounds and that only one pagination mode is in use.
func (p Params) Validate() error {
	switch {
	case p.Limit < 0:
		return ErrNegativeLimit
	case p.Offset < 0:
		return ErrNegativeOffset
	case p.Page < 0:
		return ErrNegativePage
	case p.PageSize < 0:
		return ErrNegativePageSize
	case p.Page > 0 && p.Offset > 0:
		return ErrMixedPaginationModes
	case p.Page > 0 && p.PageSize == 0:
		return ErrPageWithoutSize
	case p.Page == 0 && p.PageSize > 0:
		return ErrPageSizeWithoutPage
	case p.Page > 0 && !pageOffsetFits(p.Page, p.PageSize):
		return fmt.Errorf("%w: page %d, page-size %d", ErrPageOutOfRange, p.Page, p.PageSize)
	}
	if p.Sort != "" {
		field, _, err := ParseSort(p.Sort)
		if err != nil {
			return err
		}
		if _, err := cities.ParseColumn(field); err != nil {
			return fmt.Errorf("%w (valid: %v): %w", ErrInvalidSortField, NewCitySorter().ValidFields(), err)
		}
	}
	return nil
}

// pageOffsetFits reports whether (page-1)*size is representable as an int.
func pageOffsetFits(page, size int) bool {
	return size == 0 || page-1 <= math.MaxInt/size
}

// IsPageBased reports whether --page is in use.
func (p Params) IsPageBased() bool {
	return p.Page > 0
}

// OffsetLimit returns the effective offset and limit for either mode.
//
//nolint:nonamedreturns // Named returns document the pair.
func (p Params) OffsetLimit() (offset, limit int) {
	if p.IsPageBased() {
		if !pageOffsetFits(p.Page, p.PageSize) {
			return math.MaxInt, p.PageSize
		}
		return (p.Page - 1) * p.PageSize, p.PageSize
	}
	return p.Offset, p.Limit
}

// Apply returns the slice of items selected by p. Out-of-range offsets yield
// an empty slice.
func Apply[T any](p Params, items []T) []T {
	offset, limit := p.OffsetLimit()
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && limit < end-offset {
		end = offset + limit
	}
	return items[offset:end]
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses "field" or "field:order". The order defaults to asc.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(expr string) (field, order string, err error) {
	parts := strings.Split(expr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = DefaultSortOrder
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, expr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}
	return field, order, nil
}
