package gallery

import (
	"sort"
	"strings"
)

const (
	// DefaultPerPage is used when per_page is absent or out of range.
	DefaultPerPage = 24

	// MaxPerPage is the largest accepted page size.
	MaxPerPage = 100
)

// FilterSpec holds the optional filter/sort/pagination parameters of a
// listing request. Zero values mean "no constraint" on that dimension;
// YearFrom/YearTo use pointers because 0 is a representable bound.
type FilterSpec struct {
	Query    string
	YearFrom *int
	YearTo   *int
	Medium   string
	Page     int
	PerPage  int
}

// Pagination describes the page window of a query result.
type Pagination struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

// PageResult is the outcome of a collection query: the sliced page,
// the distinct medium list from the unfiltered collection, and the
// pagination metadata.
type PageResult struct {
	Artworks   []Artwork
	Mediums    []string
	Pagination Pagination
}

// Query filters and paginates the collection according to spec.
//
// Invalid pagination input never errors: per_page outside [1,100]
// resets to DefaultPerPage, page below 1 resets to 1, and the final
// page is clamped into the valid range. The medium list is always
// computed from the unfiltered collection so UI filter options do not
// shrink while a filter is active.
func Query(all []Artwork, spec FilterSpec) PageResult {
	perPage := spec.PerPage
	if perPage < 1 || perPage > MaxPerPage {
		perPage = DefaultPerPage
	}
	page := spec.Page
	if page < 1 {
		page = 1
	}

	items := all

	if q := strings.ToLower(strings.TrimSpace(spec.Query)); q != "" {
		items = filter(items, func(a Artwork) bool {
			return strings.Contains(a.searchText(), q)
		})
	}

	if spec.YearFrom != nil {
		items = filter(items, func(a Artwork) bool {
			year, ok := a.Year()
			return ok && year >= *spec.YearFrom
		})
	}

	if spec.YearTo != nil {
		items = filter(items, func(a Artwork) bool {
			year, ok := a.Year()
			return ok && year <= *spec.YearTo
		})
	}

	if m := normalizeMedium(spec.Medium); m != "" {
		items = filter(items, func(a Artwork) bool {
			return normalizeMedium(a.Medium) == m
		})
	}

	totalItems := len(items)
	totalPages := (totalItems + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if totalItems == 0 {
		page = 1
	} else if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > totalItems {
		start = totalItems
	}
	if end > totalItems {
		end = totalItems
	}

	return PageResult{
		Artworks: items[start:end],
		Mediums:  Mediums(all),
		Pagination: Pagination{
			Page:       page,
			PerPage:    perPage,
			TotalItems: totalItems,
			TotalPages: totalPages,
			HasPrev:    page > 1,
			HasNext:    page < totalPages,
		},
	}
}

// Mediums returns the distinct sorted set of non-empty trimmed medium
// values across the collection.
func Mediums(all []Artwork) []string {
	seen := make(map[string]struct{})
	for _, a := range all {
		m := strings.TrimSpace(a.Medium)
		if m == "" {
			continue
		}
		seen[m] = struct{}{}
	}

	mediums := make([]string, 0, len(seen))
	for m := range seen {
		mediums = append(mediums, m)
	}
	sort.Strings(mediums)
	return mediums
}

func normalizeMedium(m string) string {
	return strings.ToLower(strings.TrimSpace(m))
}

// filter preserves backend-defined order.
func filter(items []Artwork, keep func(Artwork) bool) []Artwork {
	out := make([]Artwork, 0, len(items))
	for _, a := range items {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}
