package catalog

import (
	"sort"
	"strings"

	"storefront-web/internal/models"
)

// Filter returns the subsequence of products whose name, SKU or
// description contains query case-insensitively. A blank query returns
// the input unchanged, preserving original order.
func Filter(products []models.Product, query string) []models.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return products
	}

	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.SKU), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// PageCount returns ceil(total/pageSize), with a minimum of 1 so an
// empty collection still renders as "page 1 of 1".
func PageCount(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// Paginate returns the contiguous slice [(page-1)*pageSize, page*pageSize)
// clipped to the collection bounds. It trusts page to be within
// [1, PageCount]; callers clamp out-of-range requests.
func Paginate(items []models.Product, pageSize, page int) []models.Product {
	if pageSize <= 0 || page < 1 {
		return []models.Product{}
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []models.Product{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// ClampPage forces a requested page number into [1, pageCount].
func ClampPage(page, pageCount int) int {
	if page < 1 {
		return 1
	}
	if page > pageCount {
		return pageCount
	}
	return page
}

// PageAfterQueryChange resets the active page to 1 whenever the filter
// query changes; an unchanged query keeps the requested page.
func PageAfterQueryChange(prevQuery, query string, requested int) int {
	if strings.TrimSpace(prevQuery) != strings.TrimSpace(query) {
		return 1
	}
	return requested
}

// Sort orders available on storefront skins.
const (
	SortNewest    = "nuevo"
	SortPriceAsc  = "precio-asc"
	SortPriceDesc = "precio-desc"
	SortName      = "nombre"
)

// Sorted returns a copy of products in the requested order. Unknown or
// "nuevo" orders keep the collection as fetched.
func Sorted(products []models.Product, order string) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)

	switch order {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortName:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	}
	return out
}
