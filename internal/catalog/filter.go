package catalog

import (
	"sort"
	"strings"

	"holdco-backend/internal/model"
)

// SortKey selects the comparator applied after filtering.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortNameAsc   SortKey = "name_asc"
	SortNameDesc  SortKey = "name_desc"
)

// Filter is the set of active predicates for one catalog query. Zero
// values disable the corresponding predicate.
type Filter struct {
	Query    string  // case-insensitive substring over title, description, location, instructor
	Category string  // exact match; "" or "All" passes everything
	MinPrice float64 // inclusive lower bound; 0 disables
	MaxPrice float64 // inclusive upper bound; 0 disables
	Sort     SortKey
}

// Apply derives the filtered, sorted view of items. It never mutates the
// input slice; ties keep input order (stable sort), so applying the same
// filter twice yields the same result.
func Apply(items []model.Listing, f Filter) []model.Listing {
	out := make([]model.Listing, 0, len(items))
	for _, it := range items {
		if !matchText(it, f.Query) {
			continue
		}
		if !matchCategory(it, f.Category) {
			continue
		}
		if !matchPrice(it, f.MinPrice, f.MaxPrice) {
			continue
		}
		out = append(out, it)
	}
	sortListings(out, f.Sort)
	return out
}

// matchText is a case-insensitive substring match over the display fields.
// The empty query matches everything.
func matchText(it model.Listing, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, field := range []string{it.Title, it.Description, it.Location, it.Instructor} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// matchCategory is an exact, case-sensitive match. The empty string and
// the "All" sentinel pass every item.
func matchCategory(it model.Listing, category string) bool {
	if category == "" || category == model.CategoryAll {
		return true
	}
	return it.Category == category
}

// matchPrice is an inclusive numeric range check. Listings without a
// usable price (zero) fail closed whenever a bound is active: they are
// excluded silently rather than surfacing an error.
func matchPrice(it model.Listing, min, max float64) bool {
	if min == 0 && max == 0 {
		return true
	}
	if it.Price <= 0 {
		return false
	}
	if min > 0 && it.Price < min {
		return false
	}
	if max > 0 && it.Price > max {
		return false
	}
	return true
}

func sortListings(items []model.Listing, key SortKey) {
	switch key {
	case SortNewest:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		})
	case SortPriceAsc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Price < items[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Price > items[j].Price
		})
	case SortNameAsc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Title < items[j].Title
		})
	case SortNameDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Title > items[j].Title
		})
	}
	// Unknown or empty key keeps input order.
}

// Page slices a filtered result for pagination and reports the total
// count before slicing. Offset past the end yields an empty page.
func Page(items []model.Listing, limit, offset int) (page []model.Listing, total int) {
	total = len(items)
	if offset >= total {
		return []model.Listing{}, total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return items[offset:end], total
}

// Bucket maps a price-bucket label to its numeric range. Labels are the
// ones the catalog pages render ("Under $100", "$100-$500", "Over $500");
// an unknown label disables the price predicate.
func Bucket(label string) (min, max float64) {
	switch label {
	case "under_100":
		return 0.01, 100
	case "100_500":
		return 100, 500
	case "over_500":
		return 500, 0
	case "under_100k":
		return 0.01, 100_000
	case "100k_500k":
		return 100_000, 500_000
	case "over_500k":
		return 500_000, 0
	}
	return 0, 0
}

// Categories returns the distinct categories present in items, sorted,
// with the "All" sentinel first. Used for filter dropdowns.
func Categories(items []model.Listing) []string {
	seen := map[string]bool{}
	for _, it := range items {
		if it.Category != "" {
			seen[it.Category] = true
		}
	}
	cats := make([]string, 0, len(seen)+1)
	for c := range seen {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return append([]string{model.CategoryAll}, cats...)
}
