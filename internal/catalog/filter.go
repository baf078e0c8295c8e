package catalog

import (
	"strings"

	"github.com/primehomes/primehomes/internal/domain"
	"github.com/spf13/cast"
)

// Wildcard selector accepted by kind and category criteria
const FilterAll = "all"

// FeaturedCap limits how many featured listings the partition returns
const FeaturedCap = 3

// FilterCriteria holds the structural filter state. String price
// bounds are parsed leniently: empty or unparsable values disable the
// bound rather than raising an error.
type FilterCriteria struct {
	Kind     string `json:"kind" query:"kind"`
	Category string `json:"category" query:"category"`
	City     string `json:"city" query:"city"`
	MinPrice string `json:"min_price" query:"min_price"`
	MaxPrice string `json:"max_price" query:"max_price"`
}

// priceBound parses a bound string, returning ok=false when the bound
// is absent or unparsable and must be ignored.
func priceBound(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := cast.ToFloat64E(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

func matchesStructural(l domain.Listing, c FilterCriteria) bool {
	if c.Kind != "" && c.Kind != FilterAll && l.Kind != c.Kind {
		return false
	}
	if c.Category != "" && c.Category != FilterAll && l.Category != c.Category {
		return false
	}
	if c.City != "" && l.City != c.City {
		return false
	}
	if min, ok := priceBound(c.MinPrice); ok && l.Price < min {
		return false
	}
	if max, ok := priceBound(c.MaxPrice); ok && l.Price > max {
		return false
	}
	return true
}

func matchesQuery(l domain.Listing, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(l.Title), q) ||
		strings.Contains(strings.ToLower(l.Description), q) ||
		strings.Contains(strings.ToLower(l.Location), q) ||
		strings.Contains(strings.ToLower(l.City), q) ||
		strings.Contains(strings.ToLower(l.Category), q)
}

// Apply filters listings against the criteria and free-text query,
// preserving input order. A non-empty query replaces the structural
// predicate entirely: text search overrides filtering instead of
// narrowing it. That asymmetry is intentional and kept as-is.
func Apply(listings []domain.Listing, criteria FilterCriteria, query string) []domain.Listing {
	query = strings.TrimSpace(query)
	result := make([]domain.Listing, 0, len(listings))
	for _, l := range listings {
		if query != "" {
			if matchesQuery(l, query) {
				result = append(result, l)
			}
			continue
		}
		if matchesStructural(l, criteria) {
			result = append(result, l)
		}
	}
	return result
}

// Partition splits a filtered result into the featured group (flag
// set, first FeaturedCap entries) and the regular group (flag unset).
// A listing never appears in both groups.
func Partition(listings []domain.Listing) (featured, regular []domain.Listing) {
	featured = make([]domain.Listing, 0, FeaturedCap)
	regular = make([]domain.Listing, 0, len(listings))
	for _, l := range listings {
		if l.Featured {
			if len(featured) < FeaturedCap {
				featured = append(featured, l)
			}
			continue
		}
		regular = append(regular, l)
	}
	return featured, regular
}
