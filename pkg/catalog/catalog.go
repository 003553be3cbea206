// Package catalog filters, sorts and pages product lists.
//
// Facets combine with AND; the values selected within one facet combine with OR.
// A facet with no selected values matches everything.
package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// Facet names one filterable product dimension.
type Facet string

const (
	FacetCategory  Facet = "category"
	FacetType      Facet = "type"
	FacetMaterial  Facet = "material"
	FacetStone     Facet = "stone"
	FacetMovement  Facet = "movement"
	FacetCaseSize  Facet = "case_size"
	FacetOccasion  Facet = "occasion"
	FacetStyle     Facet = "style"
	FacetRecipient Facet = "recipient"
)

// Facets lists every supported facet in display order.
var Facets = []Facet{
	FacetCategory,
	FacetType,
	FacetMaterial,
	FacetStone,
	FacetMovement,
	FacetCaseSize,
	FacetOccasion,
	FacetStyle,
	FacetRecipient,
}

// ParseFacet reports whether name is a supported facet.
func ParseFacet(name string) (Facet, bool) {
	for _, f := range Facets {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// Item is anything the catalog can filter and sort.
type Item interface {
	CatalogName() string
	CatalogPrice() decimal.Decimal
	CatalogCreatedAt() time.Time
	// Attribute returns the item's values for a facet, or nil when it has none.
	Attribute(f Facet) []string
}

// SearchScope selects the fields free-text search looks at.
type SearchScope int

const (
	SearchName SearchScope = iota
	SearchNameOrCategory
)

// Query is one browse request. The zero value matches everything in catalog order.
type Query struct {
	Facets map[Facet][]string
	Price  PriceRange
	Search string
	Scope  SearchScope
	Sort   SortKey
}

// Select adds values to a facet selection, ignoring blanks.
func (q *Query) Select(f Facet, values ...string) {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if q.Facets == nil {
			q.Facets = make(map[Facet][]string)
		}
		q.Facets[f] = append(q.Facets[f], v)
	}
}

// Matches reports whether item passes every facet, the price range and the search.
func (q Query) Matches(item Item) bool {
	for facet, selected := range q.Facets {
		if len(selected) == 0 {
			continue
		}
		if !anyEqualFold(item.Attribute(facet), selected) {
			return false
		}
	}

	if !q.Price.Contains(item.CatalogPrice()) {
		return false
	}

	return q.matchesSearch(item)
}

func (q Query) matchesSearch(item Item) bool {
	keyword := strings.TrimSpace(q.Search)
	if keyword == "" {
		return true
	}

	fold := cases.Fold()
	keyword = fold.String(keyword)
	if strings.Contains(fold.String(item.CatalogName()), keyword) {
		return true
	}
	if q.Scope == SearchNameOrCategory {
		for _, category := range item.Attribute(FacetCategory) {
			if strings.Contains(fold.String(category), keyword) {
				return true
			}
		}
	}
	return false
}

// Filter returns the items matching q in their original order.
func Filter[T Item](items []T, q Query) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if q.Matches(item) {
			out = append(out, item)
		}
	}
	return out
}

// Apply filters then sorts. The input slice is not modified.
func Apply[T Item](items []T, q Query) []T {
	out := Filter(items, q)
	Sort(out, q.Sort)
	return out
}

// DistinctValues collects the values present for each facet, in first-seen order.
func DistinctValues[T Item](items []T) map[Facet][]string {
	values := make(map[Facet][]string, len(Facets))
	for _, f := range Facets {
		seen := make(map[string]struct{})
		list := []string{}
		for _, item := range items {
			for _, v := range item.Attribute(f) {
				if v == "" {
					continue
				}
				if _, ok := seen[v]; ok {
					continue
				}
				seen[v] = struct{}{}
				list = append(list, v)
			}
		}
		values[f] = list
	}
	return values
}

func anyEqualFold(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}
