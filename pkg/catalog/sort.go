package catalog

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey orders a filtered result.
type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortNewest    SortKey = "newest"
	SortName      SortKey = "name"
)

// SortKeys lists the canonical keys.
var SortKeys = []SortKey{SortFeatured, SortPriceAsc, SortPriceDesc, SortNewest, SortName}

var ErrUnknownSort = errors.New("unknown sort key")

var sortAliases = map[string]SortKey{
	"":           SortFeatured,
	"featured":   SortFeatured,
	"price_asc":  SortPriceAsc,
	"low":        SortPriceAsc,
	"priceLow":   SortPriceAsc,
	"price_desc": SortPriceDesc,
	"high":       SortPriceDesc,
	"priceHigh":  SortPriceDesc,
	"newest":     SortNewest,
	"name":       SortName,
	"az":         SortName,
}

// ParseSort accepts canonical keys and the storefront's short aliases.
func ParseSort(s string) (SortKey, error) {
	key, ok := sortAliases[s]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSort, s)
	}
	return key, nil
}

// Sort reorders items in place. The sort is stable, so equal keys keep catalog order.
func Sort[T Item](items []T, key SortKey) {
	switch key {
	case SortPriceAsc:
		slices.SortStableFunc(items, func(a, b T) int {
			return a.CatalogPrice().Cmp(b.CatalogPrice())
		})
	case SortPriceDesc:
		slices.SortStableFunc(items, func(a, b T) int {
			return b.CatalogPrice().Cmp(a.CatalogPrice())
		})
	case SortNewest:
		slices.SortStableFunc(items, func(a, b T) int {
			return b.CatalogCreatedAt().Compare(a.CatalogCreatedAt())
		})
	case SortName:
		// Collators keep internal buffers and are not safe to share.
		c := collate.New(language.English)
		slices.SortStableFunc(items, func(a, b T) int {
			return c.CompareString(a.CatalogName(), b.CatalogName())
		})
	}
}
