package catalog

import (
	"fmt"
	"slices"
	"strings"
)

// GiftCriteria drives the gift concierge.
type GiftCriteria struct {
	Recipient string `json:"recipient" form:"recipient"`
	Occasion  string `json:"occasion" form:"occasion"`
	Style     string `json:"style" form:"style"`
	Budget    string `json:"budget" form:"budget"`
}

// Gift concierge defaults.
const (
	DefaultRecipient = "someone"
	DefaultOccasion  = "special"
	DefaultStyle     = "classic"
	DefaultBudget    = BudgetMid
)

// WithDefaults lowercases the criteria and fills the blank ones.
func (c GiftCriteria) WithDefaults() GiftCriteria {
	c.Recipient = normalize(c.Recipient)
	c.Occasion = normalize(c.Occasion)
	c.Style = normalize(c.Style)
	c.Budget = normalize(c.Budget)
	if c.Recipient == "" {
		c.Recipient = DefaultRecipient
	}
	if c.Occasion == "" {
		c.Occasion = DefaultOccasion
	}
	if c.Style == "" {
		c.Style = DefaultStyle
	}
	if c.Budget == "" {
		c.Budget = DefaultBudget
	}
	return c
}

func normalize(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// Title is the heading shown above a curated selection. It expects criteria
// returned by WithDefaults.
func (c GiftCriteria) Title() string {
	if c.Recipient == "myself" {
		return fmt.Sprintf("Your %s Edit", c.Style)
	}
	names := map[string]string{"him": "Him", "her": "Her", "them": "Them"}
	name, ok := names[c.Recipient]
	if !ok {
		name = "Them"
	}
	return fmt.Sprintf("The %s Edit for %s", c.Style, name)
}

// Matches applies the concierge rules to criteria returned by WithDefaults.
// "classic" accepts every style and the recipients "myself" and "them" accept everyone.
func (c GiftCriteria) Matches(item Item) bool {
	if !BudgetRange(c.Budget).Contains(item.CatalogPrice()) {
		return false
	}
	if c.Style != DefaultStyle && !slices.Contains(item.Attribute(FacetStyle), c.Style) {
		return false
	}
	if c.Recipient == "myself" || c.Recipient == "them" {
		return true
	}
	return slices.Contains(item.Attribute(FacetRecipient), c.Recipient)
}

// Curate returns the items matching c, after applying defaults, in catalog order.
func Curate[T Item](items []T, c GiftCriteria) []T {
	c = c.WithDefaults()
	out := make([]T, 0, len(items))
	for _, item := range items {
		if c.Matches(item) {
			out = append(out, item)
		}
	}
	return out
}
