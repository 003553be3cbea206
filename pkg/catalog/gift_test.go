package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func giftItems() []testItem {
	gift := func(name string, price int64, tags, recipients []string) testItem {
		return testItem{name: name, price: price, attrs: map[Facet][]string{
			FacetStyle:     tags,
			FacetRecipient: recipients,
		}}
	}
	return []testItem{
		gift("Original Sandalwood Chrono", 345, []string{"classic", "statement"}, []string{"him", "them"}),
		gift("Golden Hour Bracelet", 95, []string{"minimalist", "classic"}, []string{"her", "them"}),
		gift("Minimalist Koa Ring", 120, []string{"minimalist", "modern"}, []string{"him", "her", "them"}),
		gift("Heritage Ebony Series", 210, []string{"classic", "minimalist"}, []string{"him"}),
		gift("Midnight Maple Diver", 280, []string{"statement", "bold"}, []string{"him", "them"}),
		gift("Sapphire Drop Earrings", 145, []string{"statement", "classic"}, []string{"her"}),
	}
}

func TestCurate(t *testing.T) {
	items := giftItems()

	tests := []struct {
		name     string
		criteria GiftCriteria
		want     []string
	}{
		{
			name:     "defaults match no recipient",
			criteria: GiftCriteria{},
			want:     []string{},
		},
		{
			name:     "him, mid budget, classic accepts every style",
			criteria: GiftCriteria{Recipient: "him", Budget: BudgetMid},
			want:     []string{"Heritage Ebony Series", "Midnight Maple Diver"},
		},
		{
			name:     "her, low budget, statement",
			criteria: GiftCriteria{Recipient: "her", Budget: BudgetLow, Style: "statement"},
			want:     []string{"Sapphire Drop Earrings"},
		},
		{
			name:     "myself accepts every recipient",
			criteria: GiftCriteria{Recipient: "myself", Budget: BudgetLow, Style: "minimalist"},
			want:     []string{"Golden Hour Bracelet", "Minimalist Koa Ring"},
		},
		{
			name:     "them with high budget",
			criteria: GiftCriteria{Recipient: "them", Budget: BudgetHigh},
			want:     []string{"Original Sandalwood Chrono"},
		},
		{
			name:     "unknown budget is unbounded",
			criteria: GiftCriteria{Recipient: "them", Budget: "any", Style: "bold"},
			want:     []string{"Midnight Maple Diver"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(Curate(items, tt.criteria)))
		})
	}
}

func TestGiftCriteria_WithDefaults(t *testing.T) {
	c := GiftCriteria{Recipient: "her"}.WithDefaults()
	assert.Equal(t, GiftCriteria{Recipient: "her", Occasion: "special", Style: "classic", Budget: "mid"}, c)

	c = GiftCriteria{Recipient: " Him ", Occasion: "Birthday", Style: "BOLD", Budget: "High"}.WithDefaults()
	assert.Equal(t, GiftCriteria{Recipient: "him", Occasion: "birthday", Style: "bold", Budget: "high"}, c)
}

func TestCurate_IgnoresCase(t *testing.T) {
	items := giftItems()

	lower := GiftCriteria{Recipient: "him", Budget: BudgetMid, Style: "bold"}
	mixed := GiftCriteria{Recipient: "Him", Budget: "MID", Style: "Bold"}
	assert.Equal(t, []string{"Midnight Maple Diver"}, names(Curate(items, mixed)))
	assert.Equal(t, names(Curate(items, lower)), names(Curate(items, mixed)))

	assert.Equal(t, "The bold Edit for Him", mixed.WithDefaults().Title())
	assert.Equal(t, "Your classic Edit", GiftCriteria{Recipient: "MySelf"}.WithDefaults().Title())
	assert.Equal(t, []string{"Original Sandalwood Chrono"}, names(Curate(items, GiftCriteria{Recipient: "THEM", Budget: "high"})))
}

func TestGiftCriteria_Title(t *testing.T) {
	assert.Equal(t, "Your minimalist Edit", GiftCriteria{Recipient: "myself", Style: "minimalist"}.Title())
	assert.Equal(t, "The classic Edit for Him", GiftCriteria{Recipient: "him", Style: "classic"}.Title())
	assert.Equal(t, "The bold Edit for Her", GiftCriteria{Recipient: "her", Style: "bold"}.Title())
	assert.Equal(t, "The classic Edit for Them", GiftCriteria{Recipient: "someone", Style: "classic"}.Title())
}
