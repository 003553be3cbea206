// Package fixture holds the canonical Bean & Vanilla catalog used to seed an empty
// database and to serve browsing when no database is configured.
package fixture

import (
	"time"

	"github.com/beanvanilla/storefront-backend/internal/app/model"
	"github.com/beanvanilla/storefront-backend/pkg/pricing"
)

const imageBase = "https://images.unsplash.com/"

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// Products returns a fresh copy of the catalog. IDs are assigned in order starting at 1.
func Products() []model.Product {
	products := []model.Product{
		{
			Name:         "Original Sandalwood Chrono",
			Image:        imageBase + "photo-1523275335684-37898b6baf30?q=80&w=800",
			Category:     "Watches",
			Description:  "A chronograph cased in fragrant sandalwood with a Japanese automatic movement.",
			Material:     "Sandalwood",
			Movement:     "Automatic",
			CaseSize:     "42mm",
			Occasions:    []string{"anniversary", "professional"},
			Tags:         []string{"classic", "statement"},
			Recipients:   []string{"him", "them"},
			Price:        pricing.MoneyFromInt(345),
			CountInStock: 12,
			CreatedAt:    date("2025-01-01"),
		},
		{
			Name:         "Golden Hour Bracelet",
			Image:        imageBase + "photo-1611591437281-460bfbe1220a?q=80&w=800",
			Category:     "Jewelry",
			Type:         "Bracelets",
			Description:  "A fine 14k gold chain bracelet that catches the last light of the day.",
			Material:     "14k Gold",
			Stone:        "None",
			Occasions:    []string{"general", "graduation"},
			Tags:         []string{"minimalist", "classic"},
			Recipients:   []string{"her", "them"},
			Price:        pricing.MoneyFromInt(95),
			CountInStock: 25,
			CreatedAt:    date("2025-02-01"),
		},
		{
			Name:         "Minimalist Koa Ring",
			Image:        imageBase + "photo-1605100804763-247f67b3557e?q=80&w=800",
			Category:     "Jewelry",
			Type:         "Rings",
			Description:  "A slim band of Hawaiian koa wood, sealed for everyday wear.",
			Material:     "Koa Wood",
			Stone:        "None",
			Occasions:    []string{"anniversary", "graduation"},
			Tags:         []string{"minimalist", "modern"},
			Recipients:   []string{"him", "her", "them"},
			Price:        pricing.MoneyFromInt(120),
			CountInStock: 30,
			CreatedAt:    date("2025-01-15"),
		},
		{
			Name:         "Heritage Ebony Series",
			Image:        imageBase + "photo-1508685096489-7a316bd4741e?q=80&w=800",
			Category:     "Watches",
			Description:  "Dark ebony and brushed steel around a precise quartz movement.",
			Material:     "Ebony",
			Movement:     "Quartz",
			CaseSize:     "40mm",
			Occasions:    []string{"professional"},
			Tags:         []string{"classic", "minimalist"},
			Recipients:   []string{"him"},
			Price:        pricing.MoneyFromInt(210),
			CountInStock: 8,
			CreatedAt:    date("2024-12-20"),
		},
		{
			Name:         "Midnight Maple Diver",
			Image:        imageBase + "photo-1542496658-e33a6d0d50f6?q=80&w=800",
			Category:     "Watches",
			Description:  "A dive-inspired automatic with a smoked maple bezel.",
			Material:     "Maple",
			Movement:     "Automatic",
			CaseSize:     "44mm",
			Occasions:    []string{"graduation"},
			Tags:         []string{"statement", "bold"},
			Recipients:   []string{"him", "them"},
			Price:        pricing.MoneyFromInt(280),
			CountInStock: 6,
			CreatedAt:    date("2025-02-10"),
		},
		{
			Name:         "Silver Birch Bangle",
			Image:        imageBase + "photo-1535633302704-b02f4faad767?q=80&w=800",
			Category:     "Jewelry",
			Type:         "Bracelets",
			Description:  "A hammered sterling silver bangle with a birch bark texture.",
			Material:     "Sterling Silver",
			Stone:        "None",
			Occasions:    []string{"general"},
			Tags:         []string{"minimalist", "modern"},
			Recipients:   []string{"her", "them"},
			Price:        pricing.MoneyFromInt(85),
			CountInStock: 40,
			CreatedAt:    date("2023-10-20"),
		},
		{
			Name:         "Regatta Blue Automatic",
			Image:        imageBase + "photo-1524592094714-0f0654e20314?q=80&w=800",
			Category:     "Watches",
			Description:  "A deep blue dial in a stainless steel case, built for the water.",
			Material:     "Stainless Steel",
			Movement:     "Automatic",
			CaseSize:     "42mm",
			Occasions:    []string{"anniversary"},
			Tags:         []string{"statement", "classic"},
			Recipients:   []string{"him", "them"},
			Price:        pricing.MoneyFromInt(450),
			CountInStock: 4,
			CreatedAt:    date("2024-01-05"),
		},
		{
			Name:         "Earthy Amber Pendant",
			Image:        imageBase + "photo-1515562141207-7a88fb7ce338?q=80&w=800",
			Category:     "Jewelry",
			Type:         "Necklaces",
			Description:  "Baltic amber set in a carved koa wood pendant.",
			Material:     "Koa Wood",
			Stone:        "Amber",
			Occasions:    []string{"general", "birthday"},
			Tags:         []string{"bold", "modern"},
			Recipients:   []string{"her", "them"},
			Price:        pricing.MoneyFromInt(110),
			CountInStock: 15,
			CreatedAt:    date("2024-01-10"),
		},
		{
			Name:         "Celestial Sapphire Studs",
			Image:        imageBase + "photo-1535632066927-ab7c9ab60908?q=80&w=800",
			Category:     "Jewelry",
			Type:         "Earrings",
			Description:  "Round-cut sapphires in 14k gold settings.",
			Material:     "14k Gold",
			Stone:        "Sapphire",
			Occasions:    []string{"anniversary", "birthday"},
			Tags:         []string{"classic", "statement"},
			Recipients:   []string{"her"},
			Price:        pricing.MoneyFromInt(240),
			CountInStock: 10,
			CreatedAt:    date("2024-01-05"),
		},
		{
			Name:         "Rose Gold Promise",
			Image:        imageBase + "photo-1603561591411-07134e71a2a9?q=80&w=800",
			Category:     "Jewelry",
			Type:         "Rings",
			Description:  "A rose gold ring with a single brilliant-cut diamond.",
			Material:     "Rose Gold",
			Stone:        "Diamond",
			Occasions:    []string{"anniversary", "wedding"},
			Tags:         []string{"classic", "minimalist"},
			Recipients:   []string{"her"},
			Price:        pricing.MoneyFromInt(180),
			CountInStock: 7,
			CreatedAt:    date("2023-09-01"),
		},
		{
			Name:         "Koa Minimalist Slim",
			Image:        imageBase + "photo-1434056886845-dac89faf9b17?q=80&w=800",
			Category:     "Watches",
			Description:  "An ultra-thin koa wood watch with a clean, numberless dial.",
			Material:     "Koa Wood",
			Movement:     "Quartz",
			CaseSize:     "38mm",
			Occasions:    []string{"general", "professional"},
			Tags:         []string{"minimalist", "modern"},
			Recipients:   []string{"him", "her", "them"},
			Price:        pricing.MoneyFromInt(195),
			CountInStock: 18,
			CreatedAt:    date("2023-10-20"),
		},
		{
			Name:         "Slate Grey Chrono",
			Image:        imageBase + "photo-1619134778706-c73105e52723?q=80&w=800",
			Category:     "Watches",
			Description:  "A slate grey chronograph with ebony inlays and a quartz movement.",
			Material:     "Ebony",
			Movement:     "Quartz",
			CaseSize:     "44mm",
			Occasions:    []string{"professional", "graduation"},
			Tags:         []string{"bold", "statement"},
			Recipients:   []string{"him", "them"},
			Price:        pricing.MoneyFromInt(299),
			CountInStock: 9,
			CreatedAt:    date("2023-09-01"),
		},
		{
			Name:         "Sapphire Drop Earrings",
			Image:        imageBase + "photo-1535632066927-ab7c9ab60908?q=80&w=800",
			Category:     "Jewelry",
			Type:         "Earrings",
			Description:  "Pear-shaped sapphire drops on fine gold hooks.",
			Material:     "14k Gold",
			Stone:        "Sapphire",
			Occasions:    []string{"anniversary", "wedding"},
			Tags:         []string{"statement", "classic"},
			Recipients:   []string{"her"},
			Price:        pricing.MoneyFromInt(145),
			CountInStock: 11,
			CreatedAt:    date("2024-03-14"),
		},
	}

	for i := range products {
		products[i].ID = uint(i + 1)
		products[i].Brand = model.DefaultBrand
		products[i].UpdatedAt = products[i].CreatedAt
	}
	return products
}
