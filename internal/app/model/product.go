package model

import (
	"time"

	"github.com/beanvanilla/storefront-backend/pkg/catalog"
	"github.com/beanvanilla/storefront-backend/pkg/pricing"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const DefaultBrand = "Bean and Vanilla"

// Product is a catalog entry. Movement and CaseSize only apply to watches; Tags are
// style tags and Recipients are him/her/them.
type Product struct {
	ID           uint           `gorm:"primarykey" json:"_id"`
	Name         string         `gorm:"not null" json:"name"`
	Image        string         `gorm:"not null" json:"image"`
	Brand        string         `gorm:"not null;default:'Bean and Vanilla'" json:"brand"`
	Category     string         `gorm:"type:varchar(50);not null;index" json:"category"`
	Type         string         `gorm:"type:varchar(50)" json:"type,omitempty"`
	Description  string         `gorm:"type:text;not null" json:"description"`
	Material     string         `gorm:"type:varchar(50)" json:"material,omitempty"`
	Stone        string         `gorm:"type:varchar(50)" json:"stone,omitempty"`
	Movement     string         `gorm:"type:varchar(50)" json:"movement,omitempty"`
	CaseSize     string         `gorm:"type:varchar(20)" json:"caseSize,omitempty"`
	Occasions    []string       `gorm:"serializer:json" json:"occasions,omitempty"`
	Tags         []string       `gorm:"serializer:json" json:"tags,omitempty"`
	Recipients   []string       `gorm:"serializer:json" json:"recipients,omitempty"`
	Price        pricing.Money  `gorm:"type:numeric(12,2);not null;default:0" json:"price"`
	CountInStock int            `gorm:"not null;default:0" json:"countInStock"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// BeforeSave applies the schema defaults.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	if p.Brand == "" {
		p.Brand = DefaultBrand
	}
	return nil
}

func (p Product) CatalogName() string {
	return p.Name
}

func (p Product) CatalogPrice() decimal.Decimal {
	return p.Price.Decimal
}

func (p Product) CatalogCreatedAt() time.Time {
	return p.CreatedAt
}

func (p Product) Attribute(f catalog.Facet) []string {
	switch f {
	case catalog.FacetCategory:
		return single(p.Category)
	case catalog.FacetType:
		return single(p.Type)
	case catalog.FacetMaterial:
		return single(p.Material)
	case catalog.FacetStone:
		return single(p.Stone)
	case catalog.FacetMovement:
		return single(p.Movement)
	case catalog.FacetCaseSize:
		return single(p.CaseSize)
	case catalog.FacetOccasion:
		return p.Occasions
	case catalog.FacetStyle:
		return p.Tags
	case catalog.FacetRecipient:
		return p.Recipients
	}
	return nil
}

// InStock reports whether qty units can be sold.
func (p Product) InStock(qty int) bool {
	return qty <= p.CountInStock
}

func single(v string) []string {
	if v == "" {
		return nil
	}
	return []string{v}
}
