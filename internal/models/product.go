package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category is the main product classification.
type Category string

const (
	CategoryDresses     Category = "dresses"
	CategoryTops        Category = "tops"
	CategoryBottoms     Category = "bottoms"
	CategoryOuterwear   Category = "outerwear"
	CategoryAccessories Category = "accessories"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryDresses,
	CategoryTops,
	CategoryBottoms,
	CategoryOuterwear,
	CategoryAccessories,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// DressType is the optional subcategory for dresses. The zero value means
// "not applicable"; any other value must appear in dressTypeLabels.
type DressType string

const (
	DressTypeKente        DressType = "kente"
	DressTypeAnkara       DressType = "ankara"
	DressTypeKabaSlit     DressType = "kaba_slit"
	DressTypeAfricanPrint DressType = "african_print"
	DressTypeDashiki      DressType = "dashiki"
	DressTypeMaxi         DressType = "maxi"
	DressTypeMidi         DressType = "midi"
	DressTypeMini         DressType = "mini"
	DressTypeBodycon      DressType = "bodycon"
	DressTypeALine        DressType = "a_line"
	DressTypeWrap         DressType = "wrap"
	DressTypeShift        DressType = "shift"
	DressTypePeplum       DressType = "peplum"
	DressTypeMermaid      DressType = "mermaid"
	DressTypeBallGown     DressType = "ball_gown"
	DressTypeEveningGown  DressType = "evening_gown"
	DressTypeCocktail     DressType = "cocktail"
	DressTypeWedding      DressType = "wedding"
	DressTypeBridesmaid   DressType = "bridesmaid"
	DressTypeCasual       DressType = "casual"
	DressTypeOffice       DressType = "office"
	DressTypeCustom       DressType = "custom"
)

var dressTypeLabels = map[DressType]string{
	DressTypeKente:        "Kente Dress",
	DressTypeAnkara:       "Ankara Dress",
	DressTypeKabaSlit:     "Kaba & Slit",
	DressTypeAfricanPrint: "African Print Dress",
	DressTypeDashiki:      "Dashiki Dress",
	DressTypeMaxi:         "Maxi Dress",
	DressTypeMidi:         "Midi Dress",
	DressTypeMini:         "Mini Dress",
	DressTypeBodycon:      "Bodycon Dress",
	DressTypeALine:        "A-Line Dress",
	DressTypeWrap:         "Wrap Dress",
	DressTypeShift:        "Shift Dress",
	DressTypePeplum:       "Peplum Dress",
	DressTypeMermaid:      "Mermaid Dress",
	DressTypeBallGown:     "Ball Gown",
	DressTypeEveningGown:  "Evening Gown",
	DressTypeCocktail:     "Cocktail Dress",
	DressTypeWedding:      "Wedding Dress",
	DressTypeBridesmaid:   "Bridesmaid Dress",
	DressTypeCasual:       "Casual Dress",
	DressTypeOffice:       "Office Dress",
	DressTypeCustom:       "Custom Design",
}

// DressTypes lists every valid non-empty dress type.
func DressTypes() []DressType {
	types := make([]DressType, 0, len(dressTypeLabels))
	for t := range dressTypeLabels {
		types = append(types, t)
	}
	return types
}

// Valid reports whether t is a known dress type or empty.
func (t DressType) Valid() bool {
	if t == "" {
		return true
	}
	_, ok := dressTypeLabels[t]
	return ok
}

// Label returns the human-readable label for the dress type, or an empty
// string when not applicable.
func (t DressType) Label() string {
	return dressTypeLabels[t]
}

// Product represents a catalog listing.
type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string          `json:"name" gorm:"type:varchar(150);not null" validate:"required,max=150"`
	Slug        string          `json:"slug" gorm:"type:varchar(170);uniqueIndex;not null"`
	Category    Category        `json:"category" gorm:"type:varchar(50);not null;default:dresses;index"`
	DressType   DressType       `json:"dress_type" gorm:"type:varchar(50);not null;default:''"`
	Description string          `json:"description" gorm:"type:text;not null" validate:"required"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(8,2);not null"`
	ImageURL    string          `json:"image_url" gorm:"type:varchar(500);not null;default:''"`
	IsAvailable bool            `json:"is_available" gorm:"not null;default:true;index"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
