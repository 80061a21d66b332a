package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product categories.
const (
	CategoryLeafy   = "leafy"
	CategoryRoot    = "root"
	CategoryFruits  = "fruits"
	CategoryOrganic = "organic"
)

var Categories = []string{CategoryLeafy, CategoryRoot, CategoryFruits, CategoryOrganic}

// DefaultVariants are the weight options every product is sold in.
var DefaultVariants = []string{"250g", "500g", "1kg", "2kg"}

type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name" validate:"required"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	PricePerKg  float64            `json:"price_per_kg" bson:"price_per_kg" validate:"gte=0"`
	Category    string             `json:"category" bson:"category" validate:"required,oneof=leafy root fruits organic"`
	ImageURL    string             `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Variants    []string           `json:"variants" bson:"variants"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// IsCategory reports whether c is one of the catalog categories.
func IsCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
