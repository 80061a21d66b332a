package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one (product, variant) line in a user's cart. ProductName,
// ImageURL and Price are snapshots taken when the line was created.
type CartItem struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID      string             `json:"user_id" bson:"user_id"`
	ProductID   string             `json:"product_id" bson:"product_id"`
	ProductName string             `json:"product_name" bson:"product_name"`
	ImageURL    string             `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Variant     string             `json:"variant" bson:"variant"`
	Qty         int                `json:"qty" bson:"qty"`
	Price       float64            `json:"price" bson:"price"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}
