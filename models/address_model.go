package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Address struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    string             `json:"user_id" bson:"user_id" validate:"required"`
	Name      string             `json:"name" bson:"name" validate:"required"`
	Mobile    string             `json:"mobile" bson:"mobile" validate:"required"`
	Pincode   string             `json:"pincode" bson:"pincode" validate:"required"`
	Street    string             `json:"street" bson:"street" validate:"required"`
	City      string             `json:"city" bson:"city" validate:"required"`
	IsDefault bool               `json:"is_default" bson:"is_default"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// AddressPatch holds the fields of a partial address update. Nil fields
// are left untouched.
type AddressPatch struct {
	Name      *string `json:"name" validate:"omitempty,min=1"`
	Mobile    *string `json:"mobile" validate:"omitempty,min=1"`
	Pincode   *string `json:"pincode" validate:"omitempty,min=1"`
	Street    *string `json:"street" validate:"omitempty,min=1"`
	City      *string `json:"city" validate:"omitempty,min=1"`
	IsDefault *bool   `json:"is_default"`
}
