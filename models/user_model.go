package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Phone            string             `json:"phone" bson:"phone" validate:"required"`
	Name             string             `json:"name,omitempty" bson:"name,omitempty"`
	Email            string             `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	DefaultAddressID string             `json:"default_address_id,omitempty" bson:"default_address_id,omitempty"`
	Token            string             `json:"token,omitempty" bson:"token,omitempty"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at" bson:"updated_at"`
}
