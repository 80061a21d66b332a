package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

// Order statuses, in delivery order.
const (
	OrderStatusPlaced    OrderStatus = "Order Placed"
	OrderStatusPacked    OrderStatus = "Packed"
	OrderStatusOnTheWay  OrderStatus = "On The Way"
	OrderStatusDelivered OrderStatus = "Delivered"
)

// OrderStatuses is the full delivery pipeline. Delivered is terminal.
var OrderStatuses = []OrderStatus{OrderStatusPlaced, OrderStatusPacked, OrderStatusOnTheWay, OrderStatusDelivered}

func (s OrderStatus) String() string {
	return string(s)
}

// Order is an immutable snapshot of a cart at checkout. Only Status and
// UpdatedAt change after creation.
type Order struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID        string             `json:"user_id" bson:"user_id"`
	Items         []CartItem         `json:"items" bson:"items"`
	AddressID     string             `json:"address_id" bson:"address_id"`
	PaymentMethod string             `json:"payment_method" bson:"payment_method"` // COD | UPI | Card
	TotalAmount   float64            `json:"total_amount" bson:"total_amount"`
	Status        OrderStatus        `json:"status" bson:"status"`
	ETA           string             `json:"eta" bson:"eta"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Tracking is the read-only delivery view of an order.
type Tracking struct {
	Status      OrderStatus   `json:"status"`
	Steps       []OrderStatus `json:"steps"`
	ActiveIndex int           `json:"active_index"`
	ETA         string        `json:"eta"`
	Location    Location      `json:"location"`
}
