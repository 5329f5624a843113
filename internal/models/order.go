package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order status values. Transition rules live in the handlers package.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
	OrderStatusRefunded   = "refunded"
)

const PaymentMethodCashOnDelivery = "cash_on_delivery"

// OrderItem is a frozen copy of the product at checkout time. Later product
// edits or deletes must not change it.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// ShippingAddress is the delivery destination captured with the order.
type ShippingAddress struct {
	FullName string `bson:"fullName" json:"fullName"`
	Address  string `bson:"address" json:"address"`
	City     string `bson:"city" json:"city"`
	State    string `bson:"state" json:"state"`
	ZipCode  string `bson:"zipCode" json:"zipCode"`
	Country  string `bson:"country" json:"country"`
	Phone    string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// Order is immutable after creation except for status, isPaid and isDelivered,
// which only admin endpoints touch.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	Items           []OrderItem        `bson:"items" json:"items"`
	ShippingAddress ShippingAddress    `bson:"shippingAddress" json:"shippingAddress"`
	PaymentMethod   string             `bson:"paymentMethod" json:"paymentMethod"`
	Subtotal        float64            `bson:"subtotal" json:"subtotal"`
	ShippingCost    float64            `bson:"shippingCost" json:"shippingCost"`
	Tax             float64            `bson:"tax" json:"tax"`
	TotalPrice      float64            `bson:"totalPrice" json:"totalPrice"`
	Status          string             `bson:"status" json:"status"`
	IsPaid          bool               `bson:"isPaid" json:"isPaid"`
	IsDelivered     bool               `bson:"isDelivered" json:"isDelivered"`
	DeliveredAt     *time.Time         `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}
