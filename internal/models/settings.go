package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Settings is the singleton store configuration document. TaxRate and
// ShippingFlatFee are informational for the storefront UI; checkout pricing
// uses the fixed constants in the handlers package.
type Settings struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StoreName       string             `bson:"storeName" json:"storeName"`
	SupportEmail    string             `bson:"supportEmail" json:"supportEmail"`
	Currency        string             `bson:"currency" json:"currency"`
	TaxRate         float64            `bson:"taxRate" json:"taxRate"`
	ShippingFlatFee float64            `bson:"shippingFlatFee" json:"shippingFlatFee"`
	MaintenanceMode bool               `bson:"maintenanceMode" json:"maintenanceMode"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
