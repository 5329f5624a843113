package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Address is a saved shipping address on a user profile.
type Address struct {
	ID        string `bson:"id" json:"id"`
	Title     string `bson:"title" json:"title"`
	Detail    string `bson:"detail" json:"detail"`
	City      string `bson:"city,omitempty" json:"city,omitempty"`
	Note      string `bson:"note,omitempty" json:"note,omitempty"`
	IsDefault bool   `bson:"isDefault" json:"isDefault"`
}

// User is the single account type; admins are users with Role == RoleAdmin.
type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName          string             `bson:"fullName" json:"fullName"`
	Email             string             `bson:"email" json:"email"`
	Phone             string             `bson:"phone,omitempty" json:"phone,omitempty"`
	CountryCode       string             `bson:"countryCode,omitempty" json:"countryCode,omitempty"`
	PasswordHash      string             `bson:"passwordHash" json:"-"`
	Role              string             `bson:"role" json:"role"`
	Address           string             `bson:"address,omitempty" json:"address,omitempty"`
	City              string             `bson:"city,omitempty" json:"city,omitempty"`
	State             string             `bson:"state,omitempty" json:"state,omitempty"`
	ZipCode           string             `bson:"zipCode,omitempty" json:"zipCode,omitempty"`
	IsProfileComplete bool               `bson:"isProfileComplete" json:"isProfileComplete"`
	Addresses         []Address          `bson:"addresses" json:"addresses"`
	IsActive          bool               `bson:"isActive" json:"isActive"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}
