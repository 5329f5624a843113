package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Wishlist is a per-user set of saved product ids. Set semantics come from
// $addToSet / $pull updates, so adds are idempotent.
type Wishlist struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID   `bson:"userId" json:"userId"`
	ProductIDs []primitive.ObjectID `bson:"productIds" json:"productIds"`
	UpdatedAt  time.Time            `bson:"updatedAt" json:"updatedAt"`
}
