package handlers

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"veloria-backend/internal/models"
)

// mergeCartItem adds quantity to an existing line for the product, or appends
// a new line. A product never occupies two lines.
func mergeCartItem(items []models.CartItem, productID primitive.ObjectID, quantity int) []models.CartItem {
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += quantity
			return items
		}
	}
	return append(items, models.CartItem{ProductID: productID, Quantity: quantity})
}

// setCartItemQuantity replaces the quantity on an existing line. Quantities at
// or below zero drop the line entirely. The second return value reports
// whether the product was in the cart at all.
func setCartItemQuantity(items []models.CartItem, productID primitive.ObjectID, quantity int) ([]models.CartItem, bool) {
	for i := range items {
		if items[i].ProductID != productID {
			continue
		}
		if quantity <= 0 {
			return append(items[:i:i], items[i+1:]...), true
		}
		items[i].Quantity = quantity
		return items, true
	}
	return items, false
}

// removeCartItem drops the line for the product if present.
func removeCartItem(items []models.CartItem, productID primitive.ObjectID) ([]models.CartItem, bool) {
	for i := range items {
		if items[i].ProductID == productID {
			return append(items[:i:i], items[i+1:]...), true
		}
	}
	return items, false
}
