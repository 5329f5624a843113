package handlers

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"veloria-backend/internal/models"
)

func TestMergeCartItemSumsQuantityForSameProduct(t *testing.T) {
	productID := primitive.NewObjectID()

	items := mergeCartItem(nil, productID, 2)
	items = mergeCartItem(items, productID, 3)

	if len(items) != 1 {
		t.Fatalf("expected a single line for the product, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", items[0].Quantity)
	}
}

func TestMergeCartItemAppendsNewProduct(t *testing.T) {
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()

	items := mergeCartItem(nil, first, 1)
	items = mergeCartItem(items, second, 4)

	if len(items) != 2 {
		t.Fatalf("expected two lines, got %d", len(items))
	}
	if items[1].ProductID != second || items[1].Quantity != 4 {
		t.Fatalf("unexpected second line: %+v", items[1])
	}
}

func TestSetCartItemQuantityZeroRemovesLine(t *testing.T) {
	productID := primitive.NewObjectID()
	other := primitive.NewObjectID()
	items := []models.CartItem{
		{ProductID: productID, Quantity: 2},
		{ProductID: other, Quantity: 1},
	}

	updated, found := setCartItemQuantity(items, productID, 0)
	if !found {
		t.Fatal("expected the product to be found")
	}
	if len(updated) != 1 {
		t.Fatalf("expected the line to be removed, got %d lines", len(updated))
	}
	if updated[0].ProductID != other {
		t.Fatal("expected the other line to survive")
	}
}

func TestSetCartItemQuantityNegativeRemovesLine(t *testing.T) {
	productID := primitive.NewObjectID()
	items := []models.CartItem{{ProductID: productID, Quantity: 3}}

	updated, found := setCartItemQuantity(items, productID, -1)
	if !found || len(updated) != 0 {
		t.Fatalf("expected empty cart, got found=%v lines=%d", found, len(updated))
	}
}

func TestSetCartItemQuantityReplaces(t *testing.T) {
	productID := primitive.NewObjectID()
	items := []models.CartItem{{ProductID: productID, Quantity: 3}}

	updated, found := setCartItemQuantity(items, productID, 7)
	if !found {
		t.Fatal("expected the product to be found")
	}
	if updated[0].Quantity != 7 {
		t.Fatalf("expected quantity 7, got %d", updated[0].Quantity)
	}
}

func TestSetCartItemQuantityMissingProduct(t *testing.T) {
	items := []models.CartItem{{ProductID: primitive.NewObjectID(), Quantity: 1}}

	updated, found := setCartItemQuantity(items, primitive.NewObjectID(), 2)
	if found {
		t.Fatal("expected missing product to report not found")
	}
	if len(updated) != 1 {
		t.Fatalf("expected cart unchanged, got %d lines", len(updated))
	}
}

func TestRemoveCartItem(t *testing.T) {
	productID := primitive.NewObjectID()
	other := primitive.NewObjectID()
	items := []models.CartItem{
		{ProductID: productID, Quantity: 2},
		{ProductID: other, Quantity: 5},
	}

	updated, found := removeCartItem(items, productID)
	if !found {
		t.Fatal("expected the product to be found")
	}
	if len(updated) != 1 || updated[0].ProductID != other {
		t.Fatalf("unexpected cart after removal: %+v", updated)
	}

	if _, found := removeCartItem(updated, productID); found {
		t.Fatal("expected second removal to report not found")
	}
}
