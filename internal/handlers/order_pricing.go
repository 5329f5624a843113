package handlers

import (
	"fmt"
	"strings"

	"veloria-backend/internal/models"
)

// Checkout pricing constants. Flat shipping and a flat tax rate applied to
// the subtotal; values are kept as float64 and rounded only for display.
const (
	shippingFlatFee = 500.0
	taxRate         = 0.18
)

type orderTotals struct {
	Subtotal     float64
	ShippingCost float64
	Tax          float64
	Total        float64
}

// computeOrderTotals prices snapshotted items:
// total = subtotal + shippingFlatFee + taxRate*subtotal.
func computeOrderTotals(items []models.OrderItem) orderTotals {
	subtotal := 0.0
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}

	tax := subtotal * taxRate
	return orderTotals{
		Subtotal:     subtotal,
		ShippingCost: shippingFlatFee,
		Tax:          tax,
		Total:        subtotal + shippingFlatFee + tax,
	}
}

// validateShippingAddress requires every field except phone to be non-empty.
func validateShippingAddress(addr models.ShippingAddress) error {
	required := []struct {
		name  string
		value string
	}{
		{"fullName", addr.FullName},
		{"address", addr.Address},
		{"city", addr.City},
		{"state", addr.State},
		{"zipCode", addr.ZipCode},
		{"country", addr.Country},
	}

	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("shippingAddress.%s is required", field.name)
		}
	}
	return nil
}

func trimShippingAddress(addr models.ShippingAddress) models.ShippingAddress {
	return models.ShippingAddress{
		FullName: strings.TrimSpace(addr.FullName),
		Address:  strings.TrimSpace(addr.Address),
		City:     strings.TrimSpace(addr.City),
		State:    strings.TrimSpace(addr.State),
		ZipCode:  strings.TrimSpace(addr.ZipCode),
		Country:  strings.TrimSpace(addr.Country),
		Phone:    strings.TrimSpace(addr.Phone),
	}
}
