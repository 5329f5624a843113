package handlers

import (
	"math"
	"testing"

	"veloria-backend/internal/models"
)

func TestComputeOrderTotalsExampleScenario(t *testing.T) {
	// cart = [{price:100, qty:2}, {price:50, qty:1}]
	items := []models.OrderItem{
		{Price: 100, Quantity: 2},
		{Price: 50, Quantity: 1},
	}

	totals := computeOrderTotals(items)
	if totals.Subtotal != 250 {
		t.Fatalf("expected subtotal 250, got %v", totals.Subtotal)
	}
	if totals.Tax != 45 {
		t.Fatalf("expected tax 45, got %v", totals.Tax)
	}
	if totals.ShippingCost != 500 {
		t.Fatalf("expected shipping 500, got %v", totals.ShippingCost)
	}
	if totals.Total != 795 {
		t.Fatalf("expected total 795, got %v", totals.Total)
	}
}

func TestComputeOrderTotalsFormula(t *testing.T) {
	cases := [][]models.OrderItem{
		{{Price: 19.99, Quantity: 3}},
		{{Price: 1250, Quantity: 1}, {Price: 349.5, Quantity: 4}},
		{{Price: 0.1, Quantity: 7}, {Price: 0.2, Quantity: 9}},
	}

	for _, items := range cases {
		subtotal := 0.0
		for _, item := range items {
			subtotal += item.Price * float64(item.Quantity)
		}
		want := subtotal + 500 + 0.18*subtotal

		totals := computeOrderTotals(items)
		if math.Abs(totals.Total-want) > 1e-9 {
			t.Fatalf("expected total %v, got %v", want, totals.Total)
		}
		if math.Abs(totals.Total-(totals.Subtotal+totals.ShippingCost+totals.Tax)) > 1e-9 {
			t.Fatalf("total %v does not equal sum of its parts", totals.Total)
		}
	}
}

func TestComputeOrderTotalsEmptyItems(t *testing.T) {
	totals := computeOrderTotals(nil)
	if totals.Subtotal != 0 || totals.Tax != 0 {
		t.Fatalf("expected zero subtotal and tax, got %v / %v", totals.Subtotal, totals.Tax)
	}
	if totals.Total != 500 {
		t.Fatalf("expected shipping-only total 500, got %v", totals.Total)
	}
}

func TestValidateShippingAddressRequiresEveryField(t *testing.T) {
	complete := models.ShippingAddress{
		FullName: "Ayşe Yılmaz",
		Address:  "12 Rose Street",
		City:     "Istanbul",
		State:    "Marmara",
		ZipCode:  "34000",
		Country:  "TR",
	}

	if err := validateShippingAddress(complete); err != nil {
		t.Fatalf("expected complete address to validate, got %v", err)
	}

	blank := []func(models.ShippingAddress) models.ShippingAddress{
		func(a models.ShippingAddress) models.ShippingAddress { a.FullName = " "; return a },
		func(a models.ShippingAddress) models.ShippingAddress { a.Address = ""; return a },
		func(a models.ShippingAddress) models.ShippingAddress { a.City = ""; return a },
		func(a models.ShippingAddress) models.ShippingAddress { a.State = ""; return a },
		func(a models.ShippingAddress) models.ShippingAddress { a.ZipCode = ""; return a },
		func(a models.ShippingAddress) models.ShippingAddress { a.Country = ""; return a },
	}
	for i, mutate := range blank {
		if err := validateShippingAddress(mutate(complete)); err == nil {
			t.Fatalf("case %d: expected validation error for blank field", i)
		}
	}
}

func TestValidateShippingAddressPhoneOptional(t *testing.T) {
	addr := models.ShippingAddress{
		FullName: "Sam Doe",
		Address:  "1 Main St",
		City:     "Austin",
		State:    "TX",
		ZipCode:  "78701",
		Country:  "US",
		Phone:    "",
	}
	if err := validateShippingAddress(addr); err != nil {
		t.Fatalf("expected phone to be optional, got %v", err)
	}
}
