package handlers

import (
	"testing"
	"time"

	"veloria-backend/internal/models"
)

func TestOrderStatusForwardChain(t *testing.T) {
	chain := []string{
		models.OrderStatusPending,
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
	}

	for i := 0; i < len(chain)-1; i++ {
		if !canTransitionOrderStatus(chain[i], chain[i+1]) {
			t.Fatalf("expected %s -> %s to be allowed", chain[i], chain[i+1])
		}
	}

	// Skipping a step is not allowed.
	if canTransitionOrderStatus(models.OrderStatusPending, models.OrderStatusShipped) {
		t.Fatal("expected pending -> shipped to be rejected")
	}
	if canTransitionOrderStatus(models.OrderStatusProcessing, models.OrderStatusDelivered) {
		t.Fatal("expected processing -> delivered to be rejected")
	}
}

func TestOrderStatusNoBackwardTransitions(t *testing.T) {
	if canTransitionOrderStatus(models.OrderStatusShipped, models.OrderStatusProcessing) {
		t.Fatal("expected shipped -> processing to be rejected")
	}
	if canTransitionOrderStatus(models.OrderStatusProcessing, models.OrderStatusPending) {
		t.Fatal("expected processing -> pending to be rejected")
	}
}

func TestOrderStatusCancelAndRefundFromNonTerminal(t *testing.T) {
	nonTerminal := []string{
		models.OrderStatusPending,
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
	}
	for _, from := range nonTerminal {
		if !canTransitionOrderStatus(from, models.OrderStatusCancelled) {
			t.Fatalf("expected %s -> cancelled to be allowed", from)
		}
		if !canTransitionOrderStatus(from, models.OrderStatusRefunded) {
			t.Fatalf("expected %s -> refunded to be allowed", from)
		}
	}
}

func TestOrderStatusTerminalStatesAreFinal(t *testing.T) {
	terminal := []string{
		models.OrderStatusDelivered,
		models.OrderStatusCancelled,
		models.OrderStatusRefunded,
	}
	targets := []string{
		models.OrderStatusPending,
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
		models.OrderStatusCancelled,
		models.OrderStatusRefunded,
	}

	for _, from := range terminal {
		for _, to := range targets {
			if canTransitionOrderStatus(from, to) {
				t.Fatalf("expected %s -> %s to be rejected", from, to)
			}
		}
	}
}

func TestOrderStatusRejectsUnknownValues(t *testing.T) {
	if canTransitionOrderStatus("pending", "archived") {
		t.Fatal("expected unknown target status to be rejected")
	}
	if canTransitionOrderStatus("", "pending") {
		t.Fatal("expected empty source status to be rejected")
	}
	if canTransitionOrderStatus("pending", "pending") {
		t.Fatal("expected self transition to be rejected")
	}
}

func TestOrderStatusUpdateDeliveredStampsDeliveryOnly(t *testing.T) {
	now := time.Now()
	update := orderStatusUpdate(models.OrderStatusDelivered, now)

	if update["status"] != models.OrderStatusDelivered {
		t.Fatalf("expected status delivered, got %v", update["status"])
	}
	if update["isDelivered"] != true {
		t.Fatal("expected isDelivered to be set")
	}
	if update["deliveredAt"] != now {
		t.Fatalf("expected deliveredAt %v, got %v", now, update["deliveredAt"])
	}
	if _, exists := update["isPaid"]; exists {
		t.Fatal("status transition must not touch payment fields")
	}
}

func TestOrderStatusUpdateNonDeliveredSetsStatusOnly(t *testing.T) {
	update := orderStatusUpdate(models.OrderStatusShipped, time.Now())
	if len(update) != 1 || update["status"] != models.OrderStatusShipped {
		t.Fatalf("expected a bare status update, got %v", update)
	}
}
