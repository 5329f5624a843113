package handlers

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"veloria-backend/internal/models"
)

// Forward fulfilment chain. cancelled and refunded are reachable from any
// non-terminal status through an explicit admin action; nothing transitions
// automatically.
var nextStatus = map[string]string{
	models.OrderStatusPending:    models.OrderStatusProcessing,
	models.OrderStatusProcessing: models.OrderStatusShipped,
	models.OrderStatusShipped:    models.OrderStatusDelivered,
}

func isValidOrderStatus(status string) bool {
	switch status {
	case models.OrderStatusPending,
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
		models.OrderStatusCancelled,
		models.OrderStatusRefunded:
		return true
	}
	return false
}

func isTerminalOrderStatus(status string) bool {
	switch status {
	case models.OrderStatusDelivered,
		models.OrderStatusCancelled,
		models.OrderStatusRefunded:
		return true
	}
	return false
}

// canTransitionOrderStatus reports whether an admin may move an order from
// one status to another.
func canTransitionOrderStatus(from, to string) bool {
	if !isValidOrderStatus(from) || !isValidOrderStatus(to) || from == to {
		return false
	}
	if isTerminalOrderStatus(from) {
		return false
	}
	if to == models.OrderStatusCancelled || to == models.OrderStatusRefunded {
		return true
	}
	return nextStatus[from] == to
}

// orderStatusUpdate builds the $set document for a status change. Delivery
// stamps the delivery fields and nothing else; payment records are never
// touched by a transition.
func orderStatusUpdate(target string, now time.Time) bson.M {
	update := bson.M{"status": target}
	if target == models.OrderStatusDelivered {
		update["isDelivered"] = true
		update["deliveredAt"] = now
	}
	return update
}
