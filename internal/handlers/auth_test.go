package handlers

import (
	"errors"
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestInsertUserStatusDuplicateKeyIsConflict(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}

	status, message := insertUserStatus(dup)
	if status != http.StatusConflict {
		t.Fatalf("expected 409 for a duplicate email insert, got %d", status)
	}
	if message != "email already registered" {
		t.Fatalf("unexpected message: %q", message)
	}
}

func TestInsertUserStatusOtherErrorsAreInternal(t *testing.T) {
	status, message := insertUserStatus(errors.New("connection reset"))
	if status != http.StatusInternalServerError {
		t.Fatalf("expected 500 for a non-duplicate error, got %d", status)
	}
	if message != "db error" {
		t.Fatalf("unexpected message: %q", message)
	}
}
