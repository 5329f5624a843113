package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// unreachableDatabase returns a handle whose every operation fails fast with a
// server selection error. Port 1 never has a mongod listening.
func unreachableDatabase(t *testing.T) *mongo.Database {
	t.Helper()

	client, err := mongo.Connect(context.Background(), options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(200*time.Millisecond))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Disconnect(context.Background())
	})
	return client.Database("veloria_test")
}

func TestGetWishlistLookupFailureIsNotAnEmptyList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := unreachableDatabase(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest("GET", "/api/wishlist", nil)
	c.Set("userId", primitive.NewObjectID())

	GetWishlist(db)(c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 when the wishlist lookup fails, got %d body=%s", rec.Code, rec.Body.String())
	}
}
