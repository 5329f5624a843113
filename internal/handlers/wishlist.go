package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"veloria-backend/internal/models"
)

/*
GET /api/wishlist
- returns products in saved order; ids whose product was deleted or
  deactivated are filtered out of the response
*/
func GetWishlist(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/wishlist"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var wishlist models.Wishlist
		err := db.Collection("wishlists").FindOne(ctx, bson.M{"userId": userID}).Decode(&wishlist)
		if err != nil && err != mongo.ErrNoDocuments {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if err == mongo.ErrNoDocuments || len(wishlist.ProductIDs) == 0 {
			c.JSON(http.StatusOK, gin.H{"data": []models.Product{}})
			return
		}

		cursor, err := db.Collection("products").Find(ctx, bson.M{
			"_id":       bson.M{"$in": wishlist.ProductIDs},
			"isActive":  bson.M{"$ne": false},
			"isDeleted": bson.M{"$ne": true},
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		products, err := decodeProducts(ctx, cursor)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		productByID := make(map[primitive.ObjectID]models.Product, len(products))
		for _, product := range products {
			productByID[product.ID] = product
		}

		ordered := make([]models.Product, 0, len(products))
		for _, savedID := range wishlist.ProductIDs {
			if product, exists := productByID[savedID]; exists {
				ordered = append(ordered, product)
			}
		}

		c.JSON(http.StatusOK, gin.H{"data": ordered})
	}
}

/*
POST /api/wishlist/add/:productId
- idempotent: $addToSet never creates a duplicate entry
*/
func AddToWishlist(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/wishlist/add/:productId"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}

		productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("productId")))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid productId")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := db.Collection("products").FindOne(ctx, bson.M{
			"_id":       productID,
			"isDeleted": bson.M{"$ne": true},
		}).Err(); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "product not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		_, err = db.Collection("wishlists").UpdateOne(
			ctx,
			bson.M{"userId": userID},
			bson.M{
				"$addToSet": bson.M{"productIds": productID},
				"$set":      bson.M{"updatedAt": time.Now()},
			},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "wishlist updated"})
	}
}

// RemoveFromWishlist pulls the id; removing an absent product is a no-op.
func RemoveFromWishlist(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/wishlist/remove/:productId"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}

		productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("productId")))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid productId")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		_, err = db.Collection("wishlists").UpdateOne(
			ctx,
			bson.M{"userId": userID},
			bson.M{
				"$pull": bson.M{"productIds": productID},
				"$set":  bson.M{"updatedAt": time.Now()},
			},
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "wishlist updated"})
	}
}
