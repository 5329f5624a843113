package handlers

import (
	"context"
	"log"
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

type cartAddRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type cartUpdateRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  *int   `json:"quantity" binding:"required"`
}

// cartLineResponse is a cart item joined with live product data.
type cartLineResponse struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

type cartResponse struct {
	Items     []cartLineResponse `json:"items"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

/*
GET /api/cart
- items are joined with their products; lines whose product was deleted or
  deactivated are dropped from the response but kept in the document.
*/
func GetCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/cart"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cart, err := loadCart(ctx, db, userID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		lines, err := populateCartLines(ctx, db, cart.Items)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, cartResponse{Items: lines, UpdatedAt: cart.UpdatedAt})
	}
}

/*
POST /api/cart
- merges quantity into an existing line; a product never gets two lines
*/
func AddToCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/cart"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}

		var req cartAddRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.ProductID))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid productId")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := db.Collection("products").FindOne(ctx, bson.M{
			"_id":       productID,
			"isActive":  bson.M{"$ne": false},
			"isDeleted": bson.M{"$ne": true},
		}).Err(); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "product not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		cart, err := loadCart(ctx, db, userID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		cart.Items = mergeCartItem(cart.Items, productID, req.Quantity)
		if err := saveCartItems(ctx, db, userID, cart.Items); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Println("[CART] [INFO] item added:", productID.Hex())
		c.JSON(http.StatusCreated, gin.H{"items": cart.Items})
	}
}

/*
PUT /api/cart
- sets the line quantity; zero or negative removes the line
*/
func UpdateCartItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/cart"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}

		var req cartUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.ProductID))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid productId")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cart, err := loadCart(ctx, db, userID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		items, found := setCartItemQuantity(cart.Items, productID, *req.Quantity)
		if !found {
			respondWithError(c, http.StatusNotFound, route, "item not in cart")
			return
		}

		if err := saveCartItems(ctx, db, userID, items); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

func RemoveCartItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/cart/:productId"
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

		cart, err := loadCart(ctx, db, userID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		items, found := removeCartItem(cart.Items, productID)
		if !found {
			respondWithError(c, http.StatusNotFound, route, "item not in cart")
			return
		}

		if err := saveCartItems(ctx, db, userID, items); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

func ClearCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/cart"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := saveCartItems(ctx, db, userID, []models.CartItem{}); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
	}
}

// loadCart returns the user's cart, or an empty one when none exists yet.
func loadCart(ctx context.Context, db *mongo.Database, userID primitive.ObjectID) (models.Cart, error) {
	var cart models.Cart
	err := db.Collection("carts").FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		return models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
	}
	if err != nil {
		return models.Cart{}, err
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return cart, nil
}

// saveCartItems upserts the whole items list; last write wins.
func saveCartItems(ctx context.Context, db *mongo.Database, userID primitive.ObjectID, items []models.CartItem) error {
	_, err := db.Collection("carts").UpdateOne(
		ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{
			"items":     items,
			"updatedAt": time.Now(),
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

// populateCartLines joins cart items with their products and drops lines
// whose product is gone or inactive.
func populateCartLines(ctx context.Context, db *mongo.Database, items []models.CartItem) ([]cartLineResponse, error) {
	lines := make([]cartLineResponse, 0, len(items))
	if len(items) == 0 {
		return lines, nil
	}

	ids := make([]primitive.ObjectID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	cursor, err := db.Collection("products").Find(ctx, bson.M{
		"_id":       bson.M{"$in": ids},
		"isActive":  bson.M{"$ne": false},
		"isDeleted": bson.M{"$ne": true},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products, err := decodeProducts(ctx, cursor)
	if err != nil {
		return nil, err
	}

	productByID := make(map[primitive.ObjectID]models.Product, len(products))
	for _, product := range products {
		productByID[product.ID] = product
	}

	for _, item := range items {
		product, exists := productByID[item.ProductID]
		if !exists {
			continue
		}
		lines = append(lines, cartLineResponse{Product: product, Quantity: item.Quantity})
	}
	return lines, nil
}
