package handlers

import (
	"context"
	"errors"
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

type createOrderRequest struct {
	ShippingAddress models.ShippingAddress `json:"shippingAddress" binding:"required"`
	PaymentMethod   string                 `json:"paymentMethod" binding:"required"`
}

type outOfStockError struct {
	ProductID primitive.ObjectID
	Available int
	Requested int
}

func (e outOfStockError) Error() string {
	return "product out of stock"
}

type productNotFoundError struct {
	ProductID primitive.ObjectID
}

func (e productNotFoundError) Error() string {
	return "product not found"
}

var errEmptyCart = errors.New("cart is empty")

/*
POST /api/orders

Checkout pipeline: validate address and payment method, then inside one
transaction read the cart, snapshot each product, decrement stock, price the
order, insert it and clear the cart. A failed transaction leaves the cart and
stock untouched, and two concurrent checkouts of the same cart cannot both
commit.
*/
func CreateOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/orders"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		addr := trimShippingAddress(req.ShippingAddress)
		if err := validateShippingAddress(addr); err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		if strings.TrimSpace(req.PaymentMethod) != models.PaymentMethodCashOnDelivery {
			respondWithError(c, http.StatusBadRequest, route, "unsupported payment method")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		session, err := db.Client().StartSession()
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer session.EndSession(ctx)

		var order models.Order
		_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
			var cart models.Cart
			err := db.Collection("carts").FindOne(sessCtx, bson.M{"userId": userID}).Decode(&cart)
			if err == mongo.ErrNoDocuments || (err == nil && len(cart.Items) == 0) {
				return nil, errEmptyCart
			}
			if err != nil {
				return nil, err
			}

			orderItems := make([]models.OrderItem, 0, len(cart.Items))
			for _, item := range cart.Items {
				var product models.Product
				err := db.Collection("products").FindOne(sessCtx, bson.M{
					"_id":       item.ProductID,
					"isDeleted": bson.M{"$ne": true},
				}).Decode(&product)
				if err == mongo.ErrNoDocuments {
					return nil, productNotFoundError{ProductID: item.ProductID}
				}
				if err != nil {
					return nil, err
				}

				if product.Stock < item.Quantity {
					return nil, outOfStockError{
						ProductID: item.ProductID,
						Available: product.Stock,
						Requested: item.Quantity,
					}
				}

				// Conditional decrement; a concurrent order that drained the
				// stock between the read and here makes MatchedCount zero.
				res, err := db.Collection("products").UpdateOne(
					sessCtx,
					bson.M{
						"_id":       item.ProductID,
						"isDeleted": bson.M{"$ne": true},
						"stock":     bson.M{"$gte": item.Quantity},
					},
					bson.M{"$inc": bson.M{"stock": -item.Quantity}},
				)
				if err != nil {
					return nil, err
				}
				if res.MatchedCount == 0 {
					return nil, outOfStockError{
						ProductID: item.ProductID,
						Available: product.Stock,
						Requested: item.Quantity,
					}
				}

				// Frozen copy: later product edits must not touch this order.
				orderItems = append(orderItems, models.OrderItem{
					ProductID: product.ID,
					Name:      product.Name,
					Price:     product.Price,
					Image:     product.Image,
					Quantity:  item.Quantity,
				})
			}

			totals := computeOrderTotals(orderItems)
			order = models.Order{
				UserID:          userID,
				Items:           orderItems,
				ShippingAddress: addr,
				PaymentMethod:   models.PaymentMethodCashOnDelivery,
				Subtotal:        totals.Subtotal,
				ShippingCost:    totals.ShippingCost,
				Tax:             totals.Tax,
				TotalPrice:      totals.Total,
				Status:          models.OrderStatusPending,
				IsPaid:          false,
				IsDelivered:     false,
				CreatedAt:       time.Now(),
			}

			res, err := db.Collection("orders").InsertOne(sessCtx, order)
			if err != nil {
				return nil, err
			}
			if id, idOk := res.InsertedID.(primitive.ObjectID); idOk {
				order.ID = id
			}

			_, err = db.Collection("carts").UpdateOne(
				sessCtx,
				bson.M{"_id": cart.ID},
				bson.M{"$set": bson.M{
					"items":     []models.CartItem{},
					"updatedAt": time.Now(),
				}},
			)
			return nil, err
		})
		if err != nil {
			if errors.Is(err, errEmptyCart) {
				respondWithError(c, http.StatusBadRequest, route, "cart is empty")
				return
			}
			var stockErr outOfStockError
			if errors.As(err, &stockErr) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":     "insufficient stock",
					"productId": stockErr.ProductID.Hex(),
					"available": stockErr.Available,
					"requested": stockErr.Requested,
				})
				return
			}
			var notFoundErr productNotFoundError
			if errors.As(err, &notFoundErr) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":     "product no longer available",
					"productId": notFoundErr.ProductID.Hex(),
				})
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Println("[ORDER] [INFO] order created:", order.ID.Hex(), "for user:", userID.Hex())
		c.JSON(http.StatusCreated, order)
	}
}

/*
GET /api/orders
- the caller's order history, newest first
*/
func GetOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := db.Collection("orders").Find(ctx, bson.M{"userId": userID}, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

/*
GET /api/orders/:id
- owner or admin only
*/
func GetOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders/:id"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		err = db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if order.UserID != userID && !isAdmin(c) {
			respondWithError(c, http.StatusForbidden, route, "forbidden")
			return
		}

		c.JSON(http.StatusOK, order)
	}
}
