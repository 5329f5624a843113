package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"veloria-backend/internal/cache"
	"veloria-backend/internal/models"
)

const statsCacheKey = "stats:dashboard"
const statsCacheTTL = 30 * time.Second

type dashboardStats struct {
	TotalUsers    int64   `json:"totalUsers"`
	TotalProducts int64   `json:"totalProducts"`
	TotalOrders   int64   `json:"totalOrders"`
	PendingOrders int64   `json:"pendingOrders"`
	TotalRevenue  float64 `json:"totalRevenue"`
}

/*
GET /api/getStats

Dashboard aggregates: document counts plus revenue summed over ALL orders
regardless of status. Cached briefly in redis since the back-office polls it.
*/
func GetStats(db *mongo.Database, store *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/getStats"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var stats dashboardStats
		if store.GetJSON(ctx, statsCacheKey, &stats) {
			c.JSON(http.StatusOK, stats)
			return
		}

		users, err := db.Collection("users").CountDocuments(ctx, bson.M{})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		products, err := db.Collection("products").CountDocuments(ctx, bson.M{
			"isDeleted": bson.M{"$ne": true},
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		orders, err := db.Collection("orders").CountDocuments(ctx, bson.M{})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		pending, err := db.Collection("orders").CountDocuments(ctx, bson.M{
			"status": models.OrderStatusPending,
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		revenue, err := sumOrderRevenue(ctx, db)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		stats = dashboardStats{
			TotalUsers:    users,
			TotalProducts: products,
			TotalOrders:   orders,
			PendingOrders: pending,
			TotalRevenue:  revenue,
		}

		store.SetJSON(ctx, statsCacheKey, stats, statsCacheTTL)
		c.JSON(http.StatusOK, stats)
	}
}

func sumOrderRevenue(ctx context.Context, db *mongo.Database) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$totalPrice"},
		}}},
	}

	cursor, err := db.Collection("orders").Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}
