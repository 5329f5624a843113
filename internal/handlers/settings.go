package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"veloria-backend/internal/cache"
	"veloria-backend/internal/models"
)

const settingsCacheKey = "settings:store"
const settingsCacheTTL = 5 * time.Minute

type settingsUpdateRequest struct {
	StoreName       *string  `json:"storeName"`
	SupportEmail    *string  `json:"supportEmail"`
	Currency        *string  `json:"currency"`
	TaxRate         *float64 `json:"taxRate"`
	ShippingFlatFee *float64 `json:"shippingFlatFee"`
	MaintenanceMode *bool    `json:"maintenanceMode"`
}

func defaultSettings() models.Settings {
	return models.Settings{
		StoreName:       "Veloria Perfumes",
		SupportEmail:    "support@veloria.example",
		Currency:        "USD",
		TaxRate:         taxRate,
		ShippingFlatFee: shippingFlatFee,
		MaintenanceMode: false,
		UpdatedAt:       time.Now(),
	}
}

/*
GET /api/settings
- singleton document, created with defaults on first read, cached in redis
*/
func GetSettings(db *mongo.Database, store *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/settings"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var settings models.Settings
		if store.GetJSON(ctx, settingsCacheKey, &settings) {
			c.JSON(http.StatusOK, settings)
			return
		}

		err := db.Collection("settings").FindOne(ctx, bson.M{}).Decode(&settings)
		if err == mongo.ErrNoDocuments {
			settings = defaultSettings()
			if _, err := db.Collection("settings").InsertOne(ctx, settings); err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}
		} else if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		store.SetJSON(ctx, settingsCacheKey, settings, settingsCacheTTL)
		c.JSON(http.StatusOK, settings)
	}
}

/*
PUT /api/settings
- admin only; partial update, invalidates the cache
*/
func UpdateSettings(db *mongo.Database, store *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/settings"
		defer handlePanic(c, route)

		var req settingsUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		update := bson.M{}
		if req.StoreName != nil {
			name := strings.TrimSpace(*req.StoreName)
			if name == "" {
				respondWithError(c, http.StatusBadRequest, route, "storeName cannot be empty")
				return
			}
			update["storeName"] = name
		}
		if req.SupportEmail != nil {
			update["supportEmail"] = strings.TrimSpace(*req.SupportEmail)
		}
		if req.Currency != nil {
			update["currency"] = strings.ToUpper(strings.TrimSpace(*req.Currency))
		}
		if req.TaxRate != nil {
			if *req.TaxRate < 0 || *req.TaxRate >= 1 {
				respondWithError(c, http.StatusBadRequest, route, "taxRate must be in [0, 1)")
				return
			}
			update["taxRate"] = *req.TaxRate
		}
		if req.ShippingFlatFee != nil {
			if *req.ShippingFlatFee < 0 {
				respondWithError(c, http.StatusBadRequest, route, "shippingFlatFee must be zero or greater")
				return
			}
			update["shippingFlatFee"] = *req.ShippingFlatFee
		}
		if req.MaintenanceMode != nil {
			update["maintenanceMode"] = *req.MaintenanceMode
		}

		if len(update) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "no fields to update")
			return
		}
		update["updatedAt"] = time.Now()

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.Settings
		err := db.Collection("settings").FindOneAndUpdate(
			ctx,
			bson.M{},
			bson.M{"$set": update},
			options.FindOneAndUpdate().
				SetUpsert(true).
				SetReturnDocument(options.After),
		).Decode(&updated)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		store.Delete(ctx, settingsCacheKey)
		log.Println("[SETTINGS] [INFO] store settings updated")
		c.JSON(http.StatusOK, updated)
	}
}
