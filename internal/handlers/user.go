package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"veloria-backend/internal/models"
)

type profileUpdateRequest struct {
	FullName    *string `json:"fullName"`
	Phone       *string `json:"phone"`
	CountryCode *string `json:"countryCode"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	ZipCode     *string `json:"zipCode"`
}

type addressRequest struct {
	Title     string `json:"title" binding:"required"`
	Detail    string `json:"detail" binding:"required"`
	City      string `json:"city"`
	Note      string `json:"note"`
	IsDefault bool   `json:"isDefault"`
}

// UpdateProfile applies a partial update to the caller's profile and
// recomputes isProfileComplete from the resulting address fields.
func UpdateProfile(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/users/profile"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}

		var req profileUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			respondWithError(c, http.StatusNotFound, route, "user not found")
			return
		}

		update := bson.M{}
		if req.FullName != nil {
			name := strings.TrimSpace(*req.FullName)
			if name == "" {
				respondWithError(c, http.StatusBadRequest, route, "fullName cannot be empty")
				return
			}
			update["fullName"] = name
		}
		if req.Phone != nil {
			update["phone"] = strings.TrimSpace(*req.Phone)
		}
		if req.CountryCode != nil {
			update["countryCode"] = strings.TrimSpace(*req.CountryCode)
		}
		if req.Address != nil {
			user.Address = strings.TrimSpace(*req.Address)
			update["address"] = user.Address
		}
		if req.City != nil {
			user.City = strings.TrimSpace(*req.City)
			update["city"] = user.City
		}
		if req.State != nil {
			user.State = strings.TrimSpace(*req.State)
			update["state"] = user.State
		}
		if req.ZipCode != nil {
			user.ZipCode = strings.TrimSpace(*req.ZipCode)
			update["zipCode"] = user.ZipCode
		}

		if len(update) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "no fields to update")
			return
		}

		update["isProfileComplete"] = profileComplete(user.Address, user.City, user.State, user.ZipCode)
		update["updatedAt"] = time.Now()

		var updated models.User
		err := db.Collection("users").FindOneAndUpdate(
			ctx,
			bson.M{"_id": userID},
			bson.M{"$set": update},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Println("[USER] [INFO] profile updated:", userID.Hex())
		c.JSON(http.StatusOK, updated)
	}
}

func GetUserAddresses(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/users/addresses"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			respondWithError(c, http.StatusNotFound, route, "user not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"addresses": user.Addresses})
	}
}

func CreateUserAddress(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/users/addresses"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}

		var req addressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			respondWithError(c, http.StatusNotFound, route, "user not found")
			return
		}

		if req.IsDefault {
			for i := range user.Addresses {
				user.Addresses[i].IsDefault = false
			}
		}

		address := models.Address{
			ID:        uuid.NewString(),
			Title:     strings.TrimSpace(req.Title),
			Detail:    strings.TrimSpace(req.Detail),
			City:      strings.TrimSpace(req.City),
			Note:      strings.TrimSpace(req.Note),
			IsDefault: req.IsDefault,
		}
		user.Addresses = append(user.Addresses, address)

		_, err := db.Collection("users").UpdateByID(ctx, userID, bson.M{
			"$set": bson.M{
				"addresses": user.Addresses,
				"updatedAt": time.Now(),
			},
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Println("[ADDRESS] [INFO] address created:", address.ID)
		c.JSON(http.StatusCreated, gin.H{"address": address})
	}
}

func UpdateUserAddress(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/users/addresses/:id"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}

		addressID := strings.TrimSpace(c.Param("id"))
		if addressID == "" {
			respondWithError(c, http.StatusBadRequest, route, "invalid address id")
			return
		}

		var req addressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			respondWithError(c, http.StatusNotFound, route, "user not found")
			return
		}

		index := -1
		for i, addr := range user.Addresses {
			if addr.ID == addressID {
				index = i
				break
			}
		}
		if index == -1 {
			respondWithError(c, http.StatusNotFound, route, "address not found")
			return
		}

		if req.IsDefault {
			for i := range user.Addresses {
				user.Addresses[i].IsDefault = false
			}
		}

		user.Addresses[index].Title = strings.TrimSpace(req.Title)
		user.Addresses[index].Detail = strings.TrimSpace(req.Detail)
		user.Addresses[index].City = strings.TrimSpace(req.City)
		user.Addresses[index].Note = strings.TrimSpace(req.Note)
		user.Addresses[index].IsDefault = req.IsDefault

		_, err := db.Collection("users").UpdateByID(ctx, userID, bson.M{
			"$set": bson.M{
				"addresses": user.Addresses,
				"updatedAt": time.Now(),
			},
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"address": user.Addresses[index]})
	}
}

func DeleteUserAddress(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/users/addresses/:id"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}

		addressID := strings.TrimSpace(c.Param("id"))
		if addressID == "" {
			respondWithError(c, http.StatusBadRequest, route, "invalid address id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			respondWithError(c, http.StatusNotFound, route, "user not found")
			return
		}

		updated := make([]models.Address, 0, len(user.Addresses))
		found := false
		for _, addr := range user.Addresses {
			if addr.ID == addressID {
				found = true
				continue
			}
			updated = append(updated, addr)
		}
		if !found {
			respondWithError(c, http.StatusNotFound, route, "address not found")
			return
		}

		_, err := db.Collection("users").UpdateByID(ctx, userID, bson.M{
			"$set": bson.M{
				"addresses": updated,
				"updatedAt": time.Now(),
			},
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "address deleted"})
	}
}
