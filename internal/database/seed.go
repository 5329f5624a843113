package database

import (
	"context"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// SeedAdminUser upserts the back-office admin account from env credentials.
// Existing accounts are left untouched so a rotated password in the env does
// not silently overwrite one changed through the API.
func SeedAdminUser(ctx context.Context, db *mongo.Database, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		log.Println("[SEED] [INFO] admin seed skipped, ADMIN_EMAIL/ADMIN_PASSWORD not set")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	update := bson.M{
		"$setOnInsert": bson.M{
			"fullName":          "Store Admin",
			"email":             email,
			"passwordHash":      string(hash),
			"role":              "admin",
			"isActive":          true,
			"isProfileComplete": false,
			"addresses":         []bson.M{},
			"createdAt":         now,
			"updatedAt":         now,
		},
	}

	res, err := db.Collection("users").UpdateOne(
		ctx,
		bson.M{"email": email},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return err
	}

	if res.UpsertedCount == 1 {
		log.Println("[SEED] [INFO] admin user seeded:", email)
	}
	return nil
}
