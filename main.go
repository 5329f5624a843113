package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"veloria-backend/internal/cache"
	"veloria-backend/internal/config"
	"veloria-backend/internal/database"
	"veloria-backend/internal/handlers"
	"veloria-backend/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)
	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("product index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}
	if err := database.EnsureCartIndexes(db); err != nil {
		log.Printf("cart index warning: %v", err)
	}

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.SeedAdminUser(seedCtx, db, config.AppEnv.AdminEmail, config.AppEnv.AdminPassword); err != nil {
		log.Printf("admin seed warning: %v", err)
	}
	cancelSeed()

	store := cache.Connect(config.AppEnv.RedisAddr, config.AppEnv.RedisPassword)

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if len(config.AppEnv.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = config.AppEnv.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	r.Use(cors.New(corsConfig))

	secret := config.AppEnv.JWTSecret
	accessTTL := config.AppEnv.AccessTokenTTL
	refreshTTL := config.AppEnv.RefreshTokenTTL

	authLimiter := middleware.NewRateLimiter(1, 5)

	auth := r.Group("/api/auth")
	auth.Use(authLimiter.Limit())
	{
		auth.POST("/register", handlers.Register(db, secret, accessTTL, refreshTTL))
		auth.POST("/login", handlers.Login(db, secret, accessTTL, refreshTTL))
		auth.POST("/refresh", handlers.Refresh(db, secret, accessTTL, refreshTTL))
		auth.POST("/logout", handlers.Logout(db))
	}
	r.GET("/api/auth/me", middleware.UserAuth(secret), handlers.GetMe(db))

	r.GET("/api/collection", handlers.GetProducts(db))
	r.GET("/api/collection/:id", handlers.GetProduct(db))
	r.POST("/api/collection", middleware.AdminAuth(secret), handlers.CreateProduct(db))
	r.PUT("/api/collection/:id", middleware.AdminAuth(secret), handlers.UpdateProduct(db))
	r.DELETE("/api/collection/:id", middleware.AdminAuth(secret), handlers.DeleteProduct(db))
	r.GET("/api/categories", handlers.GetCategories(db))
	r.GET("/api/settings", handlers.GetSettings(db, store))

	user := r.Group("/api")
	user.Use(middleware.UserAuth(secret))
	{
		user.GET("/cart", handlers.GetCart(db))
		user.POST("/cart", handlers.AddToCart(db))
		user.PUT("/cart", handlers.UpdateCartItem(db))
		user.DELETE("/cart", handlers.ClearCart(db))
		user.DELETE("/cart/:productId", handlers.RemoveCartItem(db))

		user.GET("/wishlist", handlers.GetWishlist(db))
		user.POST("/wishlist/add/:productId", handlers.AddToWishlist(db))
		user.DELETE("/wishlist/remove/:productId", handlers.RemoveFromWishlist(db))

		user.POST("/orders", handlers.CreateOrder(db))
		user.GET("/orders", handlers.GetOrders(db))
		user.GET("/orders/:id", handlers.GetOrder(db))

		user.PUT("/users/profile", handlers.UpdateProfile(db))
		user.GET("/users/addresses", handlers.GetUserAddresses(db))
		user.POST("/users/addresses", handlers.CreateUserAddress(db))
		user.PUT("/users/addresses/:id", handlers.UpdateUserAddress(db))
		user.DELETE("/users/addresses/:id", handlers.DeleteUserAddress(db))
	}

	admin := r.Group("/api/admin")
	admin.Use(middleware.AdminAuth(secret))
	{
		admin.GET("/products", handlers.GetAllProducts(db))
		admin.POST("/products", handlers.CreateProduct(db))
		admin.PUT("/products/:id", handlers.UpdateProduct(db))
		admin.DELETE("/products/:id", handlers.DeleteProduct(db))

		admin.GET("/categories", handlers.GetAllCategories(db))
		admin.POST("/categories", handlers.CreateCategory(db))
		admin.PUT("/categories/:id", handlers.UpdateCategory(db))
		admin.DELETE("/categories/:id", handlers.DeleteCategory(db))

		admin.GET("/orders", handlers.GetAllOrders(db))
		admin.PUT("/orders/:id/status", handlers.UpdateOrderStatus(db))
		admin.DELETE("/orders/:id", handlers.DeleteOrder(db))

		admin.GET("/users", handlers.GetAllUsers(db))
		admin.DELETE("/users/:id", handlers.DeleteUser(db))
	}

	r.GET("/api/getStats", middleware.AdminAuth(secret), handlers.GetStats(db, store))
	r.PUT("/api/settings", middleware.AdminAuth(secret), handlers.UpdateSettings(db, store))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
