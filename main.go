package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"easyfood/catalog"
	"easyfood/config"
	"easyfood/handlers"
	"easyfood/routes"
	"easyfood/session"
	"easyfood/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := godotenv.Load(); err != nil {
		log.Info("no .env file, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}
	gin.SetMode(cfg.GinMode)

	db, err := config.OpenDB(cfg.DBPath)
	if err != nil {
		log.Error("open database", "error", err)
		os.Exit(1)
	}

	st := store.New(db,
		store.WithLogger(log),
		store.WithFees(store.Fees{Delivery: cfg.DeliveryFee, Service: cfg.ServiceFee}),
	)

	ctx := context.Background()

	// Schema failures are fatal: the app cannot run against a
	// half-migrated database.
	if err := st.EnsureSchema(ctx); err != nil {
		log.Error("migrate database", "error", err)
		os.Exit(1)
	}

	restaurants := catalog.Default()
	if err := st.SeedCatalogIfEmpty(ctx, restaurants); err != nil {
		log.Error("seed catalog", "error", err)
		os.Exit(1)
	}
	log.Info("database ready", "path", cfg.DBPath)

	sess := session.New(db)

	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "EasyFood Ordering API",
			"version": "1.0.0",
		})
	})

	secret := []byte(cfg.JWTSecret)
	routes.SetupRoutes(r, routes.Handlers{
		Auth:    handlers.NewAuthHandler(st, sess, secret, cfg.JWTExpiration),
		Cart:    handlers.NewCartHandler(st, sess),
		Order:   handlers.NewOrderHandler(st, sess),
		Catalog: handlers.NewCatalogHandler(st, restaurants),
		Vendor:  handlers.NewVendorHandler(st),
	}, secret)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Info("starting HTTP server", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
