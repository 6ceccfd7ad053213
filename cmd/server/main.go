package main

import (
	"os"

	"worldconnect/internal/db"
	"worldconnect/internal/live"
	"worldconnect/internal/middleware"
	"worldconnect/internal/router"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		// Fall through to system env vars.
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// Initialize Database
	db.Init()

	// Change feed hub for live updates
	hub := live.NewHub()

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("worldconnect_session", store))

	// Middleware
	r.Use(middleware.LoadUser())

	router.RegisterRoutes(r, hub)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	zap.L().Info("World Connect server starting", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		zap.L().Fatal("server exited", zap.Error(err))
	}
}
