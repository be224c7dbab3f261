package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"towers-verifier-backend/internal/config"
	"towers-verifier-backend/internal/handlers"
	"towers-verifier-backend/internal/logger"
	"towers-verifier-backend/internal/middleware"
	"towers-verifier-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Env != "production" {
		level = slog.LevelDebug
	}
	logger.Init(level, "")

	redisService, err := services.NewRedisService(cfg)
	if err != nil {
		slog.Error("failed to connect to redis", "err", err)
		os.Exit(1)
	}
	defer redisService.Close()

	jwtService := services.NewJWTService(cfg)

	wsHandler := handlers.NewWebSocketHandler(redisService)

	verifier := services.NewVerifierService().
		WithRedis(redisService).
		WithBroadcaster(wsHandler)

	authHandler := handlers.NewAuthHandler(jwtService, cfg.OperatorKey)
	verifyHandler := handlers.NewVerifyHandler(verifier)
	commitmentHandler := handlers.NewCommitmentHandler(verifier, redisService)
	healthHandler := handlers.NewHealthHandler(redisService)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	rateLimited := middleware.RateLimitMiddleware(redisService)
	authRequired := middleware.AuthMiddleware(jwtService)

	// Query-string entry point, so a verification link can be shared as-is.
	router.GET("/verify", rateLimited, verifyHandler.GetVerify)

	router.POST("/auth/operator", authHandler.Authenticate)

	api := router.Group("/api")
	{
		api.GET("/health", healthHandler.Check)
		api.POST("/verify", rateLimited, verifyHandler.PostVerify)
		api.GET("/ws", wsHandler.HandleWebSocket)

		api.GET("/commitments/:id", commitmentHandler.Get)
		api.GET("/commitments/:id/verify", rateLimited, commitmentHandler.Verify)

		api.POST("/commitments", authRequired, commitmentHandler.Publish)
		api.POST("/commitments/:id/reveal", authRequired, commitmentHandler.Reveal)
	}

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	slog.Info("server starting", "port", port, "env", cfg.Env)
	if err := router.Run(":" + port); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
