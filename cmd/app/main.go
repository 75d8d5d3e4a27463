package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "social-verifier-backend/docs"
	"social-verifier-backend/internal/common/config"
	"social-verifier-backend/internal/common/logger"
	"social-verifier-backend/internal/common/middleware"
	verifyhttp "social-verifier-backend/internal/features/verify/handler/http"
	"social-verifier-backend/internal/features/verify/service"
	"social-verifier-backend/internal/features/verify/store"
	"social-verifier-backend/internal/platform/github"
	redisplatform "social-verifier-backend/internal/platform/redis"
	"social-verifier-backend/internal/platform/twitter"
)

// @title           Social Verifier API
// @version         1.0
// @description     Binds verified social accounts to blockchain addresses.

// @BasePath  /api

func main() {
	cfg := config.Load()

	logger.Init("social-verifier", cfg.Debug)

	twitterClient := twitter.NewClient(cfg.Twitter.BearerToken)
	githubClient := github.NewClient(cfg.Github.Token, cfg.Registry.Owner, cfg.Registry.Repo)

	records := store.NewRecordStore(githubClient, cfg.Registry.WriteAttempts)
	verifier := service.New(twitterClient, githubClient, records, service.Paths{
		Ecdsa:  cfg.Registry.EcdsaPath,
		Solana: cfg.Registry.SolanaPath,
	})

	// Redis only backs the rate limiter; the verifier runs without it.
	var rdb *redisplatform.Client
	if cfg.Redis.Addr != "" {
		var err error
		rdb, err = redisplatform.Open(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("Rate limiter enabled")
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.Server.Origin == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	}
	corsConfig.AllowMethods = []string{"GET", "HEAD", "POST", "OPTIONS"}
	corsConfig.MaxAge = 86400 * time.Second
	router.Use(cors.New(corsConfig))

	api := router.Group("/api")
	api.Use(middleware.RateLimit(rdb, cfg.RateLimit.PerMinute))
	verifyhttp.NewHandler(verifier).RegisterRoutes(api)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "social-verifier",
		})
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}
