package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/mgdevhub/gym-meals/internal/api"
	"github.com/mgdevhub/gym-meals/internal/middleware"
	"github.com/mgdevhub/gym-meals/internal/repository"
	"github.com/mgdevhub/gym-meals/internal/service"
	"github.com/mgdevhub/gym-meals/pkg/auth"
	"github.com/mgdevhub/gym-meals/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	err = logger.Initialize(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zapLogger := logger.Logger()

	repo, err := repository.New(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	clock := service.NewClock()
	hub := service.NewRealtimeHub()

	dailyLogService := service.NewDailyLogService(repo, clock)
	challengeService := service.NewChallengeService(repo, clock)
	groceryService := service.NewGroceryService(repo)
	recipeService := service.NewRecipeService(repo)
	foodService := service.NewFoodService()
	profileService := service.NewProfileService(repo)
	analysisService := service.NewAnalysisService(service.NewGeminiVisionClient(cfg.Vision))

	deviceAuth := auth.NewDeviceAuth(cfg.Auth.AppSecret, cfg.Auth.DebugMode)
	analysisLimiter := middleware.NewRateLimiter(cfg.RateLimit.AnalysisPerHour, time.Hour, clock)

	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{
		http.MethodHead,
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
	}
	corsConfig.AllowHeaders = []string{"*"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour

	router.Use(cors.New(corsConfig))

	a := router.Group("/api/v1")
	api.NewDailyLogRoutes(a, dailyLogService, hub, deviceAuth)
	api.NewChallengeRoutes(a, challengeService, hub, deviceAuth)
	api.NewGroceryRoutes(a, groceryService, deviceAuth)
	api.NewRecipeRoutes(a, recipeService, deviceAuth)
	api.NewFoodRoutes(a, foodService, deviceAuth)
	api.NewProfileRoutes(a, profileService, deviceAuth)
	api.NewAnalysisRoutes(a, analysisService, analysisLimiter, deviceAuth)
	api.NewRealtimeRoutes(a, hub, deviceAuth)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	zapLogger.Info("Starting server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
