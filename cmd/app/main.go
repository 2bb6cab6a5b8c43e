package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"quizhive-backend/internal/cache"
	"quizhive-backend/internal/config"
	"quizhive-backend/internal/controller"
	"quizhive-backend/internal/db"
	"quizhive-backend/internal/model"
	"quizhive-backend/internal/repository"
	"quizhive-backend/internal/service"
	"quizhive-backend/pkg/middleware"
	"quizhive-backend/utilities"

	logger "quizhive-backend/pkg/logging"
)

const version = "1.0.0"

func main() {
	printStartUpBanner()

	// A .env file may carry secret overrides; missing is fine.
	_ = godotenv.Load()

	// Load XML configuration from file.
	cfg, err := config.LoadConfig("config.xml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.Init(cfg.Context.LogDir)

	// Initialize DB using the loaded config.
	db.InitDBFromConfig(cfg)
	// Run migrations.
	if err := db.GetDB().AutoMigrate(
		&model.Institution{},
		&model.Stream{},
		&model.User{},
		&model.Quiz{},
		&model.Question{},
		&model.Attempt{},
	); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Leaderboard cache; an empty redis address disables it.
	lbCache := newLeaderboardCache(cfg)

	// Create repositories.
	userRepo := repository.NewUserRepository()
	institutionRepo := repository.NewInstitutionRepository()
	streamRepo := repository.NewStreamRepository()
	quizRepo := repository.NewQuizRepository()
	questionRepo := repository.NewQuestionRepository()
	attemptRepo := repository.NewAttemptRepository()

	// Create services.
	authService := service.NewAuthService(userRepo, streamRepo, institutionRepo, utilities.JWTIssuer{})
	institutionService := service.NewInstitutionService(institutionRepo, userRepo, quizRepo)
	streamService := service.NewStreamService(streamRepo, userRepo, quizRepo)
	quizService := service.NewQuizService(quizRepo, questionRepo, streamRepo)
	questionService := service.NewQuestionService(questionRepo, quizRepo)
	attemptService := service.NewAttemptService(attemptRepo, quizRepo, questionRepo, userRepo, utilities.GlobalEventBus)
	statsService := service.NewStatsService(attemptRepo, quizRepo, userRepo, streamRepo, lbCache)
	reportService := service.NewReportService(statsService)

	// Every new attempt shifts the rankings.
	utilities.GlobalEventBus.Subscribe(utilities.EventAttemptCreated, func(interface{}) {
		lbCache.Invalidate(context.Background())
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router.
	r := gin.Default()

	// CORS configuration.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.RequestIDMiddleware())
	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	}
	if cfg.RequestDump {
		r.Use(middleware.RequestDumpMiddleware())
	}
	r.Use(utilities.AuthMiddleware(cfg.Context.Path, userRepo.GetUserByID))

	controller.RegisterRoutes(r, cfg.Context.Path,
		authService, institutionService, streamService,
		quizService, questionService, attemptService,
		statsService, reportService)

	// Start server on the host and port specified in the XML config.
	addr := fmt.Sprintf("%s:%d", cfg.Context.Host, cfg.Context.Port)
	logger.Info("listening on %s%s", addr, cfg.Context.Path)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func newLeaderboardCache(cfg *config.APIConfig) *cache.LeaderboardCache {
	if cfg.Redis.Addr == "" {
		logger.Warn("redis not configured, leaderboard caching disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable (%v), leaderboard caching disabled", err)
		return nil
	}
	return cache.NewLeaderboardCache(client, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
}

func printStartUpBanner() {
	myFigure := figure.NewFigure("QUIZHIVE", "", true)
	myFigure.Print()

	fmt.Println("======================================================")
	fmt.Printf("QUIZHIVE API (v%s)\n\n", version)
}
