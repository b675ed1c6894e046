package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"balancehub/database"
	"balancehub/internal/config"
	"balancehub/internal/handler"
	"balancehub/internal/middleware"
	"balancehub/internal/repository"
	"balancehub/internal/service"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	// Connect to the database and Redis
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	rdb, err := database.ConnectRedis(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to redis: %v", err)
	}
	defer rdb.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	gameRepo := repository.NewGameRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	tokenStore := repository.NewRedisTokenStore(rdb)

	// Services
	authService := service.NewAuthService(userRepo, tokenStore, cfg)
	statsService := service.NewStatsService(likeRepo, voteRepo, commentRepo)
	gameService := service.NewGameService(gameRepo, userRepo, statsService)
	voteService := service.NewVoteService(voteRepo, gameRepo)
	commentService := service.NewCommentService(commentRepo, gameRepo, likeRepo)
	likeService := service.NewLikeService(likeRepo, gameRepo, commentRepo)
	userService := service.NewUserService(userRepo, gameRepo, voteRepo, commentRepo, likeRepo)

	// Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	r.Use(rateLimiter.Middleware())

	r.GET("/check-conn", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "API is alive and database connected"})
	})

	api := r.Group("/api")
	handler.NewAuthHandler(authService).RegisterRoutes(api)
	handler.NewGameHandler(gameService, authService).RegisterRoutes(api)
	handler.NewVoteHandler(voteService, authService).RegisterRoutes(api)
	handler.NewCommentHandler(commentService, authService).RegisterRoutes(api)
	handler.NewLikeHandler(likeService, authService).RegisterRoutes(api)
	handler.NewUserHandler(userService, gameService, voteService, authService).RegisterRoutes(api)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("Server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
