package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"booktime/database"
	"booktime/internal/catalog"
	"booktime/internal/config"
	"booktime/internal/handler"
	"booktime/internal/middleware"
	"booktime/internal/repository"
	"booktime/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := database.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	rdb, err := database.ConnectRedis(cfg.RedisURL, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("could not connect to redis: %v", err)
	}
	defer rdb.Close()

	// Repositories and stores
	userRepo := repository.NewUserRepository(db)
	statsRepo := repository.NewStatsRepository(rdb)
	sessions := repository.NewSessionStore(rdb, cfg.SessionTTL)

	// Upstream book source behind the redis cache
	books := catalog.NewCachedSource(
		catalog.NewClient(cfg.BooksAPIURL, cfg.BooksRateLimit),
		rdb, cfg.CacheTTL, logger,
	)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	bookService := service.NewBookService(books, statsRepo)
	readingService := service.NewReadingService(books, statsRepo, sessions)

	// Router
	if cfg.GoEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authHandler := handler.NewAuthHandler(authService)
	bookHandler := handler.NewBookHandler(bookService)
	readingHandler := handler.NewReadingHandler(readingService)

	api := r.Group("/api")
	authHandler.RegisterRoutes(api.Group("/auth"))

	protected := api.Group("", middleware.RequireAuth(authService))
	authHandler.RegisterProtectedRoutes(protected.Group("/auth"))
	bookHandler.RegisterRoutes(protected.Group("/books"))
	readingHandler.RegisterRoutes(protected.Group("/stats"), protected.Group("/reading"))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		logger.Info("server listening", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
}
