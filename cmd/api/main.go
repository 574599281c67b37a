package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"agriconnect/config"
	"agriconnect/internal/auth"
	"agriconnect/internal/seed"
	"agriconnect/internal/server"
	"agriconnect/pkg/cache"
	"agriconnect/pkg/database/sqlite"
	"agriconnect/pkg/logger"

	orderH "agriconnect/internal/order/handler"
	orderRepoPkg "agriconnect/internal/order/repository"
	orderUCPkg "agriconnect/internal/order/usecase"

	prodH "agriconnect/internal/product/handler"
	prodRepoPkg "agriconnect/internal/product/repository"
	prodUCPkg "agriconnect/internal/product/usecase"

	recH "agriconnect/internal/recommendation/handler"
	recUCPkg "agriconnect/internal/recommendation/usecase"

	uploadH "agriconnect/internal/upload/handler"

	userH "agriconnect/internal/user/handler"
	userRepoPkg "agriconnect/internal/user/repository"
	userUCPkg "agriconnect/internal/user/usecase"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // .env is optional
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.Config{
		IsDevelopment:     cfg.Server.AppEnv == "development",
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := sqlite.New(&sqlite.Config{
		Path:         cfg.SQLite.Path,
		MaxOpenConns: cfg.SQLite.MaxOpenConns,
		BusyTimeout:  cfg.SQLite.BusyTimeout,
	})
	if err != nil {
		appLogger.Fatal("Could not open database", zap.Error(err))
	}
	defer db.Close()
	if err := sqlite.InitSchema(db); err != nil {
		appLogger.Fatal("Could not initialize schema", zap.Error(err))
	}
	appLogger.Info("Connected to SQLite database", zap.String("path", cfg.SQLite.Path))

	// 4. Initialize Redis (optional; a nil client is a no-op cache)
	var redisClient *cache.RedisClient
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Redis, continuing without cache", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
			appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		}
	}

	// 5. Initialize Repositories
	userRepo := userRepoPkg.NewSQLiteRepository(db)
	prodRepo := prodRepoPkg.NewSQLiteRepository(db)
	orderRepo := orderRepoPkg.NewSQLiteRepository(db)

	// 5.5 Seed demo accounts
	if err := seed.DefaultUsers(context.Background(), userRepo); err != nil {
		appLogger.Fatal("Could not seed default users", zap.Error(err))
	}

	// 6. Initialize UseCases
	tokens := auth.NewManager(cfg.JWT.SecretKey, time.Duration(cfg.JWT.ExpiryHrs)*time.Hour)
	userUC := userUCPkg.NewUserUseCase(userRepo, tokens, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, redisClient, appLogger)
	orderUC := orderUCPkg.NewOrderUseCase(orderRepo, prodRepo, appLogger)
	recUC := recUCPkg.NewRecommendationUseCase(prodRepo, appLogger)

	// 7. Initialize Handlers
	if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
		appLogger.Fatal("Could not create upload directory", zap.Error(err))
	}
	handlers := &server.Handlers{
		Users:           userH.NewUserHandler(userUC, appLogger),
		Products:        prodH.NewProductHandler(prodUC, appLogger),
		Orders:          orderH.NewOrderHandler(orderUC, appLogger),
		Recommendations: recH.NewRecommendationHandler(recUC, appLogger),
		Uploads:         uploadH.NewUploadHandler(cfg.Upload.Dir, cfg.Upload.MaxSizeBytes, appLogger),
	}

	// 8. Start HTTP Server
	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	router := server.NewRouter(tokens, handlers, cfg.Upload.Dir)
	srv := &http.Server{
		Addr:         port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	appLogger.Info("Starting HTTP server", zap.String("port", port))

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
