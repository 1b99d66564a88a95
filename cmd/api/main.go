package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/airsense/platform/internal/api"
	"github.com/airsense/platform/internal/api/handlers"
	"github.com/airsense/platform/internal/auth"
	"github.com/airsense/platform/internal/queue"
	"github.com/airsense/platform/internal/repository"
	"github.com/airsense/platform/internal/services"
	"github.com/airsense/platform/pkg/config"
	"github.com/airsense/platform/pkg/database"
	"github.com/airsense/platform/pkg/logger"
)

func main() {
	cfg := config.MustLoad()

	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("starting airsense api",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
	)

	ctx := context.Background()
	db, err := database.OpenMySQL(ctx, cfg.DSN())
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	log.Info("database connected")

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal("redis connection failed", zap.Error(err))
	}

	jwtSecret := []byte(cfg.JWTSecret)
	if len(jwtSecret) == 0 {
		log.Warn("JWT_SECRET not set, using default (INSECURE for production)")
		jwtSecret = []byte("change-me-in-production-please")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	nodeRepo := repository.NewNodeRepository(db)
	measurementRepo := repository.NewMeasurementRepository(db)
	verificationRepo := repository.NewVerificationRepository(db)

	// Auth primitives
	tokens := auth.NewTokenIssuer(jwtSecret)
	denylist := auth.NewRedisDenylist(rdb)

	// Mail queue client
	mailQueue := queue.NewClient(cfg.RedisAddr, cfg.RedisPassword)
	defer mailQueue.Close()

	// Services
	authSvc := services.NewAuthService(userRepo, verificationRepo, tokens, denylist, mailQueue)
	userSvc := services.NewUserService(userRepo)
	nodeSvc := services.NewNodeService(nodeRepo, userRepo)
	measurementSvc := services.NewMeasurementService(measurementRepo, nodeRepo)

	router := api.NewRouter(api.Dependencies{
		Tokens:              tokens,
		Denylist:            denylist,
		AuthHandler:         handlers.NewAuthHandler(authSvc, userSvc),
		UsersHandler:        handlers.NewUsersHandler(userSvc),
		NodesHandler:        handlers.NewNodesHandler(nodeSvc),
		MeasurementsHandler: handlers.NewMeasurementsHandler(measurementSvc),
		HealthHandler:       handlers.NewHealthHandler(db),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}
}
