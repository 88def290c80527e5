package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"refund-backend/auth"
	"refund-backend/config"
	"refund-backend/handlers"
	"refund-backend/repository"
	"refund-backend/service"
	"refund-backend/storage"
	"refund-backend/upload"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database connections
	db, err := initPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to initialize Postgres", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("postgres connection established")

	// Initialize storage
	fileStorage, err := storage.NewStorage(ctx, cfg.Storage)
	if err != nil {
		logger.Error("failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("storage initialized",
		slog.String("type", string(cfg.Storage.Type)),
		slog.String("transient_dir", cfg.Upload.TransientDir),
		slog.String("durable_dir", cfg.Upload.DurableDir),
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	refundRepo := repository.NewRefundRepository(db)

	tokens := auth.NewTokenManager(cfg.JWTSecret, "refund-backend", cfg.JWTTTL)

	// Initialize services
	userService := service.NewUserService(
		service.WithUserRepository(userRepo),
	)
	sessionService := service.NewSessionService(
		service.SessionWithUserRepository(userRepo),
		service.SessionWithTokenIssuer(tokens),
	)
	refundService := service.NewRefundService(
		service.WithRefundRepository(refundRepo),
	)
	pipeline := upload.NewPipeline(cfg.Upload, fileStorage, logger)

	// Initialize handlers
	router := handlers.NewRouter(handlers.RouterConfig{
		Logger:         logger,
		Tokens:         tokens,
		UploadHandler:  handlers.NewUploadHandler(pipeline, fileStorage, cfg.Upload, cfg.MaxRequestBytes, logger),
		RefundHandler:  handlers.NewRefundHandler(refundService, logger),
		UserHandler:    handlers.NewUserHandler(userService, sessionService, logger),
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.String("error", err.Error()))
	}
}

func initPostgres(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
