package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trivia-api/internal/auth"
	"trivia-api/internal/config"
	"trivia-api/internal/database"
	"trivia-api/internal/handlers"
	"trivia-api/internal/logger"
	"trivia-api/internal/middleware"
	"trivia-api/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// @title           Trivia API
// @version         1.0
// @description     Trivia questions, categories and quizzes behind role-based bearer tokens
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()

	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}); err != nil {
		fmt.Fprintf(os.Stderr, "init logger failed: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	gin.SetMode(cfg.GinMode)
	ctx := context.Background()

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Error(ctx, "connect database failed", zap.Error(err))
		os.Exit(1)
	}
	if err := database.AutoMigrate(db); err != nil {
		logger.Error(ctx, "migrate database failed", zap.Error(err))
		os.Exit(1)
	}
	if cfg.SeedCategories {
		n, err := database.SeedCategories(db)
		if err != nil {
			logger.Error(ctx, "seed categories failed", zap.Error(err))
			os.Exit(1)
		}
		if n > 0 {
			logger.Info(ctx, "seeded categories", zap.Int("count", n))
		}
	}

	reg, err := newRegistry(db)
	if err != nil {
		logger.Error(ctx, "init metrics failed", zap.Error(err))
		os.Exit(1)
	}

	verifier := auth.NewJWKSVerifier(
		auth.NewJWKSClient(cfg.JWKSURL, cfg.JWKSTimeout),
		cfg.APIAudience,
		cfg.Issuer(),
	)

	router := handlers.NewRouter(handlers.Deps{
		Questions:  services.NewQuestionService(db),
		Categories: services.NewCategoryService(db),
		Quiz:       services.NewQuizService(db),
		Verifier:   verifier,
		Ping: func(ctx context.Context) error {
			return database.Ping(ctx, db)
		},
		Metrics:     middleware.NewMetrics(reg),
		Gatherer:    reg,
		CORSOrigins: cfg.CORSOrigins,
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		ErrorLog:     zap.NewStdLog(logger.L()),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "server starting",
			zap.String("addr", server.Addr),
			zap.String("jwks_url", cfg.JWKSURL),
			zap.String("audience", cfg.APIAudience),
		)
		errCh <- server.ListenAndServe()
	}()

	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(ctx, "http server stopped", zap.Error(err))
		}
	case <-signalCtx.Done():
		logger.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "http server shutdown failed", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func newRegistry(db *gorm.DB) (*prometheus.Registry, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(sqlDB, "trivia"),
	)
	return reg, nil
}
