package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/noah-isme/announcement-api/api/swagger"
	"github.com/noah-isme/announcement-api/internal/handler"
	"github.com/noah-isme/announcement-api/internal/repository"
	"github.com/noah-isme/announcement-api/internal/router"
	"github.com/noah-isme/announcement-api/internal/service"
	"github.com/noah-isme/announcement-api/pkg/config"
	"github.com/noah-isme/announcement-api/pkg/database"
	"github.com/noah-isme/announcement-api/pkg/logger"
)

// @title Announcement API
// @version 1.0.0
// @description Announcement management with criteria filtering and active lookups
// @BasePath /api
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	metrics := service.NewMetricsService()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		pinger handler.Pinger
		store  repository.AnnouncementStore
	)
	switch cfg.Database.Driver {
	case config.DriverMemory:
		store = repository.NewMemoryAnnouncementRepository()
	case config.DriverPostgres:
		if cfg.Database.AutoMigrate {
			if err := database.Migrate(cfg.Database); err != nil {
				logr.Fatal("failed to apply migrations", zap.Error(err))
			}
		}
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			logr.Fatal("failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		pinger = db
		store = repository.NewAnnouncementRepository(db, metrics)
	default:
		logr.Fatal("unsupported database driver", zap.String("driver", cfg.Database.Driver))
	}

	raw := service.NewAnnouncementService(store, logr)
	announcements := handler.NewAnnouncementHandler(raw,
		service.NewAnnouncementQueryService(store, logr),
		service.NewAnnouncementCommandService(raw, validator.New(), logr, metrics),
		handler.AnnouncementHandlerConfig{
			AppName:         cfg.AppName,
			BasePath:        cfg.APIPrefix,
			DefaultPageSize: cfg.Pagination.DefaultSize,
			MaxPageSize:     cfg.Pagination.MaxSize,
		},
	)

	engine := router.New(cfg, router.Dependencies{
		Announcements: announcements,
		Observability: handler.NewMetricsHandler(metrics, pinger),
		Metrics:       metrics,
		Logger:        logr,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: engine,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "driver", cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}

	snapshot := metrics.Snapshot()
	logr.Info("server stopped",
		zap.Uint64("requests_total", snapshot.RequestsTotal),
		zap.Uint64("db_queries", snapshot.DBQueryCount),
	)
}
