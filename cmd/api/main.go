package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"battery-lab-api/config"
	"battery-lab-api/handlers"
	"battery-lab-api/services"
	"battery-lab-api/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newLogger(mode string) (*zap.Logger, error) {
	if strings.EqualFold(mode, "development") || strings.EqualFold(mode, "dev") {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func openStore(cfg config.StoreConfig) (store.Store, func(), error) {
	if cfg.Driver == config.StoreSQLite {
		s, err := store.OpenSQLite(cfg.SQLiteDSN)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	}
	return store.NewMemoryStore(), func() {}, nil
}

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logging, err := newLogger(cfg.Log.Mode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Sync()

	gin.SetMode(cfg.Server.GinMode)

	st, closeStore, err := openStore(cfg.Store)
	if err != nil {
		logging.Fatal("Failed to open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer closeStore()

	if err := store.Seed(context.Background(), st); err != nil {
		logging.Fatal("Failed to seed dataset", zap.Error(err))
	}
	logging.Info("Store ready", zap.String("driver", cfg.Store.Driver))

	cache, err := services.NewCacheService(cfg.Redis.URL, logging)
	if err != nil {
		logging.Warn("Continuing without Redis", zap.Error(err))
	}
	defer cache.Close()

	router := handlers.SetupRouter(handlers.Deps{
		Store:     st,
		Cache:     cache,
		Predictor: services.NewPredictor(cfg.Mock.Seed),
		Generator: services.NewCandidateGenerator(cfg.Mock.Seed),
		Users:     services.NewUserService(st),
		Config:    *cfg,
		Log:       logging,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logging.Info("Starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Failed to run server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logging.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error("Graceful shutdown failed", zap.Error(err))
	}
}
