package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"warehouseManagement/internal/access"
	"warehouseManagement/internal/config"
	"warehouseManagement/internal/db"
	"warehouseManagement/internal/forecast"
	"warehouseManagement/internal/httpapi"
	"warehouseManagement/internal/inventory"
	"warehouseManagement/internal/session"
	"warehouseManagement/repository"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWithDefaults()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	log := newLogger(cfg.Env)
	log.Info("configuration loaded", "config", cfg.String())

	// Open DB
	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		log.Error("open db", "err", err)
		os.Exit(1)
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.Error("close db", "err", err)
		}
	}()

	users := repository.NewUserRepository(d)
	items := repository.NewInventoryRepository(d)

	acc := access.NewService(users)
	inv := inventory.NewService(items)
	fc := forecast.NewService(items)
	sessions := session.NewRegistry()

	// Seed the default admin account on a fresh store.
	bootCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := acc.EnsureAdmin(bootCtx, cfg.Auth.AdminPassword); err != nil {
		cancel()
		log.Error("seed admin", "err", err)
		os.Exit(1)
	}
	cancel()

	h := httpapi.NewHandler(acc, inv, fc, sessions, cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)
	router := httpapi.NewRouter(log, cfg.Env, h, cfg.Auth.JWTSecret, d.Ping)

	srv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "addr", cfg.HTTP.Address, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Wait for signal
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	log.Info("server shutting down")

	ctx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", "err", err)
	}
}

func newLogger(env string) *slog.Logger {
	level := slog.LevelInfo
	if env == "dev" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
