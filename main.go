package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jordisipkens/spiral-race/config"
	"github.com/jordisipkens/spiral-race/controllers"
	"github.com/jordisipkens/spiral-race/database"
	"github.com/jordisipkens/spiral-race/routes"
	"github.com/jordisipkens/spiral-race/services"
	"github.com/jordisipkens/spiral-race/utils"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	utils.SetJWTSecret(cfg.JWTSecret)
	controllers.AdminPasswordHash = cfg.AdminPasswordHash
	services.SetBaseURL(cfg.BaseURL)
	services.Store = &services.LocalStorage{Dir: cfg.UploadDir, BaseURL: cfg.BaseURL}

	database.Connect(cfg.DatabaseURL)
	database.MigrateTables()
	database.ConnectRedis(cfg.RedisAddr)

	r := routes.SetupRouter(cfg.UploadDir)

	server := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.Port),
		Handler: r,
	}

	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		slog.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}()

	slog.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server closed unexpectedly", "error", err)
		os.Exit(1)
	}
}
