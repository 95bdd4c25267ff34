package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"primini.ma/app/internal/backend"
	"primini.ma/app/internal/config"
	apphttp "primini.ma/app/internal/http"
	"primini.ma/app/internal/http/flash"
	adminh "primini.ma/app/internal/http/handlers/admin"
	"primini.ma/app/internal/http/session"
	"primini.ma/app/internal/logging"
)

const sessionTTL = 14 * 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, closeLogs, err := logging.Setup(cfg.Log)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer func() {
		if err := closeLogs(); err != nil {
			log.Printf("closing log sinks: %v", err)
		}
	}()

	client := backend.NewClient(cfg.BackendBaseURL, logger)

	secret := []byte(cfg.CookieSecret)
	flashCodec := flash.NewCodec(secret, "primini_flash", cfg.SecureCookies)
	sessionCodec := session.NewCodec(secret, "primini_session", cfg.SecureCookies, sessionTTL)
	registry := adminh.NewRegistry(client)

	router := apphttp.NewRouter(logger, client, flashCodec, sessionCodec, registry)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("web frontend listening", "addr", cfg.ListenAddr, "backend", cfg.BackendBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("shutting down", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "err", err)
		os.Exit(1)
	}
	logger.Info("shut down gracefully")
}
