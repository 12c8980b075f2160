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
	"time"

	"github.com/KretovDmitry/golinks/internal/config"
	"github.com/KretovDmitry/golinks/internal/handler"
	"github.com/KretovDmitry/golinks/internal/logger"
	"github.com/KretovDmitry/golinks/internal/repository"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Server run context.
	serverCtx, serverStopCtx := context.WithCancel(context.Background())
	defer serverStopCtx()

	cfg := config.MustLoad()

	logger := logger.Get()
	defer logger.Sync()

	store, err := repository.NewMappingStore(cfg, logger)
	if err != nil {
		return fmt.Errorf("new store: %w", err)
	}

	handler, err := handler.New(store, logger)
	if err != nil {
		return fmt.Errorf("new handler: %w", err)
	}

	hs := &http.Server{
		Addr:              cfg.Server.RunAddress.String(),
		Handler:           handler.Register(chi.NewRouter()),
		ReadHeaderTimeout: cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Graceful shutdown.
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT,
			syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)

		s := <-sig

		logger.Info("shutting down server",
			zap.String("signal", s.String()),
			zap.Duration("timeout", cfg.Server.ShutdownTimeout),
		)

		shutdownCtx, cancel := context.WithTimeout(serverCtx, cfg.Server.ShutdownTimeout)
		defer cancel()

		if err = hs.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
		}
		serverStopCtx()
	}()

	logger.Info("server has started", zap.String("address", cfg.Server.RunAddress.String()))

	// A failure to bind the listening port surfaces here
	// and becomes a non-zero exit.
	if err = hs.ListenAndServe(); err != nil &&
		!errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("run server failed: %w", err)
	}

	// Wait for server context to be stopped
	select {
	case <-serverCtx.Done():
	case <-time.After(cfg.Server.ShutdownTimeout):
		return errors.New("graceful shutdown timed out.. forcing exit")
	}

	return nil
}

func printBuildInfo() {
	if buildVersion == "" {
		fmt.Println("Build version: N/A")
	} else {
		fmt.Printf("Build version: %s\n", buildVersion)
	}
	if buildDate == "" {
		fmt.Println("Build date: N/A")
	} else {
		fmt.Printf("Build date: %s\n", buildDate)
	}
	if buildCommit == "" {
		fmt.Println("Build commit: N/A")
	} else {
		fmt.Printf("Build commit: %s\n", buildCommit)
	}
}
