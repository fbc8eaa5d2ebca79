package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/kopiyka/kopiyka/internal/config"
	"github.com/kopiyka/kopiyka/internal/infra"
	"github.com/kopiyka/kopiyka/internal/ledger"
	"github.com/kopiyka/kopiyka/internal/logging"
	"github.com/kopiyka/kopiyka/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()

	store, err := ledger.NewStore(cfg.Currencies, cfg.DefaultCurrency)
	if err != nil {
		logger.Error("build ledger store", "error", err)
		os.Exit(1)
	}
	logger.Info("ledger store ready",
		"currencies", cfg.Currencies,
		"default_currency", cfg.DefaultCurrency,
	)

	// All state is in-memory: a restart clears accounts and the transaction
	// log. Rate limiting uses Redis when configured and is disabled otherwise.
	var cache *redis.Client
	if cfg.RedisURL != "" {
		cache, err = infra.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("connect redis", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := cache.Close(); err != nil {
				logger.Warn("close redis", "error", err)
			}
		}()
	} else {
		logger.Info("REDIS_URL not set, rate limiting disabled")
	}

	srv, err := server.New(cfg, store, cache, logger)
	if err != nil {
		logger.Error("build server", "error", err)
		os.Exit(1)
	}

	srvErrCh := make(chan error, 1)
	go func() {
		srvErrCh <- srv.Listen()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-srvErrCh:
		if err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownPeriod)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited cleanly")
}
