package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/trelix/recommender/internal/config"
	"github.com/trelix/recommender/internal/logging"
	"github.com/trelix/recommender/internal/repository"
	"github.com/trelix/recommender/internal/server"
	"github.com/trelix/recommender/internal/service"
	"github.com/trelix/recommender/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	storeClient, err := buildStoreClient(logger, cfg)
	if err != nil {
		logger.Error("failed to create store client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if storeClient != nil {
			if err := storeClient.Close(context.Background()); err != nil {
				logger.Warn("closing store client failed", "error", err)
			}
		}
	}()

	repo := repository.New(storeClient)
	recommender := service.NewRecommenderService(repo)
	apiHandlers := server.NewAPIHandlers(logger, recommender)

	router := server.NewRouter(logger, server.RouterDependencies{
		Health:           server.StoreHealthService{Client: storeClient},
		API:              apiHandlers,
		AllowedOrigins:   parseAllowedOrigins(cfg.HTTP.AllowedOriginsCSV),
		AllowCredentials: true,
	})

	srv := server.New(logger, cfg.HTTP, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("server stopped unexpectedly", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func buildStoreClient(logger *slog.Logger, cfg config.Config) (store.Client, error) {
	if cfg.Store.URI == "" {
		return nil, store.ErrMissingURI
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Store.ConnectTimeout)
	defer cancel()

	client, err := store.NewMongoClient(ctx, store.Options{
		URI:         cfg.Store.URI,
		Database:    cfg.Store.Database,
		MaxPoolSize: cfg.Store.MaxPoolSize,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("connected to document store", "database", cfg.Store.Database)
	return client, nil
}

func parseAllowedOrigins(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	var origins []string
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}
