// Path: cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"music-server/internal/config"
	"music-server/internal/delivery/rest"
	"music-server/internal/events"
	"music-server/internal/service"
	"music-server/internal/static"
	"music-server/internal/storage"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	// 2. Setup Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Initialize the record store
	songStore, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// 4. Initialize Components
	broker := events.NewBroker()
	go logSongEvents(ctx, broker, logger)

	songService := service.NewService(songStore, broker, logger)
	songHandlers := rest.NewSongHandlers(songService, logger)
	files, err := static.NewHandler(cfg.Static, logger)
	if err != nil {
		return fmt.Errorf("creating static handler: %w", err)
	}
	limiter := rest.NewLimiter(cfg.RateLimit)

	// 5. Initialize and Start the servers
	servers := []*rest.Server{rest.NewFrontDoor(cfg.Server, songHandlers, files, limiter, logger)}
	if cfg.Server.APIPort != "" {
		servers = append(servers, rest.NewAPIServer(cfg.Server, songHandlers, limiter, logger))
	}

	errCh := make(chan error, len(servers))
	for _, srv := range servers {
		go func() {
			logger.Info("server starting", "addr", srv.Addr())
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("server %s: %w", srv.Addr(), err)
			}
		}()
	}

	// 6. Wait for a shutdown signal or a listener failure
	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received, shutting down gracefully")
	case runErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	for _, srv := range servers {
		if err := srv.Stop(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "addr", srv.Addr(), "error", err)
		}
	}

	logger.Info("server shut down")
	return runErr
}

// openStore builds the configured record store and a function releasing it.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.SongStorage, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendMongo:
		logger.Info("connecting to MongoDB", "database", cfg.Database.Name)
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Database.URI))
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to MongoDB: %w", err)
		}
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Warn("disconnecting from MongoDB", "error", err)
			}
		}
		db := client.Database(cfg.Database.Name)
		return storage.NewMongoSongStorage(db, cfg.Database.Collection), closeFn, nil
	default:
		logger.Info("using song file", "path", cfg.Store.Path)
		return storage.NewFileSongStorage(cfg.Store.Path), func() {}, nil
	}
}

// logSongEvents records every song change published on the broker.
func logSongEvents(ctx context.Context, broker *events.Broker, logger *slog.Logger) {
	ch := broker.Subscribe(events.TopicSongCreated, events.TopicSongUpdated, events.TopicSongDeleted)
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-ch:
			logger.Info("song changed", "topic", ev.Topic, "data", ev.Data)
		}
	}
}
